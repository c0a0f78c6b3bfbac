package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"provisioning-mapper/internal/configformat"
	"provisioning-mapper/internal/provisioning"
)

// PathsOptions defines the options of the paths command.
type PathsOptions struct {
	File string
	// Content prints the Felix ".config" content below each path.
	Content bool

	global *GlobalOptions
}

// NewPathsCommand creates the command that lists configuration paths.
func NewPathsCommand(ctx context.Context, env *Env, global *GlobalOptions) *cobra.Command {
	opts := &PathsOptions{global: global}

	cmd := &cobra.Command{
		Use:   "paths FILE [--content]",
		Args:  cobra.ExactArgs(1),
		Short: "Prints the relative path of every configuration of a provisioning document",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Complete(args)
			return opts.Run(ctx, global.Log, env.FS, cmd.OutOrStdout())
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

// AddFlags registers the paths flags.
func (o *PathsOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Content, "content", false, "print the configuration content below each path")
}

// Complete applies the command arguments.
func (o *PathsOptions) Complete(args []string) {
	o.File = args[0]
}

// Run prints the paths in visit order.
func (o *PathsOptions) Run(_ context.Context, log logr.Logger, fs vfs.FileSystem, out io.Writer) error {
	m, err := loadModel(log, fs, o.File, o.global)
	if err != nil {
		return err
	}

	return provisioning.VisitOSGiConfigurations(m, func(path string, properties map[string]any) error {
		if _, err := fmt.Fprintln(out, path); err != nil {
			return err
		}

		if !o.Content {
			return nil
		}

		content, err := configformat.Format(properties)
		if err != nil {
			return fmt.Errorf("formatting %s: %w", path, err)
		}

		for _, line := range strings.SplitAfter(content, "\n") {
			if line == "" {
				continue
			}

			if _, err := io.WriteString(out, "  "+line); err != nil {
				return err
			}
		}

		return nil
	})
}
