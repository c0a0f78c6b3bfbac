package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"provisioning-mapper/internal/provisioning"
)

// DetectOptions defines the options of the detect command.
type DetectOptions struct {
	Files []string

	global *GlobalOptions
}

// NewDetectCommand creates the command that sniffs files.
func NewDetectCommand(ctx context.Context, env *Env, global *GlobalOptions) *cobra.Command {
	opts := &DetectOptions{global: global}

	return &cobra.Command{
		Use:   "detect FILE...",
		Args:  cobra.MinimumNArgs(1),
		Short: "Reports for each file whether it is a provisioning document",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Complete(args)
			return opts.Run(ctx, global.Log, env.FS, cmd.OutOrStdout())
		},
	}
}

// Complete applies the command arguments.
func (o *DetectOptions) Complete(args []string) {
	o.Files = args
}

// Run prints "FILE: true|false" for every file.
func (o *DetectOptions) Run(_ context.Context, log logr.Logger, fs vfs.FileSystem, out io.Writer) error {
	for _, file := range o.Files {
		ok := provisioning.IsProvisioningFile(fs, file, o.global.Config.Charset)
		log.V(1).Info("sniffed file", "file", file, "provisioning", ok)

		if _, err := fmt.Fprintf(out, "%s: %t\n", file, ok); err != nil {
			return err
		}
	}

	return nil
}
