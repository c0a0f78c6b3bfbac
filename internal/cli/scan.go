package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"provisioning-mapper/internal/scan"
)

// ScanOptions defines the options of the scan command.
type ScanOptions struct {
	Root        string
	Concurrency int

	global *GlobalOptions
}

// NewScanCommand creates the command that lists provisioning documents below
// a directory.
func NewScanCommand(ctx context.Context, env *Env, global *GlobalOptions) *cobra.Command {
	opts := &ScanOptions{global: global}

	cmd := &cobra.Command{
		Use:   "scan DIR",
		Args:  cobra.ExactArgs(1),
		Short: "Lists the provisioning documents below a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Complete(args, cmd.Flags())
			return opts.Run(ctx, global.Log, env.FS, cmd.OutOrStdout())
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

// AddFlags registers the scan flags.
func (o *ScanOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.Concurrency, "concurrency", 0, "number of files read in parallel (default from the config file, else one per CPU)")
}

// Complete applies the command arguments and config defaults.
func (o *ScanOptions) Complete(args []string, flags *pflag.FlagSet) {
	o.Root = args[0]

	if !flags.Changed("concurrency") {
		o.Concurrency = o.global.Config.ScanConcurrency
	}
}

// Run prints every provisioning document found below Root.
func (o *ScanOptions) Run(ctx context.Context, log logr.Logger, fs vfs.FileSystem, out io.Writer) error {
	files, err := scan.Scan(ctx, fs, o.Root, o.global.Config.Charset, o.Concurrency)
	if err != nil {
		return err
	}

	log.V(1).Info("scan finished", "root", o.Root, "found", len(files))

	for _, file := range files {
		if _, err := fmt.Fprintln(out, file); err != nil {
			return err
		}
	}

	return nil
}
