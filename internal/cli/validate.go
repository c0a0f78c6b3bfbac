package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"provisioning-mapper/internal/diagnostic"
	"provisioning-mapper/internal/effective"
	"provisioning-mapper/internal/model"
	"provisioning-mapper/internal/provisioning"
	"provisioning-mapper/internal/reader"
)

// ValidateOptions defines the options of the validate command.
type ValidateOptions struct {
	File string

	global *GlobalOptions
}

// NewValidateCommand creates the command that checks a provisioning document.
func NewValidateCommand(ctx context.Context, env *Env, global *GlobalOptions) *cobra.Command {
	opts := &ValidateOptions{global: global}

	return &cobra.Command{
		Use:   "validate FILE",
		Args:  cobra.ExactArgs(1),
		Short: "Checks a provisioning document and prints its diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Complete(args)
			return opts.Run(ctx, global.Log, env.FS, cmd.OutOrStdout())
		},
	}
}

// Complete applies the command arguments.
func (o *ValidateOptions) Complete(args []string) {
	o.File = args[0]
}

// Run validates the raw and the effective model. It returns an *ExitError
// with code 1 when errors were found.
func (o *ValidateOptions) Run(_ context.Context, log logr.Logger, fs vfs.FileSystem, out io.Writer) error {
	diags := o.collect(log, fs)

	for _, d := range diags.All() {
		if _, err := fmt.Fprintf(out, "%s: %s\n", d.Severity, d); err != nil {
			return err
		}
	}

	if err := diags.Err(); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	_, err := fmt.Fprintf(out, "%s: ok (%d warning(s))\n", o.File, len(diags.Warnings))

	return err
}

func (o *ValidateOptions) collect(log logr.Logger, fs vfs.FileSystem) *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	var raw *model.Model

	loader := &provisioning.Loader{
		Parse: func(r io.Reader, location string) (*model.Model, error) {
			m, err := reader.Read(r, location)
			raw = m

			return m, err
		},
		Resolve: effective.Resolve,
	}

	if _, err := loader.Load(fs, o.File, o.global.Config.Charset); err != nil {
		code := "load_failed"
		if raw != nil {
			code = "resolve_failed"
		}

		log.V(1).Info("loading failed", "file", o.File, "error", err.Error())
		diags.AddError(code, err.Error(), "", "")
	}

	if raw != nil {
		diags.Merge(*model.Validate(raw))
	}

	return diags
}
