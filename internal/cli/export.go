package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"provisioning-mapper/internal/export"
	"provisioning-mapper/internal/model"
)

// What to export.
const (
	WhatConfigurations = "configurations"
	WhatModel          = "model"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatSpew = "spew"
)

var (
	validWhat    = []string{WhatConfigurations, WhatModel}
	validFormats = []string{FormatYAML, FormatSpew}
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// ExportOptions defines the options of the export command.
type ExportOptions struct {
	File string
	// What selects configurations or model.
	What string
	// OutputPath is the export file. The document goes to the command
	// output when empty.
	OutputPath string
	// Format is yaml or spew.
	Format string

	global *GlobalOptions
}

// NewExportCommand creates the export command.
func NewExportCommand(ctx context.Context, env *Env, global *GlobalOptions) *cobra.Command {
	opts := &ExportOptions{global: global}

	cmd := &cobra.Command{
		Use:   "export FILE [--what configurations|model] [-o PATH] [--format yaml|spew]",
		Args:  cobra.ExactArgs(1),
		Short: "Exports the effective model of a provisioning document",
		Long: `
Export writes the effective model of a provisioning document.

  configurations  every configuration with its relative path (default)
  model           features, run modes, artifacts and configurations
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(args); err != nil {
				return err
			}

			return opts.Run(ctx, global.Log, env.FS, cmd.OutOrStdout())
		},
	}

	opts.AddFlags(cmd.Flags())

	return cmd
}

// AddFlags registers the export flags.
func (o *ExportOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.What, "what", WhatConfigurations, "what to export: configurations or model")
	fs.StringVarP(&o.OutputPath, "output", "o", "", "output file (default: command output)")
	fs.StringVar(&o.Format, "format", FormatYAML, "document format: yaml or spew")
}

// Complete applies the command arguments and validates the flags.
func (o *ExportOptions) Complete(args []string) error {
	o.File = args[0]

	return o.validate()
}

func (o *ExportOptions) validate() error {
	if !slices.Contains(validWhat, o.What) {
		return fmt.Errorf("unknown export %q, expected one of %v", o.What, validWhat)
	}

	if !slices.Contains(validFormats, o.Format) {
		return fmt.Errorf("unknown format %q, expected one of %v", o.Format, validFormats)
	}

	return nil
}

// Run performs the export.
func (o *ExportOptions) Run(_ context.Context, log logr.Logger, fs vfs.FileSystem, out io.Writer) error {
	m, err := loadModel(log, fs, o.File, o.global)
	if err != nil {
		return err
	}

	data, err := o.render(m)
	if err != nil {
		return err
	}

	if o.OutputPath == "" {
		_, err = out.Write(data)
		return err
	}

	if err := export.WriteFile(fs, o.OutputPath, data); err != nil {
		return err
	}

	log.Info("wrote export", "what", o.What, "file", o.OutputPath)

	return nil
}

func (o *ExportOptions) render(m *model.Model) ([]byte, error) {
	var doc any

	switch o.What {
	case WhatModel:
		doc = export.Model(m)
	default:
		list, err := export.Configurations(m)
		if err != nil {
			return nil, err
		}

		doc = list
	}

	if o.Format == FormatSpew {
		return []byte(dumpConfig.Sdump(doc)), nil
	}

	return export.YAML(doc)
}
