package cli

import (
	"context"
	"io"

	"github.com/go-logr/logr"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"provisioning-mapper/internal/config"
	"provisioning-mapper/internal/logger"
)

// Env is the environment the commands run in.
type Env struct {
	FS  vfs.FileSystem
	Out io.Writer
	Err io.Writer
	// DefaultConfigPath is read when --config is not given and the file exists.
	DefaultConfigPath string
}

// GlobalOptions holds the persistent flags and the resolved configuration.
type GlobalOptions struct {
	Charset     string
	ConfigPath  string
	Verbosity   int
	Development bool
	RunModes    []string

	// Config is set by Complete.
	Config *config.Config
	// Log is set by Complete.
	Log logr.Logger
}

// NewRootCommand creates the provisioning-mapper command with all subcommands.
func NewRootCommand(ctx context.Context, env *Env) *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "provisioning-mapper",
		Short: "Inspects Sling provisioning model files and maps their OSGi configurations",
		Long: `
provisioning-mapper reads provisioning model documents (.txt files containing
[feature ...] sections), resolves their effective model and maps every OSGi
configuration to a relative path of the form

  [<sorted run modes joined by ".">/][<factoryPid>-]<pid>.config
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.Complete(env, cmd.Flags())
		},
	}

	cmd.SetOut(env.Out)
	cmd.SetErr(env.Err)
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewDetectCommand(ctx, env, opts))
	cmd.AddCommand(NewScanCommand(ctx, env, opts))
	cmd.AddCommand(NewPathsCommand(ctx, env, opts))
	cmd.AddCommand(NewExportCommand(ctx, env, opts))
	cmd.AddCommand(NewValidateCommand(ctx, env, opts))

	return cmd
}

// AddFlags registers the persistent flags.
func (o *GlobalOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Charset, "charset", "", "charset of provisioning files (default from the config file, else "+config.DefaultCharset+")")
	fs.StringVar(&o.ConfigPath, "config", "", "path to the tool configuration file")
	fs.IntVarP(&o.Verbosity, "verbosity", "v", 0, "number for the log level verbosity")
	fs.BoolVar(&o.Development, "dev", false, "enable development logging")
	fs.StringSliceVar(&o.RunModes, "run-modes", nil, "restrict paths and exports to the run modes active for these names")
}

// Complete loads the configuration file, applies flag overrides and builds
// the logger.
func (o *GlobalOptions) Complete(env *Env, flags *pflag.FlagSet) error {
	var (
		cfg *config.Config
		err error
	)

	switch {
	case o.ConfigPath != "":
		cfg, err = config.LoadFile(env.FS, o.ConfigPath)
	case env.DefaultConfigPath != "":
		cfg, err = config.LoadOptional(env.FS, env.DefaultConfigPath)
	default:
		cfg = config.Default()
	}

	if err != nil {
		return err
	}

	if flags.Changed("charset") {
		cfg.Charset = o.Charset
	}

	if flags.Changed("verbosity") {
		cfg.Log.Verbosity = o.Verbosity
	}

	if flags.Changed("dev") {
		cfg.Log.Development = o.Development
	}

	if flags.Changed("run-modes") {
		cfg.RunModes = o.RunModes
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(env.Err, logger.Config{
		Verbosity:   cfg.Log.Verbosity,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}

	o.Config = cfg
	o.Log = log

	return nil
}
