// Package main provides the CLI entrypoint for provisioning-mapper.
//
// provisioning-mapper is a tool for Sling provisioning model files that:
//   - Detects provisioning documents by extension and content
//   - Resolves the effective model of a document
//   - Maps every OSGi configuration to its relative ".config" path
//   - Exports configurations and models as YAML
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mandelsoft/vfs/pkg/osfs"

	"provisioning-mapper/internal/cli"
	"provisioning-mapper/internal/config"
)

func main() {
	env := &cli.Env{
		FS:                osfs.New(),
		Out:               os.Stdout,
		Err:               os.Stderr,
		DefaultConfigPath: config.DefaultFileName,
	}

	if err := run(context.Background(), env, os.Args[1:]); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// run executes the command line against env.
func run(ctx context.Context, env *cli.Env, args []string) error {
	cmd := cli.NewRootCommand(ctx, env)
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

// report prints err and returns the process exit code.
func report(w io.Writer, err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(w, exitErr.Message)
		return exitErr.Code
	}

	fmt.Fprintln(w, "Error:", err)

	return 1
}
