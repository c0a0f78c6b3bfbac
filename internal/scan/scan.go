package scan

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"golang.org/x/sync/errgroup"

	"provisioning-mapper/internal/fsutil"
	"provisioning-mapper/internal/provisioning"
)

// Scan walks root for ".txt" files and sniffs them with at most limit
// concurrent readers (limit <= 0 uses the number of CPUs). It returns the
// provisioning documents in lexical order. Walk errors and context
// cancellation abort the scan; a file that cannot be sniffed is skipped.
func Scan(ctx context.Context, fs vfs.FileSystem, root, charset string, limit int) ([]string, error) {
	candidates, err := fsutil.FindFilesByExtension(fs, root, provisioning.FileExtension)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	matches := make([]bool, len(candidates))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)

	for i, path := range candidates {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			matches[i] = provisioning.IsProvisioningFile(fs, path, charset)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var found []string

	for i, path := range candidates {
		if matches[i] {
			found = append(found, path)
		}
	}

	slices.Sort(found)

	return found, nil
}
