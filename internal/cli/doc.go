// Package cli implements the provisioning-mapper command line.
//
// Every command follows the same shape: an options struct with AddFlags,
// Complete and Run(ctx, log, fs). Commands read through a vfs.FileSystem and
// write to the command's output stream, so they run against memoryfs in
// tests.
package cli
