// Package scan finds provisioning documents below a directory.
package scan
