package provisioning

import (
	"strings"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"provisioning-mapper/internal/fsutil"
)

const (
	// FileExtension is the extension of provisioning documents, without dot.
	FileExtension = "txt"
	// FeatureMarker is the content that identifies a provisioning document.
	FeatureMarker = "[feature "
)

// IsProvisioningFile reports whether the file seems to be a provisioning
// document: its extension is "txt" (any case) and its decoded text contains
// "[feature ". Any failure while reading or decoding yields false.
func IsProvisioningFile(fs vfs.FileSystem, path, charset string) bool {
	if !fsutil.MatchesExtension(path, FileExtension) {
		return false
	}

	enc, err := LookupEncoding(charset)
	if err != nil {
		return false
	}

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return false
	}

	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return false
	}

	return strings.Contains(string(text), FeatureMarker)
}
