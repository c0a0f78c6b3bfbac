// Package export renders effective models as YAML documents.
//
// Configurations lists every configuration under its relative ".config"
// path. Model produces a structural view of features, run modes, artifacts
// and configurations. WriteFile stores a rendered document.
package export
