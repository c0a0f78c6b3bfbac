// Package match provides name normalization and Levenshtein distance for
// suggesting the intended keyword when a provisioning document misspells a
// section or attribute name.
//
// Key functions:
//   - Normalize: folds case and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best candidate within a distance budget
package match
