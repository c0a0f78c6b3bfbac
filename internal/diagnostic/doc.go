// Package diagnostic provides structured errors and warnings produced while
// validating a provisioning model.
//
// Key capabilities:
//   - Errors and warnings with a stable code
//   - Feature and element context for every finding
//   - Aggregation of all errors into a single error value
package diagnostic
