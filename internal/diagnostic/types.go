package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

const unknownStr = "unknown"

// Diagnostics holds all findings of a validation run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of finding.
	Code string
	// Message is the human-readable description.
	Message string
	// Feature names the feature this relates to (if any).
	Feature string
	// Element identifies the run mode, artifact or configuration (if any).
	Element string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return unknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, feature, element string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Feature:  feature,
		Element:  element,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, feature, element string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Feature:  feature,
		Element:  element,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// All returns errors followed by warnings.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings))
	all = append(all, d.Errors...)

	return append(all, d.Warnings...)
}

// Err returns all error diagnostics combined into one error, or nil if there
// are none.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}

	var result *multierror.Error
	for _, e := range d.Errors {
		result = multierror.Append(result, errors.New(e.String()))
	}

	result.ErrorFormat = func(errs []error) string {
		parts := make([]string, 0, len(errs))
		for _, err := range errs {
			parts = append(parts, err.Error())
		}

		return fmt.Sprintf("%d validation error(s): %s", len(errs), strings.Join(parts, "; "))
	}

	return result.ErrorOrNil()
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Feature != "" {
		prefix = append(prefix, "["+d.Feature+"]")
	}

	if d.Element != "" {
		prefix = append(prefix, d.Element)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
