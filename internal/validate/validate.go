// Package validate collects field-level constraint checks shared by the
// entity constructors and the facade.  Checks never fail fast: every rule
// appends a Violation to a collector so that one ValidationError can carry
// the complete list of problems for an operation.  Cross-entity rules
// (uniqueness, reference existence) live in the facade because they need
// repository lookups; everything here is a pure predicate.
package validate

import (
	"fmt"
	"strings"
)

// Violation names one failed constraint.  Field identifies the offending
// input field and Reason is a short human-readable explanation that is
// returned verbatim to API clients.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every violated constraint of a single
// operation.  Handlers translate it into a 400 response carrying the full
// list, so callers see all invalid fields at once instead of fixing them
// one round-trip at a time.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Violations accumulates failed checks.  The zero value is ready to use.
type Violations []Violation

// Add records a violation built from a format string.
func (vs *Violations) Add(field, format string, args ...any) {
	*vs = append(*vs, Violation{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// Err returns an aggregated ValidationError, or nil when every check passed.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}

// Required checks that a string is non-empty after trimming.
func (vs *Violations) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		vs.Add(field, "must not be empty")
	}
}

// MaxLen checks an upper bound on string length.
func (vs *Violations) MaxLen(field, value string, max int) {
	if len(value) > max {
		vs.Add(field, "must not exceed %d characters", max)
	}
}

// Range checks that a number falls inside a closed interval.
func (vs *Violations) Range(field string, value, lo, hi float64) {
	if value < lo || value > hi {
		vs.Add(field, "must be between %g and %g", lo, hi)
	}
}

// NonNegative checks that a number is zero or greater.
func (vs *Violations) NonNegative(field string, value float64) {
	if value < 0 {
		vs.Add(field, "must not be negative")
	}
}

// Email checks the structural rules for an email address: exactly one "@",
// a non-empty local part, and a domain containing a dot that is neither
// leading nor trailing.  The check mirrors what the registration form
// enforces; deliverability is not our problem here.
func (vs *Violations) Email(field, value string) {
	at := strings.Count(value, "@")
	if at != 1 {
		vs.Add(field, "must contain exactly one '@'")
		return
	}
	local, domain, _ := strings.Cut(value, "@")
	if local == "" || domain == "" ||
		!strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		vs.Add(field, "must be a valid address")
	}
}

// Password enforces the minimum credential strength accepted at
// registration: at least 6 characters with one digit and one uppercase
// letter.
func (vs *Violations) Password(field, value string) {
	if len(value) < 6 {
		vs.Add(field, "must contain at least 6 characters")
		return
	}
	var digit, upper bool
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'A' && r <= 'Z':
			upper = true
		}
	}
	if !digit {
		vs.Add(field, "must contain at least one digit")
	}
	if !upper {
		vs.Add(field, "must contain at least one uppercase letter")
	}
}
