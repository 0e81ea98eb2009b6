package order

// ValidationResult captures the outcome of running the rule engine over a
// candidate order. It is set once at intake and re-evaluated only on explicit
// re-validation. Warnings are informational and never block admission.
type ValidationResult struct {
	passed   bool
	errors   []string
	warnings []string
}

// NewValidationResult creates a ValidationResult. Passed is derived from the
// error list: a candidate is admissible only when errors is empty.
func NewValidationResult(validationErrors, warnings []string) ValidationResult {
	return ValidationResult{
		passed:   len(validationErrors) == 0,
		errors:   append([]string(nil), validationErrors...),
		warnings: append([]string(nil), warnings...),
	}
}

// Passed reports whether the candidate satisfied every blocking rule.
func (r ValidationResult) Passed() bool { return r.passed }

// Errors returns a copy of the blocking rule violations.
func (r ValidationResult) Errors() []string {
	return append([]string(nil), r.errors...)
}

// Warnings returns a copy of the non-blocking rule findings.
func (r ValidationResult) Warnings() []string {
	return append([]string(nil), r.warnings...)
}
