package harness

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when the outcome matched every expectation.
	Pass bool `json:"pass"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Output is the canonical JSON of the resolved program; nil on failure.
	Output []byte `json:"-"`

	// Fingerprint is ir.Fingerprint of the resolved program.
	Fingerprint string `json:"fingerprint,omitempty"`

	// ErrorCode, ErrorKind and ErrorText describe a failed conversion.
	ErrorCode string `json:"error_code,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
	ErrorText string `json:"error_text,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Converted reports whether the conversion itself succeeded.
func (r *Result) Converted() bool {
	return r.ErrorKind == ""
}
