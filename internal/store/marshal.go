package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/brilir/internal/ir"
)

// Status is the outcome of a recorded run.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Run is one recorded conversion.
type Run struct {
	Seq         int64
	ID          string
	SourceHash  string
	Features    string
	Status      Status
	ErrorCode   string // e.g. "E203"
	ErrorText   string // display text, positional prefix included
	ProgramHash string
	Output      string // compact bril JSON of the resolved program
	ToolVersion string
	IRVersion   string
}

// SuccessRun builds the record of a successful conversion.
// Output is the compact bril JSON of p in emission order, ProgramHash its fingerprint.
func SuccessRun(sourceHash, features string, p *ir.Program) (Run, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return Run{}, fmt.Errorf("marshal program: %w", err)
	}
	hash, err := ir.Fingerprint(p)
	if err != nil {
		return Run{}, err
	}
	return Run{
		SourceHash:  sourceHash,
		Features:    features,
		Status:      StatusOK,
		ProgramHash: hash,
		Output:      string(data),
	}, nil
}

// FailureRun builds the record of a failed conversion.
func FailureRun(sourceHash, features, code, text string) Run {
	return Run{
		SourceHash: sourceHash,
		Features:   features,
		Status:     StatusError,
		ErrorCode:  code,
		ErrorText:  text,
	}
}

func (r Run) validate() error {
	if r.SourceHash == "" {
		return fmt.Errorf("source hash is required")
	}
	switch r.Status {
	case StatusOK:
		if r.Output == "" || r.ProgramHash == "" {
			return fmt.Errorf("ok run requires output and program hash")
		}
	case StatusError:
		if r.ErrorText == "" {
			return fmt.Errorf("error run requires error text")
		}
	default:
		return fmt.Errorf("invalid status %q", r.Status)
	}
	return nil
}
