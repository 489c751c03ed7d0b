package convert

import (
	"errors"
	"fmt"

	"github.com/roach88/brilir/internal/ir"
)

// Kind classifies a conversion failure.
type Kind int

const (
	// InvalidPrimitive is an unrecognised bare type name.
	InvalidPrimitive Kind = iota + 1
	// InvalidParameterized is an unrecognised type constructor.
	InvalidParameterized
	// InvalidValueOps is an unrecognised value opcode.
	InvalidValueOps
	// InvalidEffectOps is an unrecognised effect opcode.
	InvalidEffectOps
	// MissingType is an absent type where one is required.
	MissingType
)

// Error codes (E201-E205) reported by the CLI.
const (
	ErrCodeInvalidPrimitive     = "E201"
	ErrCodeInvalidParameterized = "E202"
	ErrCodeInvalidValueOps      = "E203"
	ErrCodeInvalidEffectOps     = "E204"
	ErrCodeMissingType          = "E205"
)

var kindNames = map[Kind]string{
	InvalidPrimitive:     "InvalidPrimitive",
	InvalidParameterized: "InvalidParameterized",
	InvalidValueOps:      "InvalidValueOps",
	InvalidEffectOps:     "InvalidEffectOps",
	MissingType:          "MissingType",
}

var kindCodes = map[Kind]string{
	InvalidPrimitive:     ErrCodeInvalidPrimitive,
	InvalidParameterized: ErrCodeInvalidParameterized,
	InvalidValueOps:      ErrCodeInvalidValueOps,
	InvalidEffectOps:     ErrCodeInvalidEffectOps,
	MissingType:          ErrCodeMissingType,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Code returns the stable CLI error code for k.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return "E200"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// ConversionError is the reason a conversion failed. Name is the offending token;
// Inner is the text of the type argument for InvalidParameterized.
type ConversionError struct {
	Kind  Kind
	Name  string
	Inner string
}

func (e *ConversionError) Error() string {
	switch e.Kind {
	case InvalidPrimitive:
		return fmt.Sprintf("Expected a primitive type like int or bool, found %s", e.Name)
	case InvalidParameterized:
		return fmt.Sprintf("Expected a parameterized type like ptr, found %s<%s>", e.Name, e.Inner)
	case InvalidValueOps:
		return fmt.Sprintf("Expected a value operation, found %s", e.Name)
	case InvalidEffectOps:
		return fmt.Sprintf("Expected an effect operation, found %s", e.Name)
	case MissingType:
		return "Missing type signature"
	default:
		return fmt.Sprintf("conversion error %d: %s", int(e.Kind), e.Name)
	}
}

// Is matches another *ConversionError with the same Kind, so callers can
// write errors.Is(err, &ConversionError{Kind: MissingType}).
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	if !ok {
		return false
	}
	if t.Name == "" && t.Inner == "" {
		return e.Kind == t.Kind
	}
	return *e == *t
}

// At attaches a position. pos may be nil when none is known or tracking is off.
func (e *ConversionError) At(pos *ir.Position) *PositionalError {
	return &PositionalError{Err: e, Pos: pos}
}

// PositionalError is a reason plus the location of the nearest positioned container.
type PositionalError struct {
	Err *ConversionError
	Pos *ir.Position
}

// Error renders "Line R, Column C: reason", or the bare reason without a position.
func (e *PositionalError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("Line %d, Column %d: %s", e.Pos.Row, e.Pos.Col, e.Err)
	}
	return e.Err.Error()
}

func (e *PositionalError) Unwrap() error {
	return e.Err
}

// Reason extracts the underlying reason from any conversion failure.
func Reason(err error) (*ConversionError, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func invalidPrimitive(name string) *ConversionError {
	return &ConversionError{Kind: InvalidPrimitive, Name: name}
}

func invalidParameterized(name, inner string) *ConversionError {
	return &ConversionError{Kind: InvalidParameterized, Name: name, Inner: inner}
}

func invalidValueOp(name string) *ConversionError {
	return &ConversionError{Kind: InvalidValueOps, Name: name}
}

func invalidEffectOp(name string) *ConversionError {
	return &ConversionError{Kind: InvalidEffectOps, Name: name}
}

func missingType() *ConversionError {
	return &ConversionError{Kind: MissingType}
}
