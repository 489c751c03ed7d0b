package ir

import (
	"fmt"
	"strconv"
)

// Position is a 1-based source location supplied by the upstream parser.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Literal is the value of a constant instruction.
// Only IntLit, BoolLit and FloatLit implement it.
type Literal interface {
	literal() // Sealed
	String() string
}

// IntLit is an integer literal.
type IntLit int64

func (IntLit) literal() {}

func (l IntLit) String() string { return strconv.FormatInt(int64(l), 10) }

// BoolLit is a boolean literal.
type BoolLit bool

func (BoolLit) literal() {}

func (l BoolLit) String() string { return strconv.FormatBool(bool(l)) }

// FloatLit is a floating-point literal. Literals pass through conversion untouched,
// so a FloatLit may appear even when the float extension is disabled.
type FloatLit float64

func (FloatLit) literal() {}

// String always includes a decimal point or exponent so the text re-parses as a float.
func (l FloatLit) String() string {
	s := strconv.FormatFloat(float64(l), 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' || c == 'N' || c == 'I' {
			return s
		}
	}
	return s + ".0"
}
