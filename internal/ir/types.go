package ir

// Type is a resolved bril type.
// Only Int, Bool, Float and Pointer implement it; Float and Pointer are produced
// only when their extension is enabled.
type Type interface {
	isType() // Sealed
	String() string
}

// Int is the 64-bit integer type.
type Int struct{}

// Bool is the boolean type.
type Bool struct{}

// Float is the floating-point type (float extension).
type Float struct{}

// Pointer is a pointer to Elem (memory extension).
type Pointer struct {
	Elem Type
}

func (Int) isType()     {}
func (Bool) isType()    {}
func (Float) isType()   {}
func (Pointer) isType() {}

func (Int) String() string   { return "int" }
func (Bool) String() string  { return "bool" }
func (Float) String() string { return "float" }

func (p Pointer) String() string {
	if p.Elem == nil {
		return "ptr<?>"
	}
	return "ptr<" + p.Elem.String() + ">"
}

// PtrTo returns the pointer type with element t.
func PtrTo(t Type) Pointer {
	return Pointer{Elem: t}
}
