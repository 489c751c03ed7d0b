package ast

import "github.com/roach88/brilir/internal/ir"

// Program is an ordered list of functions as declared.
type Program struct {
	Functions []Function
}

// Function is an abstract function. A nil ReturnType means the function returns nothing.
type Function struct {
	Name       string
	Args       []Argument
	Instrs     []Code
	ReturnType Type
	Pos        *ir.Position
}

// Argument is a parameter declaration. Arguments carry no position of their own.
type Argument struct {
	Name string
	Type Type
}

// Type is a loose type expression: a bare name or name<inner>.
type Type interface {
	isType() // Sealed
	String() string
}

// Primitive is a bare type name such as "int".
type Primitive struct {
	Name string
}

// Parameterized is a type constructor applied to one argument, such as ptr<int>.
type Parameterized struct {
	Name  string
	Inner Type
}

func (Primitive) isType()     {}
func (Parameterized) isType() {}

func (t Primitive) String() string { return t.Name }

func (t Parameterized) String() string {
	inner := ""
	if t.Inner != nil {
		inner = t.Inner.String()
	}
	return t.Name + "<" + inner + ">"
}

// Code is a Label or an Instruction.
type Code interface {
	isCode() // Sealed
}

// Label marks a jump target.
type Label struct {
	Label string
	Pos   *ir.Position
}

// Instruction is a Constant, Value or Effect.
type Instruction interface {
	Code
	isInstruction()
}

// Constant writes Value into Dest. Op is always "const".
type Constant struct {
	Dest  string
	Op    string
	Type  Type
	Value ir.Literal
	Pos   *ir.Position
}

// Value computes Op and writes Dest.
type Value struct {
	Dest   string
	Op     string
	Type   Type
	Args   []string
	Funcs  []string
	Labels []string
	Pos    *ir.Position
}

// Effect executes Op for its side effect.
type Effect struct {
	Op     string
	Args   []string
	Funcs  []string
	Labels []string
	Pos    *ir.Position
}

func (Label) isCode()    {}
func (Constant) isCode() {}
func (Value) isCode()    {}
func (Effect) isCode()   {}

func (Constant) isInstruction() {}
func (Value) isInstruction()    {}
func (Effect) isInstruction()   {}

// Prim is shorthand for Primitive{Name: name}.
func Prim(name string) Primitive {
	return Primitive{Name: name}
}

// Param is shorthand for Parameterized{Name: name, Inner: inner}.
func Param(name string, inner Type) Parameterized {
	return Parameterized{Name: name, Inner: inner}
}
