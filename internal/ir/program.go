package ir

// Program is a resolved bril program. Functions keep declaration order.
type Program struct {
	Functions []Function
}

// Function is a resolved function. ReturnType is nil for functions without a result.
type Function struct {
	Name       string
	Args       []Argument
	Instrs     []Code
	ReturnType Type
	Pos        *Position
}

// Argument is a typed parameter declaration.
type Argument struct {
	Name string
	Type Type
}

// Code is an item of a function body: a Label or an Instruction.
type Code interface {
	isCode() // Sealed
}

// Label marks a jump target.
type Label struct {
	Label string
	Pos   *Position
}

// Instruction is a Constant, Value or Effect.
type Instruction interface {
	Code
	isInstruction()
	Position() *Position
}

// Constant writes a literal into Dest.
type Constant struct {
	Dest  string
	Type  Type
	Value Literal
	Pos   *Position
}

// Value computes Op over Args and writes the result into Dest.
type Value struct {
	Dest   string
	Op     ValueOp
	Type   Type
	Args   []string
	Funcs  []string
	Labels []string
	Pos    *Position
}

// Effect executes Op over Args for its side effect.
type Effect struct {
	Op     EffectOp
	Args   []string
	Funcs  []string
	Labels []string
	Pos    *Position
}

func (Label) isCode()    {}
func (Constant) isCode() {}
func (Value) isCode()    {}
func (Effect) isCode()   {}

func (Constant) isInstruction() {}
func (Value) isInstruction()    {}
func (Effect) isInstruction()   {}

func (i Constant) Position() *Position { return i.Pos }
func (i Value) Position() *Position    { return i.Pos }
func (i Effect) Position() *Position   { return i.Pos }

// Function returns the function called name, if present.
func (p *Program) Function(name string) (*Function, bool) {
	for i := range p.Functions {
		if p.Functions[i].Name == name {
			return &p.Functions[i], true
		}
	}
	return nil, false
}

// Instructions returns the function body without labels.
func (f *Function) Instructions() []Instruction {
	instrs := make([]Instruction, 0, len(f.Instrs))
	for _, c := range f.Instrs {
		if i, ok := c.(Instruction); ok {
			instrs = append(instrs, i)
		}
	}
	return instrs
}
