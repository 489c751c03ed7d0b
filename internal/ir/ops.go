package ir

import "fmt"

// Extension identifies an optional group of bril vocabulary.
type Extension int

const (
	// Core vocabulary is always available.
	Core Extension = iota
	// FloatExt adds the float type and floating-point arithmetic.
	FloatExt
	// MemoryExt adds pointer types and heap operations.
	MemoryExt
	// SSAExt adds phi.
	SSAExt
	// SpeculateExt adds speculative execution effects.
	SpeculateExt
)

var extensionNames = [...]string{
	Core:         "core",
	FloatExt:     "float",
	MemoryExt:    "memory",
	SSAExt:       "ssa",
	SpeculateExt: "speculate",
}

func (e Extension) String() string {
	if e < 0 || int(e) >= len(extensionNames) {
		return fmt.Sprintf("Extension(%d)", int(e))
	}
	return extensionNames[e]
}

// Extensions lists every optional extension in declaration order.
func Extensions() []Extension {
	return []Extension{FloatExt, MemoryExt, SSAExt, SpeculateExt}
}

// ValueOp is an operation that writes a destination variable.
type ValueOp int

const (
	Add ValueOp = iota
	Mul
	Div
	Eq
	Lt
	Gt
	Le
	Ge
	Not
	And
	Or
	CallValue
	Id
	Sub
	Phi
	Fadd
	Fsub
	Fmul
	Fdiv
	Feq
	Flt
	Fgt
	Fle
	Fge
	Alloc
	Load
	PtrAdd
)

type opInfo struct {
	name string
	ext  Extension
}

var valueOps = [...]opInfo{
	Add:       {"add", Core},
	Mul:       {"mul", Core},
	Div:       {"div", Core},
	Eq:        {"eq", Core},
	Lt:        {"lt", Core},
	Gt:        {"gt", Core},
	Le:        {"le", Core},
	Ge:        {"ge", Core},
	Not:       {"not", Core},
	And:       {"and", Core},
	Or:        {"or", Core},
	CallValue: {"call", Core},
	Id:        {"id", Core},
	Sub:       {"sub", Core},
	Phi:       {"phi", SSAExt},
	Fadd:      {"fadd", FloatExt},
	Fsub:      {"fsub", FloatExt},
	Fmul:      {"fmul", FloatExt},
	Fdiv:      {"fdiv", FloatExt},
	Feq:       {"feq", FloatExt},
	Flt:       {"flt", FloatExt},
	Fgt:       {"fgt", FloatExt},
	Fle:       {"fle", FloatExt},
	Fge:       {"fge", FloatExt},
	Alloc:     {"alloc", MemoryExt},
	Load:      {"load", MemoryExt},
	PtrAdd:    {"ptradd", MemoryExt},
}

// String returns the bril opcode.
func (op ValueOp) String() string {
	if op < 0 || int(op) >= len(valueOps) {
		return fmt.Sprintf("ValueOp(%d)", int(op))
	}
	return valueOps[op].name
}

// Extension reports which extension gates op.
func (op ValueOp) Extension() Extension {
	if op < 0 || int(op) >= len(valueOps) {
		return Core
	}
	return valueOps[op].ext
}

// ValueOps returns every value operation in declaration order.
func ValueOps() []ValueOp {
	ops := make([]ValueOp, len(valueOps))
	for i := range valueOps {
		ops[i] = ValueOp(i)
	}
	return ops
}

// EffectOp is an operation executed for its side effect.
type EffectOp int

const (
	Jump EffectOp = iota
	Branch
	CallEffect
	Return
	Print
	Nop
	Store
	Free
	Speculate
	Commit
	Guard
)

var effectOps = [...]opInfo{
	Jump:       {"jmp", Core},
	Branch:     {"br", Core},
	CallEffect: {"call", Core},
	Return:     {"ret", Core},
	Print:      {"print", Core},
	Nop:        {"nop", Core},
	Store:      {"store", MemoryExt},
	Free:       {"free", MemoryExt},
	Speculate:  {"speculate", SpeculateExt},
	Commit:     {"commit", SpeculateExt},
	Guard:      {"guard", SpeculateExt},
}

// String returns the bril opcode.
func (op EffectOp) String() string {
	if op < 0 || int(op) >= len(effectOps) {
		return fmt.Sprintf("EffectOp(%d)", int(op))
	}
	return effectOps[op].name
}

// Extension reports which extension gates op.
func (op EffectOp) Extension() Extension {
	if op < 0 || int(op) >= len(effectOps) {
		return Core
	}
	return effectOps[op].ext
}

// EffectOps returns every effect operation in declaration order.
func EffectOps() []EffectOp {
	ops := make([]EffectOp, len(effectOps))
	for i := range effectOps {
		ops[i] = EffectOp(i)
	}
	return ops
}

var (
	valueOpsByName  = indexOps(ValueOps())
	effectOpsByName = indexOps(EffectOps())
)

func indexOps[T interface {
	~int
	String() string
}](ops []T) map[string]T {
	m := make(map[string]T, len(ops))
	for _, op := range ops {
		m[op.String()] = op
	}
	return m
}

// LookupValueOp finds a value operation by exact, case-sensitive opcode.
// It does not consider extensions; callers gate on op.Extension().
func LookupValueOp(name string) (ValueOp, bool) {
	op, ok := valueOpsByName[name]
	return op, ok
}

// LookupEffectOp finds an effect operation by exact, case-sensitive opcode.
func LookupEffectOp(name string) (EffectOp, bool) {
	op, ok := effectOpsByName[name]
	return op, ok
}

// ConstOp is the opcode carried by every constant instruction.
const ConstOp = "const"
