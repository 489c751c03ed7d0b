package convert

import (
	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/config"
	"github.com/roach88/brilir/internal/ir"
)

// Converter resolves abstract programs under a fixed feature configuration.
// It holds no mutable state and is safe for concurrent use.
type Converter struct {
	features config.Features
}

// New returns a converter for the given features.
func New(features config.Features) *Converter {
	return &Converter{features: features}
}

// Features returns the configuration the converter was built with.
func (c *Converter) Features() config.Features {
	return c.features
}

// Convert is shorthand for New(features).Program(p).
func Convert(p ast.Program, features config.Features) (*ir.Program, error) {
	return New(features).Program(p)
}

// position returns a fresh copy of pos when tracking is enabled, nil otherwise.
func (c *Converter) position(pos *ir.Position) *ir.Position {
	if !c.features.Position || pos == nil {
		return nil
	}
	p := *pos
	return &p
}

func (c *Converter) convertCode(code ast.Code) (ir.Code, *PositionalError) {
	switch code := code.(type) {
	case ast.Label:
		return ir.Label{Label: code.Label, Pos: c.position(code.Pos)}, nil
	case ast.Instruction:
		return c.convertInstruction(code)
	default:
		return c.convertInstruction(nil)
	}
}

// Code converts a label or instruction. Labels pass through unchanged.
func (c *Converter) Code(code ast.Code) (ir.Code, error) {
	out, err := c.convertCode(code)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Converter) convertArgument(a ast.Argument) (ir.Argument, *ConversionError) {
	typ, err := c.resolveType(a.Type)
	if err != nil {
		return ir.Argument{}, err
	}
	return ir.Argument{Name: a.Name, Type: typ}, nil
}

// Argument converts a parameter declaration. Arguments have no position,
// so the error is the bare *ConversionError; Function positions it.
func (c *Converter) Argument(a ast.Argument) (ir.Argument, error) {
	out, err := c.convertArgument(a)
	if err != nil {
		return ir.Argument{}, err
	}
	return out, nil
}

// convertFunction converts arguments, then code, then the return type, stopping
// at the first failure. Argument and return-type failures are blamed on the
// function's position; code failures already carry the instruction's.
func (c *Converter) convertFunction(f ast.Function) (ir.Function, *PositionalError) {
	pos := c.position(f.Pos)

	var args []ir.Argument
	if f.Args != nil {
		args = make([]ir.Argument, 0, len(f.Args))
	}
	for _, a := range f.Args {
		arg, err := c.convertArgument(a)
		if err != nil {
			return ir.Function{}, err.At(pos)
		}
		args = append(args, arg)
	}

	instrs := make([]ir.Code, 0, len(f.Instrs))
	for _, code := range f.Instrs {
		out, err := c.convertCode(code)
		if err != nil {
			return ir.Function{}, err
		}
		instrs = append(instrs, out)
	}

	var ret ir.Type
	if f.ReturnType != nil {
		t, err := c.resolveType(f.ReturnType)
		if err != nil {
			return ir.Function{}, err.At(pos)
		}
		ret = t
	}

	return ir.Function{
		Name:       f.Name,
		Args:       args,
		Instrs:     instrs,
		ReturnType: ret,
		Pos:        pos,
	}, nil
}

// Function converts one function. The error, if any, is a *PositionalError.
func (c *Converter) Function(f ast.Function) (ir.Function, error) {
	out, err := c.convertFunction(f)
	if err != nil {
		return ir.Function{}, err
	}
	return out, nil
}

// Program converts functions in declaration order and returns the first failure
// unchanged. Functions after a failing one are never inspected.
func (c *Converter) Program(p ast.Program) (*ir.Program, error) {
	funcs := make([]ir.Function, 0, len(p.Functions))
	for _, f := range p.Functions {
		out, err := c.convertFunction(f)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, out)
	}
	return &ir.Program{Functions: funcs}, nil
}
