package convert

import (
	"slices"

	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/ir"
)

// convertInstruction resolves the type and opcode of one instruction.
// Every failure is positioned with the instruction's own location.
// Destinations, arguments, callees and labels pass through unvalidated.
func (c *Converter) convertInstruction(i ast.Instruction) (ir.Instruction, *PositionalError) {
	switch i := i.(type) {
	case ast.Constant:
		pos := c.position(i.Pos)
		typ, err := c.resolveType(i.Type)
		if err != nil {
			return nil, err.At(pos)
		}
		return ir.Constant{
			Dest:  i.Dest,
			Type:  typ,
			Value: i.Value,
			Pos:   pos,
		}, nil

	case ast.Value:
		pos := c.position(i.Pos)
		typ, err := c.resolveType(i.Type)
		if err != nil {
			return nil, err.At(pos)
		}
		op, err := c.resolveValueOp(i.Op)
		if err != nil {
			return nil, err.At(pos)
		}
		return ir.Value{
			Dest:   i.Dest,
			Op:     op,
			Type:   typ,
			Args:   slices.Clone(i.Args),
			Funcs:  slices.Clone(i.Funcs),
			Labels: slices.Clone(i.Labels),
			Pos:    pos,
		}, nil

	case ast.Effect:
		pos := c.position(i.Pos)
		op, err := c.resolveEffectOp(i.Op)
		if err != nil {
			return nil, err.At(pos)
		}
		return ir.Effect{
			Op:     op,
			Args:   slices.Clone(i.Args),
			Funcs:  slices.Clone(i.Funcs),
			Labels: slices.Clone(i.Labels),
			Pos:    pos,
		}, nil

	default:
		// Only reachable with a nil instruction.
		return nil, invalidEffectOp("").At(nil)
	}
}

// Instruction converts one instruction. The error, if any, is a *PositionalError.
func (c *Converter) Instruction(i ast.Instruction) (ir.Instruction, error) {
	out, err := c.convertInstruction(i)
	if err != nil {
		return nil, err
	}
	return out, nil
}
