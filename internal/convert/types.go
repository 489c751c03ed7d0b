package convert

import (
	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/ir"
)

type primitiveInfo struct {
	typ ir.Type
	ext ir.Extension
}

var primitives = map[string]primitiveInfo{
	"int":   {ir.Int{}, ir.Core},
	"bool":  {ir.Bool{}, ir.Core},
	"float": {ir.Float{}, ir.FloatExt},
}

// pointerName is the only recognised type constructor.
const pointerName = "ptr"

// resolveType converts a loose type expression. A nil t is a missing annotation.
// Inner failures of ptr<...> propagate unchanged.
func (c *Converter) resolveType(t ast.Type) (ir.Type, *ConversionError) {
	switch t := t.(type) {
	case nil:
		return nil, missingType()

	case ast.Primitive:
		if info, ok := primitives[t.Name]; ok && c.features.Allows(info.ext) {
			return info.typ, nil
		}
		return nil, invalidPrimitive(t.Name)

	case ast.Parameterized:
		if t.Name == pointerName && c.features.Allows(ir.MemoryExt) {
			elem, err := c.resolveType(t.Inner)
			if err != nil {
				return nil, err
			}
			return ir.PtrTo(elem), nil
		}
		inner := ""
		if t.Inner != nil {
			inner = t.Inner.String()
		}
		return nil, invalidParameterized(t.Name, inner)

	default:
		return nil, invalidPrimitive(t.String())
	}
}

// Type resolves a type expression, returning the bare *ConversionError on failure.
func (c *Converter) Type(t ast.Type) (ir.Type, error) {
	typ, err := c.resolveType(t)
	if err != nil {
		return nil, err
	}
	return typ, nil
}
