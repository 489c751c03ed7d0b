package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/brilir/internal/ast"
	"github.com/roach88/brilir/internal/config"
	"github.com/roach88/brilir/internal/ir"
)

func TestResolveTypeCore(t *testing.T) {
	for _, features := range []config.Features{{}, config.Default(), config.All()} {
		c := New(features)

		got, err := c.Type(ast.Prim("int"))
		require.NoError(t, err)
		assert.Equal(t, ir.Int{}, got)

		got, err = c.Type(ast.Prim("bool"))
		require.NoError(t, err)
		assert.Equal(t, ir.Bool{}, got)
	}
}

func TestResolveTypeFloatGated(t *testing.T) {
	_, err := New(config.Default()).Type(ast.Prim("float"))
	require.Error(t, err)
	assert.Equal(t, &ConversionError{Kind: InvalidPrimitive, Name: "float"}, err)

	got, err := New(config.Features{Float: true}).Type(ast.Prim("float"))
	require.NoError(t, err)
	assert.Equal(t, ir.Float{}, got)
}

func TestResolveTypePointerGated(t *testing.T) {
	_, err := New(config.Default()).Type(ast.Param("ptr", ast.Prim("int")))
	require.Error(t, err)
	assert.Equal(t, &ConversionError{Kind: InvalidParameterized, Name: "ptr", Inner: "int"}, err)
	assert.Equal(t, "Expected a parameterized type like ptr, found ptr<int>", err.Error())

	got, err := New(config.Features{Memory: true}).Type(ast.Param("ptr", ast.Prim("int")))
	require.NoError(t, err)
	assert.Equal(t, ir.Pointer{Elem: ir.Int{}}, got)
}

func TestResolveTypeNestedPointer(t *testing.T) {
	c := New(config.All())
	got, err := c.Type(ast.Param("ptr", ast.Param("ptr", ast.Prim("float"))))
	require.NoError(t, err)
	assert.Equal(t, ir.PtrTo(ir.PtrTo(ir.Float{})), got)
	assert.Equal(t, "ptr<ptr<float>>", got.String())
}

func TestResolveTypeInnerFailurePropagatesUnchanged(t *testing.T) {
	c := New(config.Features{Memory: true})

	// float is disabled, so the inner primitive fails and the reason is not rewrapped.
	_, err := c.Type(ast.Param("ptr", ast.Param("ptr", ast.Prim("float"))))
	require.Error(t, err)
	assert.Equal(t, &ConversionError{Kind: InvalidPrimitive, Name: "float"}, err)
}

func TestResolveTypeUnknownNames(t *testing.T) {
	c := New(config.All())

	tests := []struct {
		name string
		in   ast.Type
		want *ConversionError
	}{
		{"unknown primitive", ast.Prim("string"), &ConversionError{Kind: InvalidPrimitive, Name: "string"}},
		{"case sensitive", ast.Prim("Int"), &ConversionError{Kind: InvalidPrimitive, Name: "Int"}},
		{"empty name", ast.Prim(""), &ConversionError{Kind: InvalidPrimitive, Name: ""}},
		{"unknown constructor", ast.Param("vec", ast.Prim("int")), &ConversionError{Kind: InvalidParameterized, Name: "vec", Inner: "int"}},
		{"nested inner text", ast.Param("box", ast.Param("ptr", ast.Prim("bool"))), &ConversionError{Kind: InvalidParameterized, Name: "box", Inner: "ptr<bool>"}},
		{"ptr is not a primitive", ast.Prim("ptr"), &ConversionError{Kind: InvalidPrimitive, Name: "ptr"}},
		{"int is not a constructor", ast.Param("int", ast.Prim("int")), &ConversionError{Kind: InvalidParameterized, Name: "int", Inner: "int"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Type(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestResolveTypeMissingAlwaysMissingType(t *testing.T) {
	for _, features := range []config.Features{{}, config.Default(), config.All()} {
		_, err := New(features).Type(nil)
		require.Error(t, err)
		assert.Equal(t, &ConversionError{Kind: MissingType}, err)
		assert.Equal(t, "Missing type signature", err.Error())
	}
}

func TestResolveTypePointerWithoutArgumentIsMissingType(t *testing.T) {
	_, err := New(config.All()).Type(ast.Parameterized{Name: "ptr"})
	require.Error(t, err)
	assert.Equal(t, &ConversionError{Kind: MissingType}, err)
}
