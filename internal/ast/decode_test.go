package ast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/brilir/internal/ir"
)

const sampleProgram = `{
  "functions": [
    {
      "name": "main",
      "args": [{"name": "n", "type": "int"}, {"name": "p", "type": {"ptr": "float"}}],
      "type": "bool",
      "instrs": [
        {"op": "const", "dest": "one", "type": "int", "value": 1, "pos": {"row": 2, "col": 3}},
        {"label": "loop", "pos": {"row": 3, "col": 1}},
        {"op": "add", "dest": "n", "type": "int", "args": ["n", "one"]},
        {"op": "call", "dest": "r", "type": "bool", "funcs": ["check"], "args": ["n"]},
        {"op": "br", "args": ["r"], "labels": ["loop", "done"]},
        {"label": "done"},
        {"op": "ret", "args": ["r"]}
      ],
      "pos": {"row": 1, "col": 1}
    }
  ]
}`

func TestParseSampleProgram(t *testing.T) {
	p, err := Parse([]byte(sampleProgram))
	require.NoError(t, err)
	require.Len(t, p.Functions, 1)

	f := p.Functions[0]
	assert.Equal(t, "main", f.Name)
	assert.Equal(t, &ir.Position{Row: 1, Col: 1}, f.Pos)
	assert.Equal(t, Prim("bool"), f.ReturnType)
	assert.Equal(t, []Argument{
		{Name: "n", Type: Prim("int")},
		{Name: "p", Type: Param("ptr", Prim("float"))},
	}, f.Args)

	require.Len(t, f.Instrs, 7)
	assert.Equal(t, Constant{
		Dest: "one", Op: "const", Type: Prim("int"), Value: ir.IntLit(1),
		Pos: &ir.Position{Row: 2, Col: 3},
	}, f.Instrs[0])
	assert.Equal(t, Label{Label: "loop", Pos: &ir.Position{Row: 3, Col: 1}}, f.Instrs[1])
	assert.Equal(t, Value{Dest: "n", Op: "add", Type: Prim("int"), Args: []string{"n", "one"}}, f.Instrs[2])
	assert.Equal(t, Value{Dest: "r", Op: "call", Type: Prim("bool"), Args: []string{"n"}, Funcs: []string{"check"}}, f.Instrs[3])
	assert.Equal(t, Effect{Op: "br", Args: []string{"r"}, Labels: []string{"loop", "done"}}, f.Instrs[4])
	assert.Equal(t, Label{Label: "done"}, f.Instrs[5])
	assert.Equal(t, Effect{Op: "ret", Args: []string{"r"}}, f.Instrs[6])
}

func TestParseKeepsUnknownOpcodes(t *testing.T) {
	// Opcode validation belongs to package convert.
	p, err := Parse([]byte(`{"functions":[{"name":"f","instrs":[{"op":"xor","dest":"x","type":"int"},{"op":"halt"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, Value{Dest: "x", Op: "xor", Type: Prim("int")}, p.Functions[0].Instrs[0])
	assert.Equal(t, Effect{Op: "halt"}, p.Functions[0].Instrs[1])
}

func TestParseMissingTypesAreNil(t *testing.T) {
	p, err := Parse([]byte(`{"functions":[{"name":"f","args":[{"name":"a"}],"instrs":[{"op":"id","dest":"x","args":["a"]},{"op":"const","dest":"c","value":true,"type":null}]}]}`))
	require.NoError(t, err)

	f := p.Functions[0]
	assert.Nil(t, f.Args[0].Type)
	assert.Nil(t, f.ReturnType)
	assert.Nil(t, f.Instrs[0].(Value).Type)
	assert.Nil(t, f.Instrs[1].(Constant).Type)
	assert.Equal(t, ir.BoolLit(true), f.Instrs[1].(Constant).Value)
}

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want ir.Literal
	}{
		{"0", ir.IntLit(0)},
		{"-42", ir.IntLit(-42)},
		{"9223372036854775807", ir.IntLit(9223372036854775807)},
		{"true", ir.BoolLit(true)},
		{"false", ir.BoolLit(false)},
		{"1.5", ir.FloatLit(1.5)},
		{"2.0", ir.FloatLit(2)},
		{"1e3", ir.FloatLit(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeLiteral([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeLiteralRejects(t *testing.T) {
	for _, in := range []string{"null", `"str"`, "[1]", `{"a":1}`, "99999999999999999999"} {
		_, err := DecodeLiteral([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestParseErrorsCarryPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		path string
	}{
		{
			"const without value",
			`{"functions":[{"name":"f","instrs":[{"op":"const","dest":"x","type":"int"}]}]}`,
			"functions[0].instrs[0].value",
		},
		{
			"instruction without op",
			`{"functions":[{"name":"f","instrs":[{"dest":"x","type":"int"}]}]}`,
			"functions[0].instrs[0].op",
		},
		{
			"parameterized type with two keys",
			`{"functions":[{"name":"f","args":[{"name":"a","type":{"ptr":"int","vec":"int"}}]}]}`,
			"functions[0].args[0].type",
		},
		{
			"numeric type",
			`{"functions":[{"name":"f","type":3}]}`,
			"functions[0].type",
		},
		{
			"parameterized type without argument",
			`{"functions":[{"name":"f","instrs":[{"op":"alloc","dest":"p","type":{"ptr":null}}]}]}`,
			"functions[0].instrs[0].type.ptr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.path, de.Path)
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"functions": [`))
	assert.Error(t, err)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "int", Prim("int").String())
	assert.Equal(t, "ptr<int>", Param("ptr", Prim("int")).String())
	assert.Equal(t, "vec<ptr<bool>>", Param("vec", Param("ptr", Prim("bool"))).String())
	assert.Equal(t, "ptr<>", Parameterized{Name: "ptr"}.String())
}
