package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/brilir/internal/ir"
)

// DecodeError reports malformed bril JSON. Path locates the offending element.
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Decode reads one bril JSON program from r.
func Decode(r io.Reader) (*Program, error) {
	var p Program
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Parse decodes a bril JSON program from data.
func Parse(data []byte) (*Program, error) {
	return Decode(bytes.NewReader(data))
}

type rawProgram struct {
	Functions []rawFunction `json:"functions"`
}

type rawFunction struct {
	Name   string            `json:"name"`
	Args   []rawArgument     `json:"args"`
	Type   json.RawMessage   `json:"type"`
	Instrs []json.RawMessage `json:"instrs"`
	Pos    *ir.Position      `json:"pos"`
}

type rawArgument struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

type rawCode struct {
	Label  *string         `json:"label"`
	Op     string          `json:"op"`
	Dest   *string         `json:"dest"`
	Type   json.RawMessage `json:"type"`
	Value  json.RawMessage `json:"value"`
	Args   []string        `json:"args"`
	Funcs  []string        `json:"funcs"`
	Labels []string        `json:"labels"`
	Pos    *ir.Position    `json:"pos"`
}

// UnmarshalJSON decodes the bril JSON program format.
func (p *Program) UnmarshalJSON(data []byte) error {
	var raw rawProgram
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	funcs := make([]Function, 0, len(raw.Functions))
	for i, rf := range raw.Functions {
		f, err := decodeFunction(rf)
		if err != nil {
			return wrapPath(fmt.Sprintf("functions[%d]", i), err)
		}
		funcs = append(funcs, f)
	}
	p.Functions = funcs
	return nil
}

func decodeFunction(rf rawFunction) (Function, error) {
	f := Function{Name: rf.Name, Pos: rf.Pos}

	for i, ra := range rf.Args {
		t, err := decodeType(ra.Type)
		if err != nil {
			return f, wrapPath(fmt.Sprintf("args[%d].type", i), err)
		}
		f.Args = append(f.Args, Argument{Name: ra.Name, Type: t})
	}

	rt, err := decodeType(rf.Type)
	if err != nil {
		return f, wrapPath("type", err)
	}
	f.ReturnType = rt

	for i, rc := range rf.Instrs {
		c, err := decodeCode(rc)
		if err != nil {
			return f, wrapPath(fmt.Sprintf("instrs[%d]", i), err)
		}
		f.Instrs = append(f.Instrs, c)
	}
	return f, nil
}

func decodeCode(data json.RawMessage) (Code, error) {
	var rc rawCode
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, err
	}

	if rc.Label != nil {
		return Label{Label: *rc.Label, Pos: rc.Pos}, nil
	}

	t, err := decodeType(rc.Type)
	if err != nil {
		return nil, wrapPath("type", err)
	}

	if rc.Op == ir.ConstOp {
		if len(rc.Value) == 0 {
			return nil, &DecodeError{Path: "value", Message: "const instruction requires a value"}
		}
		lit, err := DecodeLiteral(rc.Value)
		if err != nil {
			return nil, wrapPath("value", err)
		}
		return Constant{
			Dest:  deref(rc.Dest),
			Op:    rc.Op,
			Type:  t,
			Value: lit,
			Pos:   rc.Pos,
		}, nil
	}

	if rc.Op == "" {
		return nil, &DecodeError{Path: "op", Message: "instruction requires an op"}
	}

	if rc.Dest != nil {
		return Value{
			Dest:   *rc.Dest,
			Op:     rc.Op,
			Type:   t,
			Args:   rc.Args,
			Funcs:  rc.Funcs,
			Labels: rc.Labels,
			Pos:    rc.Pos,
		}, nil
	}

	return Effect{
		Op:     rc.Op,
		Args:   rc.Args,
		Funcs:  rc.Funcs,
		Labels: rc.Labels,
		Pos:    rc.Pos,
	}, nil
}

// decodeType returns nil for an absent or null type.
// Strings are primitives; single-key objects are parameterized types.
func decodeType(data json.RawMessage) (Type, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, err
		}
		return Primitive{Name: name}, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		if len(obj) != 1 {
			return nil, &DecodeError{Message: fmt.Sprintf("parameterized type must have exactly one key, found %d", len(obj))}
		}
		for name, innerData := range obj {
			inner, err := decodeType(innerData)
			if err != nil {
				return nil, wrapPath(name, err)
			}
			if inner == nil {
				return nil, &DecodeError{Path: name, Message: "parameterized type requires an argument"}
			}
			return Parameterized{Name: name, Inner: inner}, nil
		}
	}

	return nil, &DecodeError{Message: fmt.Sprintf("type must be a string or object, found %s", string(data))}
}

// DecodeLiteral decodes a constant value. Integral numbers become ir.IntLit,
// numbers with a fraction or exponent become ir.FloatLit.
func DecodeLiteral(data json.RawMessage) (ir.Literal, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case bool:
		return ir.BoolLit(v), nil
	case json.Number:
		s := v.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &DecodeError{Message: fmt.Sprintf("invalid float literal %s", s)}
			}
			return ir.FloatLit(f), nil
		}
		n, err := v.Int64()
		if err != nil {
			return nil, &DecodeError{Message: fmt.Sprintf("integer literal out of int64 range: %s", s)}
		}
		return ir.IntLit(n), nil
	case nil:
		return nil, &DecodeError{Message: "null literal is not allowed"}
	default:
		return nil, &DecodeError{Message: fmt.Sprintf("unsupported literal: %s", string(data))}
	}
}

func wrapPath(prefix string, err error) error {
	if de, ok := err.(*DecodeError); ok {
		path := prefix
		if de.Path != "" {
			path = prefix + "." + de.Path
		}
		return &DecodeError{Path: path, Message: de.Message}
	}
	return &DecodeError{Path: prefix, Message: err.Error()}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
