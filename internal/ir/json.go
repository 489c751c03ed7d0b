package ir

import (
	"encoding/json"
	"fmt"
)

// Wire structs mirror the bril JSON format. Field order is the emission order.
type wireProgram struct {
	Functions []wireFunction `json:"functions"`
}

type wireFunction struct {
	Name   string    `json:"name"`
	Args   []wireArg `json:"args,omitempty"`
	Type   any       `json:"type,omitempty"`
	Instrs []any     `json:"instrs"`
	Pos    *Position `json:"pos,omitempty"`
}

type wireArg struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type wireLabel struct {
	Label string    `json:"label"`
	Pos   *Position `json:"pos,omitempty"`
}

type wireInstr struct {
	Op     string    `json:"op"`
	Dest   string    `json:"dest,omitempty"`
	Type   any       `json:"type,omitempty"`
	Value  any       `json:"value,omitempty"`
	Args   []string  `json:"args,omitempty"`
	Funcs  []string  `json:"funcs,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Pos    *Position `json:"pos,omitempty"`
}

// MarshalJSON encodes the program in the bril JSON format.
func (p Program) MarshalJSON() ([]byte, error) {
	wp := wireProgram{Functions: make([]wireFunction, 0, len(p.Functions))}
	for i, f := range p.Functions {
		wf, err := wireFunc(f)
		if err != nil {
			return nil, fmt.Errorf("functions[%d]: %w", i, err)
		}
		wp.Functions = append(wp.Functions, wf)
	}
	return json.Marshal(wp)
}

func wireFunc(f Function) (wireFunction, error) {
	wf := wireFunction{
		Name:   f.Name,
		Instrs: make([]any, 0, len(f.Instrs)),
		Pos:    f.Pos,
	}
	for _, a := range f.Args {
		t, err := TypeJSON(a.Type)
		if err != nil {
			return wf, fmt.Errorf("arg %q: %w", a.Name, err)
		}
		wf.Args = append(wf.Args, wireArg{Name: a.Name, Type: t})
	}
	if f.ReturnType != nil {
		t, err := TypeJSON(f.ReturnType)
		if err != nil {
			return wf, fmt.Errorf("return type: %w", err)
		}
		wf.Type = t
	}
	for i, c := range f.Instrs {
		wc, err := wireCode(c)
		if err != nil {
			return wf, fmt.Errorf("instrs[%d]: %w", i, err)
		}
		wf.Instrs = append(wf.Instrs, wc)
	}
	return wf, nil
}

func wireCode(c Code) (any, error) {
	switch c := c.(type) {
	case Label:
		return wireLabel{Label: c.Label, Pos: c.Pos}, nil
	case Constant:
		t, err := TypeJSON(c.Type)
		if err != nil {
			return nil, err
		}
		v, err := LiteralJSON(c.Value)
		if err != nil {
			return nil, err
		}
		return wireInstr{Op: ConstOp, Dest: c.Dest, Type: t, Value: v, Pos: c.Pos}, nil
	case Value:
		t, err := TypeJSON(c.Type)
		if err != nil {
			return nil, err
		}
		return wireInstr{
			Op:     c.Op.String(),
			Dest:   c.Dest,
			Type:   t,
			Args:   c.Args,
			Funcs:  c.Funcs,
			Labels: c.Labels,
			Pos:    c.Pos,
		}, nil
	case Effect:
		return wireInstr{
			Op:     c.Op.String(),
			Args:   c.Args,
			Funcs:  c.Funcs,
			Labels: c.Labels,
			Pos:    c.Pos,
		}, nil
	default:
		return nil, fmt.Errorf("unknown code type: %T", c)
	}
}

// TypeJSON returns the bril JSON form of t: a string for primitives,
// {"ptr": elem} for pointers.
func TypeJSON(t Type) (any, error) {
	switch t := t.(type) {
	case Int, Bool, Float:
		return t.String(), nil
	case Pointer:
		elem, err := TypeJSON(t.Elem)
		if err != nil {
			return nil, fmt.Errorf("ptr: %w", err)
		}
		return map[string]any{"ptr": elem}, nil
	default:
		return nil, fmt.Errorf("unknown type: %T", t)
	}
}

// LiteralJSON returns the JSON form of a literal. Float literals keep their
// decimal point so they decode back as floats.
func LiteralJSON(l Literal) (any, error) {
	switch l := l.(type) {
	case IntLit:
		return int64(l), nil
	case BoolLit:
		return bool(l), nil
	case FloatLit:
		return json.Number(l.String()), nil
	default:
		return nil, fmt.Errorf("unknown literal: %T", l)
	}
}
