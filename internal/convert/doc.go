// Package convert turns an abstract bril program (package ast) into a resolved one (package ir).
//
// Conversion is a pure function: it never mutates its input, never logs, and returns either a
// complete resolved tree or the first failure. Operation and type names are resolved against the
// vocabulary enabled by a config.Features value; nothing else (labels, variables, arity) is checked.
//
// Failures are two-level. A *ConversionError names the reason. Since types and opcodes carry no
// source location, the reason is wrapped into a *PositionalError by the nearest enclosing element
// that has one: the instruction, or for arguments and return types, the function.
package convert
