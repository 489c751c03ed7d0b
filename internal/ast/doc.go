// Package ast holds the abstract (loose) bril program tree produced by an upstream parser.
//
// Operation and type names are raw strings and types may be absent; nothing here is
// validated beyond JSON shape. Package convert turns an ast.Program into an ir.Program.
package ast
