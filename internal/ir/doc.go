// Package ir provides the resolved (validated) intermediate representation for bril programs.
//
// Every operation and type in this package is drawn from a closed vocabulary. Downstream
// consumers can switch exhaustively over ValueOp, EffectOp and Type without re-validating.
//
// This package contains type definitions, encoders and hashing only. All other internal
// packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Position and Literal are shared with the abstract tree and never validated here
//   - Positions are present only when position tracking was enabled during conversion
//   - All JSON field names follow the bril wire format
//   - Entities are immutable once built; constructors copy nothing and mutate nothing
package ir
