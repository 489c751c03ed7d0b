// Package harness runs conversion scenarios: a bril JSON program, a feature
// configuration and the expected outcome.
//
// A scenario expects either success or a specific failure kind (optionally with
// its exact display text). Successful conversions can additionally be pinned by
// a golden file holding the canonical JSON of the resolved program; failures
// snapshot as canonical JSON of the error code, kind and message.
//
// Every scenario is converted twice, sequentially and with
// convert.Converter.ProgramConcurrent, and the two outcomes must agree.
//
// Scenario files are YAML:
//
//	name: float_disabled
//	description: fadd is rejected without the float extension
//	program: programs/fadd.json
//	features: [position]
//	expect:
//	  error:
//	    kind: InvalidValueOps
//	    message: "Line 4, Column 5: Expected a value operation, found fadd"
//	golden: true
package harness
