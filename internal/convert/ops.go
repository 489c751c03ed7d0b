package convert

import "github.com/roach88/brilir/internal/ir"

// resolveValueOp maps an opcode written in value position to its tag.
// Names gated by a disabled extension are reported exactly like unknown names.
func (c *Converter) resolveValueOp(name string) (ir.ValueOp, *ConversionError) {
	op, ok := ir.LookupValueOp(name)
	if !ok || !c.features.Allows(op.Extension()) {
		return 0, invalidValueOp(name)
	}
	return op, nil
}

// resolveEffectOp maps an opcode written in effect position to its tag.
func (c *Converter) resolveEffectOp(name string) (ir.EffectOp, *ConversionError) {
	op, ok := ir.LookupEffectOp(name)
	if !ok || !c.features.Allows(op.Extension()) {
		return 0, invalidEffectOp(name)
	}
	return op, nil
}

// ValueOp resolves a value opcode under the converter's features.
func (c *Converter) ValueOp(name string) (ir.ValueOp, error) {
	op, err := c.resolveValueOp(name)
	if err != nil {
		return 0, err
	}
	return op, nil
}

// EffectOp resolves an effect opcode under the converter's features.
func (c *Converter) EffectOp(name string) (ir.EffectOp, error) {
	op, err := c.resolveEffectOp(name)
	if err != nil {
		return 0, err
	}
	return op, nil
}

// ValueVocabulary lists the value opcodes enabled by the converter's features.
func (c *Converter) ValueVocabulary() []ir.ValueOp {
	var ops []ir.ValueOp
	for _, op := range ir.ValueOps() {
		if c.features.Allows(op.Extension()) {
			ops = append(ops, op)
		}
	}
	return ops
}

// EffectVocabulary lists the effect opcodes enabled by the converter's features.
func (c *Converter) EffectVocabulary() []ir.EffectOp {
	var ops []ir.EffectOp
	for _, op := range ir.EffectOps() {
		if c.features.Allows(op.Extension()) {
			ops = append(ops, op)
		}
	}
	return ops
}
