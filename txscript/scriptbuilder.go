// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "math/big"

// ScriptBuilder provides a facility for building custom scripts. It allows
// you to push opcodes, ints, and data while respecting canonical encoding.
// In general it does not ensure the script will execute correctly, however
// any data pushes added with AddData will be automatically converted to
// pushed bytes using the canonical minimal encoding used by Parse.
type ScriptBuilder struct {
	script Script
}

// AddOp pushes the passed opcode to the end of the script.  It is the
// caller's responsibility to use this only for non-push opcodes;
// AddData and AddInt64 cover the push opcodes.
func (b *ScriptBuilder) AddOp(op Opcode) *ScriptBuilder {
	b.script = append(b.script, Operation{Op: op})
	return b
}

// AddData pushes the passed data to the end of the script, choosing
// OP_SPECIAL for short pushes and the smallest OP_PUSHDATA variant that
// fits for longer ones, mirroring how Parse classifies pushes on the way
// in.
func (b *ScriptBuilder) AddData(data []byte) *ScriptBuilder {
	switch {
	case len(data) == 0:
		b.script = append(b.script, Operation{Op: OP_0})
	case len(data) <= 75:
		b.script = append(b.script, Operation{Op: OP_SPECIAL, Data: data})
	case len(data) <= 0xff:
		b.script = append(b.script, Operation{Op: OP_PUSHDATA1, Data: data})
	case len(data) <= 0xffff:
		b.script = append(b.script, Operation{Op: OP_PUSHDATA2, Data: data})
	default:
		b.script = append(b.script, Operation{Op: OP_PUSHDATA4, Data: data})
	}
	return b
}

// AddInt64 pushes the passed integer to the end of the script, using the
// dedicated OP_1NEGATE/OP_1..OP_16 opcodes for the values they cover and
// falling back to a generic minimal-encoding data push otherwise.
func (b *ScriptBuilder) AddInt64(val int64) *ScriptBuilder {
	switch {
	case val == -1:
		return b.AddOp(OP_1NEGATE)
	case val == 0:
		return b.AddOp(OP_0)
	case val >= 1 && val <= 16:
		return b.AddOp(Opcode(int(OP_1) + int(val) - 1))
	}
	return b.AddData(scriptNumToBytes(big.NewInt(val)))
}

// Script returns the currently built script.
func (b *ScriptBuilder) Script() Script {
	return b.script
}
