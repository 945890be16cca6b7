// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "encoding/binary"

// Operation is a single parsed instruction: an opcode together with the
// bytes it pushes, if any.  Data is empty unless Op is a push opcode, in
// which case it holds the literal bytes that get placed on the stack when
// the operation executes.
type Operation struct {
	Op   Opcode
	Data []byte
}

// isPush reports whether op is a push operation.
func (op Operation) isPush() bool {
	return isPushOpcode(op.Op)
}

// bytes re-serializes a single Operation back to its wire form.
func (op Operation) bytes() []byte {
	if op.Op == OP_RAW_DATA {
		return op.Data
	}

	switch op.Op {
	case OP_SPECIAL:
		buf := make([]byte, 1+len(op.Data))
		buf[0] = byte(len(op.Data))
		copy(buf[1:], op.Data)
		return buf

	case OP_PUSHDATA1:
		buf := make([]byte, 2+len(op.Data))
		buf[0] = byte(OP_PUSHDATA1)
		buf[1] = byte(len(op.Data))
		copy(buf[2:], op.Data)
		return buf

	case OP_PUSHDATA2:
		buf := make([]byte, 3+len(op.Data))
		buf[0] = byte(OP_PUSHDATA2)
		binary.LittleEndian.PutUint16(buf[1:3], uint16(len(op.Data)))
		copy(buf[3:], op.Data)
		return buf

	case OP_PUSHDATA4:
		buf := make([]byte, 5+len(op.Data))
		buf[0] = byte(OP_PUSHDATA4)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(len(op.Data)))
		copy(buf[5:], op.Data)
		return buf

	default:
		return []byte{byte(op.Op)}
	}
}

// Script is an ordered sequence of parsed operations.  It is built once by
// Parse (or by a ScriptBuilder) and is read-only to the interpreter: the
// interpreter's own Stack, alternate stack, and conditional state are what
// mutate during a run, never the Script itself.
type Script []Operation

// Parse decodes raw into a Script following the compact bytecode encoding
// of section 4.1: a leading byte either names an opcode directly or, for
// 1..75, introduces that many literal data bytes; OP_PUSHDATA1/2/4 read an
// explicit length prefix first.
//
// If the stream ends mid-push, Parse returns the empty Script rather than
// an error: every byte maps to some opcode so the only way parsing can go
// wrong is an advertised push running past the end of the input, and the
// spec requires that case to degrade to "no script" rather than panic or
// propagate a parse error through execution.
func Parse(raw []byte) Script {
	script, ok := tryParse(raw)
	if !ok {
		return Script{}
	}
	return script
}

func tryParse(raw []byte) (Script, bool) {
	script := make(Script, 0, len(raw))
	for i := 0; i < len(raw); {
		b := raw[i]
		i++

		switch {
		case b == 0:
			script = append(script, Operation{Op: OP_0})

		case b >= 1 && b <= 75:
			n := int(b)
			if i+n > len(raw) {
				return nil, false
			}
			script = append(script, Operation{Op: OP_SPECIAL, Data: raw[i : i+n]})
			i += n

		case Opcode(b) == OP_PUSHDATA1:
			if i+1 > len(raw) {
				return nil, false
			}
			n := int(raw[i])
			i++
			if i+n > len(raw) {
				return nil, false
			}
			script = append(script, Operation{Op: OP_PUSHDATA1, Data: raw[i : i+n]})
			i += n

		case Opcode(b) == OP_PUSHDATA2:
			if i+2 > len(raw) {
				return nil, false
			}
			n := int(binary.LittleEndian.Uint16(raw[i : i+2]))
			i += 2
			if i+n > len(raw) {
				return nil, false
			}
			script = append(script, Operation{Op: OP_PUSHDATA2, Data: raw[i : i+n]})
			i += n

		case Opcode(b) == OP_PUSHDATA4:
			if i+4 > len(raw) {
				return nil, false
			}
			n := int(binary.LittleEndian.Uint32(raw[i : i+4]))
			i += 4
			if i+n > len(raw) {
				return nil, false
			}
			script = append(script, Operation{Op: OP_PUSHDATA4, Data: raw[i : i+n]})
			i += n

		default:
			script = append(script, Operation{Op: opFromByte(b)})
		}
	}
	return script, true
}

// Serialize re-encodes a Script to its wire form.  parse(serialize(s)) == s
// for any s produced by Parse, or otherwise satisfying the push-length
// invariant of section 3.
func (s Script) Serialize() []byte {
	out := make([]byte, 0, len(s)*2)
	for _, op := range s {
		out = append(out, op.bytes()...)
	}
	return out
}

// IsPushOnly reports whether every operation in s is a push operation. This
// is the gate applied to the input script before the P2SH redeem-script
// recursion is allowed to run.
func (s Script) IsPushOnly() bool {
	for _, op := range s {
		if !op.isPush() {
			return false
		}
	}
	return true
}

// newRawDataScript wraps uninterpreted bytes (e.g. a coinbase's scriptSig)
// in a one-operation Script tagged OP_RAW_DATA.  It is never produced by
// Parse and the interpreter fails immediately if asked to execute it; it
// exists purely so callers that need to carry a coinbase input script
// around have somewhere to put it without coercing it into push opcodes.
func newRawDataScript(data []byte) Script {
	return Script{{Op: OP_RAW_DATA, Data: data}}
}
