// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"golang.org/x/crypto/ripemd160"

	"github.com/TrustDataNetworkProject/libbitcoin/wire"
)

// Interpreter is the transient machine that executes a single Script
// against the spending transaction tx at input inputIndex.  It owns the
// main stack, the alternate stack, the conditional sub-machine, and the
// codeHashBegin cursor.  A Script itself never mutates; only the
// Interpreter's state does, and only for the duration of one Run.
type Interpreter struct {
	stack    stack
	altStack stack
	cond     conditionalStack

	script        Script
	codeHashBegin int

	tx         *wire.MsgTx
	inputIndex int
}

// NewInterpreter returns an Interpreter ready to evaluate scripts that
// spend input inputIndex of tx.  tx and inputIndex are only consulted by
// the signature-checking opcodes; everything else runs independently of
// them.
func NewInterpreter(tx *wire.MsgTx, inputIndex int) *Interpreter {
	return &Interpreter{tx: tx, inputIndex: inputIndex}
}

// MainStack returns a copy of the current main stack, top-last, i.e. in
// push order.  Used by the top-level evaluator to hand one Interpreter's
// resulting stack to the next as a starting point.
func (vm *Interpreter) MainStack() [][]byte {
	out := make([][]byte, len(vm.stack.items))
	copy(out, vm.stack.items)
	return out
}

// SetMainStack replaces the main stack wholesale.  items is taken as
// bottom-to-top, matching MainStack's output.
func (vm *Interpreter) SetMainStack(items [][]byte) {
	vm.stack.items = append([][]byte(nil), items...)
}

// Run executes script against the interpreter's current main stack.  Only
// the alternate stack, conditional stack, and codeHashBegin cursor reset at
// the start of a run; the main stack is left as the caller set it (Evaluate
// relies on this to feed the input script's resulting stack into the
// output script).
func (vm *Interpreter) Run(script Script) error {
	vm.altStack = stack{}
	vm.cond = conditionalStack{}
	vm.script = script
	vm.codeHashBegin = 0

	for pc := range script {
		log.Tracef("%v", newLogClosure(func() string {
			return fmt.Sprintf("stepping pc=%d op=%v", pc, script[pc].Op)
		}))

		if err := vm.step(pc); err != nil {
			return err
		}

		log.Tracef("%v", newLogClosure(func() string {
			var dstr, astr string
			if vm.stack.Depth() != 0 {
				dstr = "Stack:\n" + vm.stack.String()
			}
			if vm.altStack.Depth() != 0 {
				astr = "AltStack:\n" + vm.altStack.String()
			}
			return dstr + astr
		}))
	}

	if !vm.cond.closed() {
		return ErrUnbalancedConditional
	}

	log.Tracef("%v", newLogClosure(func() string {
		return fmt.Sprintf("run complete, final stack depth %d", vm.stack.Depth())
	}))
	return nil
}

// step executes the operation at position pc in the script currently
// being run.
func (vm *Interpreter) step(pc int) error {
	op := vm.script[pc]

	// The dead-branch rule takes priority over the disabled-opcode
	// check: a disabled opcode sitting in a branch that never executes
	// must not fail the script, only one that is actually reached.
	allow := !vm.cond.hasFailedBranches()
	if !allow && !isConditionalOpcode(op.Op) {
		return nil
	}

	if isDisabledOpcode(op.Op) {
		return ErrDisabledOpcode
	}

	switch op.Op {
	case OP_0:
		vm.stack.PushByteArray([]byte{})
		return nil

	case OP_SPECIAL, OP_PUSHDATA1, OP_PUSHDATA2, OP_PUSHDATA4:
		vm.stack.PushByteArray(op.Data)
		return nil

	case OP_CODESEPARATOR:
		vm.codeHashBegin = pc
		return nil
	}

	return vm.execute(op)
}

// execute dispatches every opcode that step does not handle itself (the
// OP_0, OP_SPECIAL and OP_PUSHDATA1/2/4 data pushes and OP_CODESEPARATOR),
// including the OP_1NEGATE and OP_1..OP_16 number pushes.  It mirrors
// the tagged-switch shape of the original interpreter rather than a
// function-pointer table: with a closed opcode enumeration there is
// nothing a dispatch table buys beyond what a switch already gives for
// free.
func (vm *Interpreter) execute(op Operation) error {
	switch op.Op {
	case OP_1NEGATE:
		vm.stack.PushInt(big.NewInt(-1))
		return nil

	case OP_1, OP_2, OP_3, OP_4, OP_5, OP_6, OP_7, OP_8, OP_9, OP_10,
		OP_11, OP_12, OP_13, OP_14, OP_15, OP_16:
		vm.stack.PushInt(big.NewInt(int64(smallIntValue(op.Op))))
		return nil

	case OP_NOP, OP_NOP1, OP_NOP2, OP_NOP3, OP_NOP4, OP_NOP5, OP_NOP6,
		OP_NOP7, OP_NOP8, OP_NOP9, OP_NOP10:
		return nil

	case OP_IF:
		return vm.opIf(false)
	case OP_NOTIF:
		return vm.opIf(true)
	case OP_ELSE:
		return vm.cond.elseBranch()
	case OP_ENDIF:
		return vm.cond.close()

	case OP_VERIFY:
		return vm.opVerify()

	case OP_TOALTSTACK:
		v, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		vm.altStack.PushByteArray(v)
		return nil

	case OP_FROMALTSTACK:
		v, err := vm.altStack.PopByteArray()
		if err != nil {
			return err
		}
		vm.stack.PushByteArray(v)
		return nil

	case OP_IFDUP:
		top, err := vm.stack.PeekByteArray(0)
		if err != nil {
			return err
		}
		if castToBool(top) {
			vm.stack.PushByteArray(top)
		}
		return nil

	case OP_DEPTH:
		vm.stack.PushInt(big.NewInt(int64(vm.stack.Depth())))
		return nil

	case OP_DROP:
		_, err := vm.stack.PopByteArray()
		return err

	case OP_DUP:
		top, err := vm.stack.PeekByteArray(0)
		if err != nil {
			return err
		}
		vm.stack.PushByteArray(top)
		return nil

	case OP_NIP:
		_, err := vm.stack.nipN(1)
		return err

	case OP_OVER:
		v, err := vm.stack.PeekByteArray(1)
		if err != nil {
			return err
		}
		vm.stack.PushByteArray(v)
		return nil

	case OP_PICK:
		return vm.opPickRoll(false)
	case OP_ROLL:
		return vm.opPickRoll(true)

	case OP_SIZE:
		top, err := vm.stack.PeekByteArray(0)
		if err != nil {
			return err
		}
		vm.stack.PushInt(big.NewInt(int64(len(top))))
		return nil

	case OP_NOT:
		a, err := vm.stack.PopInt()
		if err != nil {
			return err
		}
		vm.stack.PushBool(a.Sign() == 0)
		return nil

	case OP_BOOLOR:
		a, b, err := vm.popTwoInts()
		if err != nil {
			return err
		}
		vm.stack.PushBool(a.Sign() != 0 || b.Sign() != 0)
		return nil

	case OP_MIN:
		a, b, err := vm.popTwoInts()
		if err != nil {
			return err
		}
		if a.Cmp(b) < 0 {
			vm.stack.PushInt(a)
		} else {
			vm.stack.PushInt(b)
		}
		return nil

	case OP_ADD:
		a, b, err := vm.popTwoInts()
		if err != nil {
			return err
		}
		vm.stack.PushInt(new(big.Int).Add(a, b))
		return nil

	case OP_GREATERTHANOREQUAL:
		a, b, err := vm.popTwoInts()
		if err != nil {
			return err
		}
		vm.stack.PushBool(b.Cmp(a) >= 0)
		return nil

	case OP_SHA256:
		data, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)
		vm.stack.PushByteArray(sum[:])
		return nil

	case OP_HASH160:
		data, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		vm.stack.PushByteArray(hash160(data))
		return nil

	case OP_EQUAL:
		a, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		b, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		vm.stack.PushBool(bytesEqual(a, b))
		return nil

	case OP_EQUALVERIFY:
		a, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		b, err := vm.stack.PopByteArray()
		if err != nil {
			return err
		}
		if !bytesEqual(a, b) {
			return ErrVerifyFailed
		}
		return nil

	case OP_CHECKSIG:
		ok, err := vm.checkSig()
		if err != nil {
			return err
		}
		vm.stack.PushBool(ok)
		return nil

	case OP_CHECKSIGVERIFY:
		ok, err := vm.checkSig()
		if err != nil {
			return err
		}
		if !ok {
			return ErrVerifyFailed
		}
		return nil

	case OP_CHECKMULTISIG:
		ok, err := vm.checkMultiSig()
		if err != nil {
			return err
		}
		vm.stack.PushBool(ok)
		return nil

	case OP_CHECKMULTISIGVERIFY:
		ok, err := vm.checkMultiSig()
		if err != nil {
			return err
		}
		if !ok {
			return ErrVerifyFailed
		}
		return nil

	case OP_RAW_DATA:
		return ErrUnknownOpcode

	default:
		return ErrUnknownOpcode
	}
}

// opIf implements OP_IF (invert=false) and OP_NOTIF (invert=true).  In a
// dead branch it still opens a conditional frame, valued false, without
// touching the main stack — per section 4.3, IF in a dead branch does not
// pop.
func (vm *Interpreter) opIf(invert bool) error {
	value := false
	if !vm.cond.hasFailedBranches() {
		v, err := vm.stack.PopBool()
		if err != nil {
			return err
		}
		value = v
		if invert {
			value = !value
		}
	}
	vm.cond.open(value)
	return nil
}

func (vm *Interpreter) opVerify() error {
	top, err := vm.stack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if !castToBool(top) {
		return ErrVerifyFailed
	}
	_, err = vm.stack.PopByteArray()
	return err
}

func (vm *Interpreter) opPickRoll(isRoll bool) error {
	n, err := vm.stack.PopInt()
	if err != nil {
		return err
	}
	idx := int(n.Int64())
	if idx < 0 || idx >= vm.stack.Depth() {
		return ErrInvalidPickOrRoll
	}

	item, err := vm.stack.PeekByteArray(idx)
	if err != nil {
		return err
	}
	if isRoll {
		if _, err := vm.stack.nipN(idx); err != nil {
			return err
		}
	}
	vm.stack.PushByteArray(item)
	return nil
}

// popTwoInts pops the arithmetic operand pair a (popped first) then b
// (popped second).  Binary opcodes in section 4.4 are specified in terms
// of this pop order, which is not uniformly "first operand, second
// operand" in the resulting expression — see GREATERTHANOREQUAL's use of
// it in execute above.
func (vm *Interpreter) popTwoInts() (a, b *big.Int, err error) {
	a, err = vm.stack.PopInt()
	if err != nil {
		return nil, nil, err
	}
	b, err = vm.stack.PopInt()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(sum[:])
	return ripemd.Sum(nil)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
