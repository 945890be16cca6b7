// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "testing"

func runScript(t *testing.T, script Script) *Interpreter {
	t.Helper()
	vm := NewInterpreter(nil, 0)
	if err := vm.Run(script); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	return vm
}

func TestIfElseControl(t *testing.T) {
	t.Parallel()

	// input = [push(0x01)], output = [IF, push(0x01), ELSE, push(0x00), ENDIF]
	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{0x01}})

	script := Script{
		{Op: OP_IF},
		{Op: OP_SPECIAL, Data: []byte{0x01}},
		{Op: OP_ELSE},
		{Op: OP_SPECIAL, Data: []byte{0x00}},
		{Op: OP_ENDIF},
	}
	if err := vm.Run(script); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	top := vm.MainStack()
	if len(top) != 1 || !castToBool(top[0]) {
		t.Fatalf("final stack = %x, want true top", top)
	}
}

func TestIfElseControlFalseBranch(t *testing.T) {
	t.Parallel()

	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{}})

	script := Script{
		{Op: OP_IF},
		{Op: OP_SPECIAL, Data: []byte{0x01}},
		{Op: OP_ELSE},
		{Op: OP_SPECIAL, Data: []byte{0x00}},
		{Op: OP_ENDIF},
	}
	if err := vm.Run(script); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	top := vm.MainStack()
	if len(top) != 1 || castToBool(top[0]) {
		t.Fatalf("final stack = %x, want false top", top)
	}
}

func TestUnbalancedConditionalFails(t *testing.T) {
	t.Parallel()

	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{0x01}})
	err := vm.Run(Script{{Op: OP_IF}})
	if err != ErrUnbalancedConditional {
		t.Fatalf("err = %v, want ErrUnbalancedConditional", err)
	}
}

func TestUnmatchedElseFails(t *testing.T) {
	t.Parallel()

	vm := NewInterpreter(nil, 0)
	err := vm.Run(Script{{Op: OP_ELSE}})
	if err != ErrNoConditional {
		t.Fatalf("err = %v, want ErrNoConditional", err)
	}
}

func TestDeadBranchSkipsDisabledOpcode(t *testing.T) {
	t.Parallel()

	// A disabled opcode inside an unreached branch must not fail the
	// script.
	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{}})
	script := Script{
		{Op: OP_IF},
		{Op: OP_CAT},
		{Op: OP_ENDIF},
	}
	if err := vm.Run(script); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
}

func TestLiveBranchDisabledOpcodeFails(t *testing.T) {
	t.Parallel()

	// Moving the same opcode into a reached branch must fail.
	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{0x01}})
	script := Script{
		{Op: OP_IF},
		{Op: OP_CAT},
		{Op: OP_ENDIF},
	}
	if err := vm.Run(script); err != ErrDisabledOpcode {
		t.Fatalf("err = %v, want ErrDisabledOpcode", err)
	}
}

func TestNumericCapRejectsLongOperand(t *testing.T) {
	t.Parallel()

	vm := NewInterpreter(nil, 0)
	script := Script{
		{Op: OP_SPECIAL, Data: []byte{1, 2, 3, 4, 5}},
		{Op: OP_1},
		{Op: OP_ADD},
	}
	if err := vm.Run(script); err != ErrNumberTooBig {
		t.Fatalf("err = %v, want ErrNumberTooBig", err)
	}
}

func TestGreaterThanOrEqualOperandOrder(t *testing.T) {
	t.Parallel()

	// Pushed in order 2, 5: pop order is a=5 (popped first), b=2. The
	// opcode computes b >= a, i.e. 2 >= 5, which is false.
	vm := NewInterpreter(nil, 0)
	script := Script{
		{Op: OP_2},
		{Op: OP_5},
		{Op: OP_GREATERTHANOREQUAL},
	}
	if err := vm.Run(script); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	top := vm.MainStack()
	if len(top) != 1 || castToBool(top[0]) {
		t.Fatalf("2 GREATERTHANOREQUAL 5 with push order 2,5 = %x, want false", top)
	}
}

func TestAddOpcode(t *testing.T) {
	t.Parallel()

	vm := runScript(t, Script{{Op: OP_2}, {Op: OP_3}, {Op: OP_ADD}})
	top := vm.MainStack()
	n, err := bytesToScriptNum(top[len(top)-1])
	if err != nil {
		t.Fatalf("bytesToScriptNum: %v", err)
	}
	if n.Int64() != 5 {
		t.Fatalf("2 ADD 3 = %d, want 5", n.Int64())
	}
}

func TestPickAndRoll(t *testing.T) {
	t.Parallel()

	// [a, b, c] PICK(1) -> [a, b, c, b]
	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{0x01}, {0x02}, {0x03}})
	if err := vm.Run(Script{{Op: OP_1}, {Op: OP_PICK}}); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	top := vm.MainStack()
	if len(top) != 4 || top[3][0] != 0x02 {
		t.Fatalf("PICK(1) result = %v, want top element 0x02", top)
	}

	// [a, b, c] ROLL(1) -> [a, c, b]
	vm2 := NewInterpreter(nil, 0)
	vm2.SetMainStack([][]byte{{0x01}, {0x02}, {0x03}})
	if err := vm2.Run(Script{{Op: OP_1}, {Op: OP_ROLL}}); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}
	rolled := vm2.MainStack()
	if len(rolled) != 3 || rolled[1][0] != 0x03 || rolled[2][0] != 0x02 {
		t.Fatalf("ROLL(1) result = %v, want [01 03 02]", rolled)
	}
}

func TestPickOutOfRangeFails(t *testing.T) {
	t.Parallel()

	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{0x01}})
	err := vm.Run(Script{{Op: OP_5}, {Op: OP_PICK}})
	if err != ErrInvalidPickOrRoll {
		t.Fatalf("err = %v, want ErrInvalidPickOrRoll", err)
	}
}

func TestEqualVerify(t *testing.T) {
	t.Parallel()

	vm := NewInterpreter(nil, 0)
	vm.SetMainStack([][]byte{{0x01, 0x02}, {0x01, 0x02}})
	if err := vm.Run(Script{{Op: OP_EQUALVERIFY}}); err != nil {
		t.Fatalf("Run: unexpected error: %v", err)
	}

	vm2 := NewInterpreter(nil, 0)
	vm2.SetMainStack([][]byte{{0x01}, {0x02}})
	if err := vm2.Run(Script{{Op: OP_EQUALVERIFY}}); err != ErrVerifyFailed {
		t.Fatalf("err = %v, want ErrVerifyFailed", err)
	}
}
