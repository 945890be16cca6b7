// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/TrustDataNetworkProject/libbitcoin/wire"
)

// Evaluate runs inputScript then outputScript against tx's input at
// inputIndex, and — when p2shEnabled and outputScript matches the BIP16
// pay-to-script-hash pattern — recursively evaluates the redeem script
// named by inputScript's final stack item.  A nil return means the
// spend is authorized; any non-nil error means reject.  There is no
// richer outcome than accept/reject: every internal failure category
// (stack underflow, bad conditional nesting, a false VERIFY, and so on)
// collapses to the single error it returns here.
func Evaluate(inputScript, outputScript Script, tx *wire.MsgTx, inputIndex int, p2shEnabled bool) error {
	vm := NewInterpreter(tx, inputIndex)

	if err := vm.Run(inputScript); err != nil {
		return err
	}
	inputResultStack := vm.MainStack()

	vm.SetMainStack(inputResultStack)
	if err := vm.Run(outputScript); err != nil {
		return err
	}
	if err := requireTrueTop(vm); err != nil {
		return err
	}

	if !p2shEnabled || GetScriptClass(outputScript) != ScriptHashTy {
		return nil
	}

	if !inputScript.IsPushOnly() {
		return ErrP2SHNonPushInput
	}

	// Re-run against the stack the input script itself produced, not
	// the one left behind by the output script: the redeem script and
	// its arguments travel inside the input script's pushes, the output
	// script only ever validated their hash.
	if len(inputResultStack) == 0 {
		return ErrEmptyStack
	}
	redeemBytes := inputResultStack[len(inputResultStack)-1]
	redeemArgs := inputResultStack[:len(inputResultStack)-1]
	redeemScript := Parse(redeemBytes)

	vm.SetMainStack(redeemArgs)
	if err := vm.Run(redeemScript); err != nil {
		return err
	}
	return requireTrueTop(vm)
}

// requireTrueTop enforces the "non-empty stack whose top casts to true"
// acceptance condition shared by the output-script run and the P2SH
// redeem-script run.
func requireTrueTop(vm *Interpreter) error {
	stack := vm.MainStack()
	if len(stack) == 0 {
		return ErrEmptyStack
	}
	if !castToBool(stack[len(stack)-1]) {
		log.Tracef("%v", newLogClosure(func() string {
			return fmt.Sprintf("script failed: final stack top casts to false (depth %d)", len(stack))
		}))
		return ErrEvalFalse
	}
	return nil
}
