// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "errors"

// Interpreter execution errors.  Every one of these collapses to a single
// reject decision at the Evaluate boundary; they are kept distinct
// internally only so callers that log or meter failures can tell them
// apart.
var (
	// ErrStackUnderflow is returned if an opcode requires more items on
	// a stack than are present.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrNumberTooBig is returned when a stack item consumed as a
	// number is longer than the 4-byte cap.
	ErrNumberTooBig = errors.New("number too big")

	// ErrDisabledOpcode is returned when a disabled or reserved opcode
	// is encountered in a live branch.
	ErrDisabledOpcode = errors.New("disabled opcode")

	// ErrUnknownOpcode is returned when an opcode the interpreter does
	// not implement reaches execution in a live branch: a byte with no
	// assigned meaning, or a defined opcode outside the supported set
	// (OP_RETURN or OP_SWAP, for example).
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrVerifyFailed is returned when OP_VERIFY or one of the
	// *VERIFY opcodes finds its condition false.
	ErrVerifyFailed = errors.New("verify failed")

	// ErrNoConditional is returned when OP_ELSE or OP_ENDIF is
	// encountered with no matching OP_IF/OP_NOTIF.
	ErrNoConditional = errors.New("OP_ELSE or OP_ENDIF with no matching OP_IF")

	// ErrUnbalancedConditional is returned when a script ends with one
	// or more conditionals still open.
	ErrUnbalancedConditional = errors.New("end of script reached in conditional execution")

	// ErrInvalidPickOrRoll is returned when OP_PICK or OP_ROLL is asked
	// for an index at or beyond the current stack depth.
	ErrInvalidPickOrRoll = errors.New("pick or roll depth out of range")

	// ErrEmptyStack is returned when the top-level evaluator finds an
	// empty stack where a final truth value was expected.
	ErrEmptyStack = errors.New("stack empty at end of execution")

	// ErrEvalFalse is returned when the top-level evaluator finds a
	// final stack whose top element casts to false.
	ErrEvalFalse = errors.New("false stack entry at end of execution")

	// ErrP2SHNonPushInput is returned when BIP16 evaluation is
	// attempted but the supplied input script contains a non-push
	// opcode.
	ErrP2SHNonPushInput = errors.New("signature script for pay-to-script-hash is not push only")

	// ErrInvalidSigHashSingleIndex names the case of a SigHashSingle
	// signature hash requested for an input index that has no
	// corresponding output.  No function in this package returns it:
	// calcSignatureHash returns the nullHash sentinel for that case
	// instead of failing.
	ErrInvalidSigHashSingleIndex = errors.New("invalid SigHashSingle index")
)
