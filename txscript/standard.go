// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

// ScriptClass is an identifier for the type of a script, used to
// recognize the handful of standard output patterns.
type ScriptClass int

const (
	// NonStandardTy is a non-standard script, or a standard shape this
	// core does not attempt to recognize (multisig, notably — see
	// MultiSigTy).
	NonStandardTy ScriptClass = iota

	// PubKeyTy is a standard pay-to-pubkey script: [push(pubkey), CHECKSIG].
	PubKeyTy

	// PubKeyHashTy is a standard pay-to-pubkey-hash script:
	// [DUP, HASH160, push(hash160), EQUALVERIFY, CHECKSIG].
	PubKeyHashTy

	// ScriptHashTy is a standard BIP16 pay-to-script-hash script:
	// [HASH160, push(hash160), EQUAL].
	ScriptHashTy

	// MultiSigTy is never returned by GetScriptClass in this core; see
	// the open question in section 9 — the reference implementation
	// this core is derived from never recognized multisig output
	// scripts as a standard pattern, and this core follows suit.
	MultiSigTy
)

// String returns a human-readable name for the class, for debug traces and
// error messages.
func (c ScriptClass) String() string {
	switch c {
	case PubKeyTy:
		return "pubkey"
	case PubKeyHashTy:
		return "pubkeyhash"
	case ScriptHashTy:
		return "scripthash"
	case MultiSigTy:
		return "multisig"
	default:
		return "nonstandard"
	}
}

// GetScriptClass classifies script into one of the recognized standard
// patterns, or NonStandardTy if it matches none of them.  Matching is
// exact: extra or reordered operations fall through to NonStandardTy.
func GetScriptClass(script Script) ScriptClass {
	if isPubKey(script) {
		return PubKeyTy
	}
	if isPubKeyHash(script) {
		return PubKeyHashTy
	}
	if isScriptHash(script) {
		return ScriptHashTy
	}
	return NonStandardTy
}

func isPubKey(script Script) bool {
	return len(script) == 2 &&
		script[0].Op == OP_SPECIAL &&
		script[1].Op == OP_CHECKSIG
}

func isPubKeyHash(script Script) bool {
	return len(script) == 5 &&
		script[0].Op == OP_DUP &&
		script[1].Op == OP_HASH160 &&
		script[2].Op == OP_SPECIAL &&
		len(script[2].Data) == 20 &&
		script[3].Op == OP_EQUALVERIFY &&
		script[4].Op == OP_CHECKSIG
}

func isScriptHash(script Script) bool {
	return len(script) == 3 &&
		script[0].Op == OP_HASH160 &&
		script[1].Op == OP_SPECIAL &&
		len(script[1].Data) == 20 &&
		script[2].Op == OP_EQUAL
}
