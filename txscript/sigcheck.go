// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// checkSignature verifies a single (signature, pubkey) pair against the
// signature hash of scriptCode.  signature carries a trailing hash-type
// byte that selects which parts of the transaction the hash commits to.
//
// Any structural problem — a malformed DER signature, an unparseable
// public key, or a SigHashSingle signature hash with no corresponding
// output — makes this return false rather than an error; per section 4.5,
// a failing signature check never by itself fails the script.
func checkSignature(signature, pubkeyBytes []byte, scriptCode Script, vm *Interpreter) bool {
	if len(signature) == 0 {
		return false
	}

	hashType := signature[len(signature)-1]
	derSig := signature[:len(signature)-1]

	hash := calcSignatureHash(vm.tx, vm.inputIndex, scriptCode, hashType)
	if hash == nullHash {
		return false
	}

	pubKey, err := btcec.ParsePubKey(pubkeyBytes)
	if err != nil {
		return false
	}

	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false
	}

	return sig.Verify(hash[:], pubKey)
}

// checkSig implements OP_CHECKSIG / OP_CHECKSIGVERIFY's shared verification
// step: pop pubkey then signature, build the script code the signature
// was made over, and check it.
func (vm *Interpreter) checkSig() (bool, error) {
	pubkey, err := vm.stack.PopByteArray()
	if err != nil {
		return false, err
	}
	signature, err := vm.stack.PopByteArray()
	if err != nil {
		return false, err
	}

	scriptCode := vm.scriptCodeForCheckSig(signature)
	return checkSignature(signature, pubkey, scriptCode, vm), nil
}

// readSection pops a small count off the top of the stack, then pops that
// many further elements, in pop order (so the resulting slice is in
// reverse of the order the elements were originally pushed).
func (vm *Interpreter) readSection() ([][]byte, error) {
	count, err := vm.stack.PopInt()
	if err != nil {
		return nil, err
	}
	n := int(count.Int64())
	if n < 0 || n > vm.stack.Depth() {
		return nil, ErrStackUnderflow
	}

	section := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		item, err := vm.stack.PopByteArray()
		if err != nil {
			return nil, err
		}
		section = append(section, item)
	}
	return section, nil
}

// checkMultiSig implements OP_CHECKMULTISIG / OP_CHECKMULTISIGVERIFY's
// shared verification step.  It reads a pubkey section then a signature
// section off the stack, then matches signatures to keys by walking both
// forward: for each signature in turn, it advances through the remaining
// keys until one verifies.  Keys may be skipped between signatures;
// signatures may not be reordered relative to each other.
func (vm *Interpreter) checkMultiSig() (bool, error) {
	pubkeys, err := vm.readSection()
	if err != nil {
		return false, err
	}
	signatures, err := vm.readSection()
	if err != nil {
		return false, err
	}

	scriptCode := vm.scriptCodeForCheckMultiSig(signatures)

	pubkeyIdx := 0
	for _, signature := range signatures {
		matched := false
		for pubkeyIdx < len(pubkeys) {
			candidate := pubkeys[pubkeyIdx]
			pubkeyIdx++
			if checkSignature(signature, candidate, scriptCode, vm) {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}

	return true, nil
}
