// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/TrustDataNetworkProject/libbitcoin/wire"
)

// SigHashType represents the hash type bits carried in the final byte of a
// signature.  The low 5 bits select a mode; SigHashAnyOneCanPay is an
// independent flag bit-or'd onto one of the modes.
type SigHashType byte

// Hash type bits, per section 6.5.
const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// nullHash is the all-zero sentinel returned by calcSignatureHash when a
// SigHashSingle signature hash is requested for an input index with no
// corresponding output.  Every (sig, key) pair checked against it must
// report non-verification; it is never hashed a second time.
var nullHash chainhash.Hash

// scriptCodeForCheckSig builds the "script code" signed by a single-sig
// check: every operation of the currently running script from
// codeHashBegin to the end, skipping CODESEPARATOR and skipping any push
// of the exact signature being checked.
func (vm *Interpreter) scriptCodeForCheckSig(signature []byte) Script {
	var code Script
	for _, op := range vm.script[vm.codeHashBegin:] {
		if op.Op == OP_CODESEPARATOR {
			continue
		}
		if op.isPush() && bytesEqual(op.Data, signature) {
			continue
		}
		code = append(code, op)
	}
	return code
}

// scriptCodeForCheckMultiSig is the same construction used by
// CHECKMULTISIG*, except it skips pushes of any signature in the section
// currently being checked rather than just one.
func (vm *Interpreter) scriptCodeForCheckMultiSig(signatures [][]byte) Script {
	isSignature := func(data []byte) bool {
		for _, sig := range signatures {
			if bytesEqual(sig, data) {
				return true
			}
		}
		return false
	}

	var code Script
	for _, op := range vm.script[vm.codeHashBegin:] {
		if op.Op == OP_CODESEPARATOR {
			continue
		}
		if op.isPush() && isSignature(op.Data) {
			continue
		}
		code = append(code, op)
	}
	return code
}

// calcSignatureHash computes the message actually signed by ECDSA for a
// CHECKSIG or CHECKMULTISIG check: a double SHA-256 of a transformed copy
// of tx plus the little-endian hash type, following the construction in
// section 4.5.
//
// If hashType selects SigHashSingle and inputIndex has no corresponding
// output, the result is the all-zero sentinel, returned as-is rather than
// hashed again; callers must treat it as a message that can never verify
// rather than a real digest.
func calcSignatureHash(tx *wire.MsgTx, inputIndex int, scriptCode Script, hashType byte) chainhash.Hash {
	mode := hashType & sigHashMask
	if mode == byte(SigHashSingle) && inputIndex >= len(tx.TxOut) {
		return nullHash
	}

	txCopy := tx.Copy()

	for _, in := range txCopy.TxIn {
		in.SignatureScript = nil
	}
	txCopy.TxIn[inputIndex].SignatureScript = scriptCode.Serialize()

	switch mode {
	case byte(SigHashNone):
		txCopy.TxOut = nil
		for i, in := range txCopy.TxIn {
			if i != inputIndex {
				in.Sequence = 0
			}
		}

	case byte(SigHashSingle):
		txCopy.TxOut = txCopy.TxOut[:inputIndex+1]
		for i := 0; i < inputIndex; i++ {
			txCopy.TxOut[i] = &wire.TxOut{Value: -1}
		}
		for i, in := range txCopy.TxIn {
			if i != inputIndex {
				in.Sequence = 0
			}
		}
	}

	if hashType&byte(SigHashAnyOneCanPay) != 0 {
		txCopy.TxIn = []*wire.TxIn{txCopy.TxIn[inputIndex]}
	}

	raw, err := txCopy.SerializeBytes()
	if err != nil {
		// txCopy's fields are all in-memory slices; Serialize only
		// fails on a broken io.Writer, which bytes.Buffer never is.
		panic(err)
	}
	raw = append(raw, littleEndianUint32(uint32(hashType))...)

	return chainhash.DoubleHashH(raw)
}

func littleEndianUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
