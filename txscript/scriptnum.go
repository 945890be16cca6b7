// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "math/big"

// maxScriptNumLen is the longest byte string the number codec will accept;
// stack items consumed as numbers must be at most this many bytes.
const maxScriptNumLen = 4

// scriptNumToBytes encodes n in the script's little-endian sign-magnitude
// form: the magnitude's bytes, little-endian, with the high bit of the
// final byte carrying the sign.  Zero encodes to the empty byte string,
// and the encoding is always minimal length.
func scriptNumToBytes(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{}
	}

	negative := n.Sign() < 0
	// big.Int.Bytes returns the magnitude, big-endian, with no leading
	// zero bytes.
	mag := new(big.Int).Abs(n).Bytes()

	// Reverse into little-endian.
	result := make([]byte, len(mag))
	for i, b := range mag {
		result[len(mag)-1-i] = b
	}

	// If the most significant bit of the last byte is already set, it
	// would collide with the sign bit, so append a new sign byte.
	if result[len(result)-1]&0x80 != 0 {
		result = append(result, 0)
	}
	if negative {
		result[len(result)-1] |= 0x80
	}
	return result
}

// bytesToScriptNum decodes raw as a script number.  raw must be at most
// maxScriptNumLen bytes; an empty input decodes to zero.
func bytesToScriptNum(raw []byte) (*big.Int, error) {
	if len(raw) > maxScriptNumLen {
		return nil, ErrNumberTooBig
	}
	if len(raw) == 0 {
		return big.NewInt(0), nil
	}

	negative := raw[len(raw)-1]&0x80 != 0

	// Copy and strip the sign bit before reversing into big-endian.
	mag := make([]byte, len(raw))
	copy(mag, raw)
	mag[len(mag)-1] &= 0x7f

	be := make([]byte, len(mag))
	for i, b := range mag {
		be[len(mag)-1-i] = b
	}

	result := new(big.Int).SetBytes(be)
	if negative {
		result.Neg(result)
	}
	return result, nil
}

// castToBool implements the stack-element boolean convention of section
// 4.2: any byte string with a non-zero byte is true, except for negative
// zero (a string whose only non-zero byte is a final 0x80, the canonical
// form being the lone byte 0x80), which is false despite containing a
// non-zero byte.
func castToBool(v []byte) bool {
	for i, b := range v {
		if b != 0 {
			// The only non-zero byte is in the last position and
			// is exactly the sign bit: this is negative zero.
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}
