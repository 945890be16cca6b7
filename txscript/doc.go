// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements a bitcoin transaction script interpreter.

This package provides data structures and functions to parse and execute
bitcoin transaction scripts.

Script Overview

Bitcoin transaction scripts are written in a stack-based, FORTH-like
language. The script language consists of a number of opcodes which fall
into several categories such as pushing and popping data to and from the
stack, performing basic arithmetic, conditional branching, comparing
hashes, and checking cryptographic signatures. Scripts are processed from
left to right and intentionally do not provide loops.

An input script (the unlocking witness supplied by a spender) is run
first, and its resulting stack is handed to the output script (the
locking predicate attached to the output being spent). If the output
script leaves a stack whose top element is true, the spend is authorized.
Evaluate additionally implements the BIP16 pay-to-script-hash rule, under
which a script matching the "hash160 <20-byte-hash> equal" shape triggers
a second, recursive evaluation against a redeem script supplied by the
spender.

Errors

Errors returned by this package are of the form txscript.ErrX where X
indicates the specific error. See the package-level error variables for a
full list. There is no richer outcome than accept/reject at the Evaluate
boundary: every internal error collapses to a single reject decision.
*/
package txscript
