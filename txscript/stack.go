// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"math/big"
)

// stack represents a stack of immutable byte strings, the universal
// element type used by both the interpreter's main and alternate stacks.
// Elements may be shared; a caller that wants to mutate a popped element
// must copy it first.
type stack struct {
	items [][]byte
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int {
	return len(s.items)
}

// PushByteArray pushes data onto the top of the stack.
func (s *stack) PushByteArray(data []byte) {
	s.items = append(s.items, data)
}

// PushInt converts val to its canonical byte encoding and pushes it.
func (s *stack) PushInt(val *big.Int) {
	s.PushByteArray(scriptNumToBytes(val))
}

// PushBool converts val to its canonical byte encoding and pushes it.
func (s *stack) PushBool(val bool) {
	if val {
		s.PushByteArray([]byte{1})
		return
	}
	s.PushByteArray([]byte{})
}

// PopByteArray pops and returns the top of the stack.
func (s *stack) PopByteArray() ([]byte, error) {
	return s.nipN(0)
}

// PopInt pops the top of the stack and decodes it as a script number.
func (s *stack) PopInt() (*big.Int, error) {
	raw, err := s.PopByteArray()
	if err != nil {
		return nil, err
	}
	return bytesToScriptNum(raw)
}

// PopBool pops the top of the stack and casts it to a boolean.
func (s *stack) PopBool() (bool, error) {
	raw, err := s.PopByteArray()
	if err != nil {
		return false, err
	}
	return castToBool(raw), nil
}

// PeekByteArray returns the idx'th item from the top of the stack (0 is
// the top) without removing it.
func (s *stack) PeekByteArray(idx int) ([]byte, error) {
	sz := len(s.items)
	if idx < 0 || idx >= sz {
		return nil, ErrStackUnderflow
	}
	return s.items[sz-idx-1], nil
}

// nipN removes and returns the idx'th item from the top of the stack.
//
// nipN(0): [... x1 x2 x3] -> [... x1 x2], returns x3
// nipN(1): [... x1 x2 x3] -> [... x1 x3], returns x2
func (s *stack) nipN(idx int) ([]byte, error) {
	sz := len(s.items)
	if idx < 0 || idx > sz-1 {
		return nil, ErrStackUnderflow
	}

	item := s.items[sz-idx-1]
	switch {
	case idx == 0:
		s.items = s.items[:sz-1]
	case idx == sz-1:
		s.items = s.items[1:]
	default:
		rest := append([][]byte{}, s.items[sz-idx:]...)
		s.items = append(s.items[:sz-idx-1], rest...)
	}
	return item, nil
}

// DropN pops the top n items off the stack without returning them.
func (s *stack) DropN(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.PopByteArray(); err != nil {
			return err
		}
	}
	return nil
}

// String returns the stack in a readable format, one hex dump per item.
func (s *stack) String() string {
	var result string
	for _, item := range s.items {
		result += hex.Dump(item)
	}
	return result
}

// conditionalStack tracks the nested IF/NOTIF branch state described in
// section 4.3: one boolean per currently-open conditional, with "any entry
// false" meaning the operation about to run sits in a dead branch.
type conditionalStack struct {
	entries []bool
}

// open pushes a new conditional frame with the given truth value.
func (c *conditionalStack) open(v bool) {
	c.entries = append(c.entries, v)
}

// elseBranch flips the top frame's value.  Fails if the stack is empty.
func (c *conditionalStack) elseBranch() error {
	if c.closed() {
		return ErrNoConditional
	}
	top := len(c.entries) - 1
	c.entries[top] = !c.entries[top]
	return nil
}

// close pops the top frame.  Fails if the stack is empty.
func (c *conditionalStack) close() error {
	if c.closed() {
		return ErrNoConditional
	}
	c.entries = c.entries[:len(c.entries)-1]
	return nil
}

// closed reports whether no conditional is currently open.
func (c *conditionalStack) closed() bool {
	return len(c.entries) == 0
}

// hasFailedBranches reports whether any currently open conditional frame is
// false, meaning the instruction about to execute is in a dead branch.
func (c *conditionalStack) hasFailedBranches() bool {
	for _, v := range c.entries {
		if !v {
			return true
		}
	}
	return false
}
