// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package alu implements the add/negate datapath shared by the multiplier
// phases.
//
package alu

// MaxWidth is the largest supported register width. The adder is one bit
// wider than the registers and must fit in a uint64.
//
const MaxWidth = 63

// Unit is a (Width+1)-bit adder. Operands are Width-bit values; the extra bit
// is the carry out.
//
type Unit struct {
	Width uint
	mask  uint64
}

// New returns a new Unit for the given register width. It panics if width is
// 0 or larger than MaxWidth.
//
func New(width uint) Unit {
	if width == 0 || width > MaxWidth {
		panic("invalid adder width")
	}
	return Unit{Width: width, mask: 1<<width - 1}
}

// Mask returns v truncated to Width bits.
//
func (u Unit) Mask(v uint64) uint64 {
	return v & u.mask
}

// Add returns the Width+1 bits sum of a and b.
//
//	Function: sum = {0,a} + {0,b}
//
func (u Unit) Add(a, b uint64) uint64 {
	return u.Mask(a) + u.Mask(b)
}

// Sum returns the low Width bits of a + b and the carry out.
//
func (u Unit) Sum(a, b uint64) (s uint64, c bool) {
	sum := u.Add(a, b)
	return u.Mask(sum), sum>>u.Width&1 != 0
}

// Not returns the bitwise complement of x on Width bits.
//
func (u Unit) Not(x uint64) uint64 {
	return u.Mask(^x)
}

// Negate returns the two's complement of x on Width bits.
//
//	Function: out = lsb({0,~x} + {0,1})
//
func (u Unit) Negate(x uint64) uint64 {
	s, _ := u.Sum(u.Not(x), 1)
	return s
}

// Sign returns the most significant bit of x.
//
func (u Unit) Sign(x uint64) bool {
	return x>>(u.Width-1)&1 != 0
}
