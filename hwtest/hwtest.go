// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing multipliers.
//
package hwtest

import (
	"math/big"
	"math/rand"
	"testing"
	"time"

	"github.com/db47h/hwmul"
)

func operand(width uint, v uint64, signed bool) *big.Int {
	v &= 1<<width - 1
	x := new(big.Int).SetUint64(v)
	if signed && v>>(width-1)&1 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), width))
	}
	return x
}

// Product returns the exact product of the request operands interpreted as
// width bits integers.
//
func Product(width uint, r hwmul.Request) *big.Int {
	return new(big.Int).Mul(operand(width, r.A, r.SignedA), operand(width, r.B, r.SignedB))
}

// Reference returns the expected result value of r for a width bits
// multiplier.
//
func Reference(width uint, r hwmul.Request) uint64 {
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 2*width), big.NewInt(1))
	// two's complement on 2*width bits
	p := new(big.Int).And(Product(width, r), mask)
	if r.Half == hwmul.High {
		p.Rsh(p, width)
	}
	return p.Uint64() & (1<<width - 1)
}

// Complete steps m until a result is available and returns it with the number
// of steps it took. m must have a request in flight. The test fails if no
// result is available after twice the expected latency.
//
func Complete(t testing.TB, m *hwmul.Multiplier, h hwmul.Half) (hwmul.Result, int) {
	t.Helper()
	max := 2 * m.Latency(h)
	for n := 1; n <= max; n++ {
		m.Step()
		if r, ok := m.Poll(); ok {
			return r, n
		}
	}
	t.Fatalf("no result after %d steps, phase %s", max, m.Phase())
	return hwmul.Result{}, 0
}

// Multiply runs r to completion on m, acknowledges the result and returns its
// value.
//
func Multiply(t testing.TB, m *hwmul.Multiplier, r hwmul.Request) uint64 {
	t.Helper()
	if !m.Submit(r) {
		t.Fatalf("request rejected in phase %s", m.Phase())
	}
	res, _ := Complete(t, m, r.Half)
	if err := m.Acknowledge(); err != nil {
		t.Fatal(err)
	}
	return res.Value
}

// edge values for a given width: 0, 1, -1, min and max signed.
//
func edges(width uint) []uint64 {
	mask := uint64(1)<<width - 1
	min := uint64(1) << (width - 1)
	return []uint64{0, 1 & mask, mask, min, min - 1, (min + 1) & mask}
}

// CompareMultiplier checks a width bits multiplier against the exact product
// on all pairs of edge operands and iter random operand pairs, for every sign
// and half combination.
//
func CompareMultiplier(t *testing.T, width int, iter int) {
	t.Helper()

	m, err := hwmul.New(width)
	if err != nil {
		t.Fatal(err)
	}
	w := uint(width)

	check := func(a, b uint64) {
		t.Helper()
		for _, h := range []hwmul.Half{hwmul.Low, hwmul.High} {
			for s := 0; s < 4; s++ {
				r := hwmul.Request{A: a, B: b, SignedA: s&1 != 0, SignedB: s&2 != 0, Half: h}
				got, exp := Multiply(t, m, r), Reference(w, r)
				if got != exp {
					t.Fatalf("width %d: %+v: expected %#x, got %#x", width, r, exp, got)
				}
			}
		}
	}

	for _, a := range edges(w) {
		for _, b := range edges(w) {
			check(a, b)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	for i := 0; i < iter; i++ {
		check(rng.Uint64(), rng.Uint64())
	}
	t.Logf("width %d: %d random pairs in %v", width, iter, time.Since(start))
}
