// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwmul

import (
	"github.com/db47h/hwmul/internal/alu"
)

// A Request is a multiplication request. Operands are truncated to the
// multiplier width on acceptance.
//
type Request struct {
	A, B uint64
	// SignedA and SignedB select a two's complement interpretation of the
	// corresponding operand.
	SignedA, SignedB bool
	// Half selects the half of the double width product to return.
	Half Half
}

// A Result is the output of a completed request.
//
type Result struct {
	Value uint64
	Half  Half
	// Final is set when Value holds the completed product half.
	Final bool
}

// State is a snapshot of a multiplier's registers.
//
type State struct {
	Phase     Phase
	A, B      uint64 // operand registers
	Result    uint64 // accumulator
	Count     uint   // accumulation counter
	Limit     uint   // accumulation counter limit
	NegA      bool   // operand a was negative
	NegB      bool   // operand b was negative
	NegResult bool   // product must be negated
	Half      Half
	LowZero   bool // all bits discarded during a high half accumulation were 0
}

// Multiplier is an iterative shift-add multiplier. It processes one request
// at a time and advances by one unit of work per call to Step.
//
// A Multiplier is not safe for concurrent use. Distinct multipliers share no
// state.
//
type Multiplier struct {
	alu   alu.Unit
	phase Phase

	a, b   uint64
	result uint64
	count  uint
	limit  uint

	negA, negB bool
	negResult  bool
	half       Half
	lowZero    bool

	probe func(State)
}

// New returns a new multiplier for width bits operands. Supported widths are
// 1 to 63.
//
func New(width int) (*Multiplier, error) {
	switch {
	case width <= 0:
		return nil, &ConfigurationError{width, "width must be positive"}
	case width > alu.MaxWidth:
		return nil, &ConfigurationError{width, "adder does not fit in 64 bits"}
	}
	return &Multiplier{alu: alu.New(uint(width))}, nil
}

// Width returns the operand width.
//
func (m *Multiplier) Width() int { return int(m.alu.Width) }

// Phase returns the current phase.
//
func (m *Multiplier) Phase() Phase { return m.phase }

// Ready returns true if the multiplier can accept a new request.
//
func (m *Multiplier) Ready() bool { return m.phase == Idle }

// Latency returns the number of steps from the acceptance of a request for
// the given half until its result becomes available.
//
func (m *Multiplier) Latency(h Half) int {
	// NegateA, NegateB, limit+1 accumulation steps, NegateResult
	return int(h.limit(m.alu.Width)) + 4
}

// Probe registers f to be called with a snapshot of the multiplier state after
// every step. A nil f removes the probe.
//
func (m *Multiplier) Probe(f func(State)) { m.probe = f }

// State returns a snapshot of the multiplier state.
//
func (m *Multiplier) State() State {
	return State{
		Phase:     m.phase,
		A:         m.a,
		B:         m.b,
		Result:    m.result,
		Count:     m.count,
		Limit:     m.limit,
		NegA:      m.negA,
		NegB:      m.negB,
		NegResult: m.negResult,
		Half:      m.half,
		LowZero:   m.lowZero,
	}
}

// Submit submits a new request. It returns false and leaves the multiplier
// untouched if a request is already in flight or its result has not been
// acknowledged.
//
func (m *Multiplier) Submit(r Request) bool {
	if m.phase != Idle {
		return false
	}
	u := m.alu
	m.a, m.b = u.Mask(r.A), u.Mask(r.B)
	m.negA = r.SignedA && u.Sign(m.a)
	m.negB = r.SignedB && u.Sign(m.b)
	m.negResult = m.negA != m.negB
	m.half = r.Half
	m.limit = r.Half.limit(u.Width)
	m.count = 0
	m.result = 0
	m.lowZero = true
	m.phase = NegateA
	return true
}

// Step advances the multiplier by one step. It does nothing in the Idle
// phase, and holds the result in the Done phase.
//
func (m *Multiplier) Step() {
	switch m.phase {
	case NegateA:
		if m.negA {
			m.a = m.alu.Negate(m.a)
		}
		m.phase = NegateB
	case NegateB:
		if m.negB {
			m.b = m.alu.Negate(m.b)
		}
		m.phase = Accumulate
	case Accumulate:
		m.accumulate()
		if m.count < m.limit {
			m.count++
		} else {
			m.phase = NegateResult
		}
	case NegateResult:
		m.correct()
		m.phase = Done
	}
	if m.probe != nil {
		m.probe(m.State())
	}
}

// accumulate runs one shift-add iteration.
//
func (m *Multiplier) accumulate() {
	v := m.result
	if m.b&1 != 0 {
		v = m.alu.Add(m.result, m.a)
	}
	// only meaningful for the high half, where the lsb of v is shifted out.
	m.lowZero = m.lowZero && v&1 == 0
	if m.half == High {
		m.result = m.alu.Mask(v >> 1)
	} else {
		m.result = m.alu.Mask(v)
		m.a = m.alu.Mask(m.a << 1)
	}
	m.b >>= 1
}

// correct applies the final sign correction to the accumulator. The carry
// of a double word negation only reaches the high half if the low half is 0.
//
func (m *Multiplier) correct() {
	switch {
	case !m.negResult:
	case m.half == High && !m.lowZero:
		m.result = m.alu.Not(m.result)
	default:
		m.result = m.alu.Negate(m.result)
	}
}

// Poll returns the result of the current request and true if it is
// available. Repeated calls return the same result until Acknowledge is
// called.
//
func (m *Multiplier) Poll() (Result, bool) {
	if m.phase != Done {
		return Result{}, false
	}
	return Result{Value: m.result, Half: m.half, Final: true}, true
}

// Result is like Poll but returns an error wrapping ErrPrecedence if no result
// is available.
//
func (m *Multiplier) Result() (Result, error) {
	r, ok := m.Poll()
	if !ok {
		return Result{}, precedenceError("read result", m.phase)
	}
	return r, nil
}

// Acknowledge releases the current result and returns the multiplier to the
// Idle phase. It returns an error wrapping ErrPrecedence if no result is
// available.
//
func (m *Multiplier) Acknowledge() error {
	if m.phase != Done {
		return precedenceError("acknowledge", m.phase)
	}
	m.phase = Idle
	return nil
}

// Reset aborts any request in flight and returns the multiplier to the Idle
// phase.
//
func (m *Multiplier) Reset() {
	m.phase = Idle
}
