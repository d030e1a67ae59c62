// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwmul

import (
	"github.com/pkg/errors"
)

// A Source feeds requests to a multiplier. It is called once per clock cycle
// while the multiplier is ready and returns false when it has no request.
//
type Source func() (Request, bool)

// A Sink consumes results. It is called once per clock cycle while a result is
// held and returns true to acknowledge it. Returning false keeps the result
// and stalls the multiplier.
//
type Sink func(Result) bool

// A Part wires a multiplier to a request source and a result sink.
//
// A nil In never submits requests. A nil Out acknowledges and discards every
// result.
//
// Sources and sinks are called from the circuit's worker goroutines. They must
// not be shared between parts unless they are safe for concurrent use.
//
type Part struct {
	Name string
	M    *Multiplier
	In   Source
	Out  Sink
}

func (p *Part) mount() ([]Component, error) {
	if p.M == nil {
		return nil, errors.Errorf("part %q: nil multiplier", p.Name)
	}
	m, in, out := p.M, p.In, p.Out
	return []Component{
		func(c *Circuit) {
			m.Step()
			if r, ok := m.Poll(); ok && (out == nil || out(r)) {
				// cannot fail in the Done phase
				_ = m.Acknowledge()
			}
			// refill in the same cycle: Circuit.Busy relies on it.
			if in != nil && m.Ready() {
				if r, ok := in(); ok {
					m.Submit(r)
				}
			}
		}}, nil
}

// FromSlice returns a Source that yields the requests in reqs in order.
//
func FromSlice(reqs []Request) Source {
	return func() (Request, bool) {
		if len(reqs) == 0 {
			return Request{}, false
		}
		r := reqs[0]
		reqs = reqs[1:]
		return r, true
	}
}

// Collect returns a Sink that appends all results to dst.
//
func Collect(dst *[]Result) Sink {
	return func(r Result) bool {
		*dst = append(*dst, r)
		return true
	}
}
