// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwmul

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component is a unit of work updated once per clock cycle by a Circuit.
//
type Component func(c *Circuit)

// Circuit runs a set of multipliers on a shared clock.
//
// Components are partitioned between worker goroutines and updated in
// parallel on each step. A component must only touch state it owns.
//
type Circuit struct {
	cs   []Component
	ms   []*Multiplier
	tick uint

	wc []chan struct{}
	wg sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts.
//
// workers is the number of goroutines used to update the state of the Circuit
// each step of the simulation. If less or equal to 0, the value of GOMAXPROCS
// will be used.
//
// Callers must make sure to call Dispose() once the circuit is no longer needed
// in order to release allocated resources.
//
func NewCircuit(workers int, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	cc := &Circuit{}
	seen := make(map[*Multiplier]bool, len(parts))
	for i := range parts {
		p := &parts[i]
		if seen[p.M] {
			return nil, errors.Errorf("part %q: multiplier mounted twice", p.Name)
		}
		ups, err := p.mount()
		if err != nil {
			return nil, errors.Wrap(err, "failed to mount part")
		}
		seen[p.M] = true
		cc.cs = append(cc.cs, ups...)
		cc.ms = append(cc.ms, p.M)
	}

	// workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if workers == 0 {
		workers = 1
	}
	for ups := cc.cs; len(ups) > 0; {
		size := len(ups) / workers
		if size*workers < len(ups) {
			size++
		}
		wc := make(chan struct{}, 1)
		cc.wc = append(cc.wc, wc)
		go worker(cc, ups[:size], wc)
		ups = ups[size:]
	}

	return cc, nil
}

// Dispose releases all resources allocated for a circuit and stops
// worker goroutines.
//
func (c *Circuit) Dispose() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		close(wc)
	}
	c.wg.Wait()
	c.wc = nil
}

func worker(c *Circuit, cs []Component, wc <-chan struct{}) {
	for {
		_, ok := <-wc
		if !ok {
			c.wg.Done()
			return
		}
		for _, f := range cs {
			f(c)
		}
		c.wg.Done()
	}
}

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint {
	return c.tick
}

// Step advances the simulation by one clock cycle.
//
func (c *Circuit) Step() {
	c.wg.Add(len(c.wc))
	for _, wc := range c.wc {
		wc <- struct{}{}
	}
	c.wg.Wait()
	c.tick++
}

// Run runs the simulation for n clock cycles.
//
func (c *Circuit) Run(n int) {
	for ; n > 0; n-- {
		c.Step()
	}
}

// Busy returns true if any multiplier in the circuit has a request in flight
// or a result waiting to be acknowledged.
//
func (c *Circuit) Busy() bool {
	for _, m := range c.ms {
		if !m.Ready() {
			return true
		}
	}
	return false
}

// Drain steps the circuit until all multipliers are idle. It returns an error
// if the circuit is still busy after max steps.
//
func (c *Circuit) Drain(max int) error {
	for i := 0; i < max; i++ {
		c.Step()
		if !c.Busy() {
			return nil
		}
	}
	return errors.Errorf("circuit still busy after %d steps", max)
}

// Size returns the component count in the circuit.
//
func (c *Circuit) Size() int { return len(c.cs) }
