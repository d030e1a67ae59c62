// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwmul

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrBusy is returned by Run when the multiplier already has a request in
// flight.
//
var ErrBusy = errors.New("multiplier busy")

// Run submits r, steps the multiplier until the result is available,
// acknowledges it and returns it. ctx is checked between steps; on
// cancellation the request is aborted and the multiplier reset.
//
func (m *Multiplier) Run(ctx context.Context, r Request) (Result, error) {
	if !m.Submit(r) {
		return Result{}, errors.Wrapf(ErrBusy, "phase %s", m.phase)
	}
	for {
		if err := ctx.Err(); err != nil {
			m.Reset()
			return Result{}, errors.Wrap(err, "multiply")
		}
		m.Step()
		if res, ok := m.Poll(); ok {
			return res, m.Acknowledge()
		}
	}
}

// Batch runs reqs on lanes independent multipliers of the given width in
// parallel and returns the result values in request order. If lanes is less
// or equal to 0, the value of GOMAXPROCS will be used.
//
func Batch(ctx context.Context, width, lanes int, reqs []Request) ([]uint64, error) {
	if _, err := New(width); err != nil {
		return nil, err
	}
	if lanes <= 0 {
		lanes = runtime.GOMAXPROCS(-1)
	}
	if lanes > len(reqs) {
		lanes = len(reqs)
	}

	out := make([]uint64, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for l := 0; l < lanes; l++ {
		first := l
		g.Go(func() error {
			m, err := New(width)
			if err != nil {
				return err
			}
			for i := first; i < len(reqs); i += lanes {
				res, err := m.Run(ctx, reqs[i])
				if err != nil {
					return errors.Wrapf(err, "request %d", i)
				}
				out[i] = res.Value
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
