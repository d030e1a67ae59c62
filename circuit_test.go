package hwmul_test

import (
	"math/rand"
	"strconv"
	"testing"

	hw "github.com/db47h/hwmul"
	"github.com/db47h/hwmul/hwtest"
)

func randRequests(rng *rand.Rand, n int) []hw.Request {
	reqs := make([]hw.Request, n)
	for i := range reqs {
		reqs[i] = hw.Request{
			A:       rng.Uint64(),
			B:       rng.Uint64(),
			SignedA: rng.Intn(2) == 0,
			SignedB: rng.Intn(2) == 0,
			Half:    hw.Half(rng.Intn(2)),
		}
	}
	return reqs
}

func TestCircuit(t *testing.T) {
	const (
		width = 24
		lanes = 8
		count = 50
	)
	rng := rand.New(rand.NewSource(1))
	reqs := make([][]hw.Request, lanes)
	results := make([][]hw.Result, lanes)
	parts := make([]hw.Part, lanes)
	for i := range parts {
		reqs[i] = randRequests(rng, count)
		parts[i] = hw.Part{
			Name: "lane" + strconv.Itoa(i),
			M:    newMul(t, width),
			In:   hw.FromSlice(reqs[i]),
			Out:  hw.Collect(&results[i]),
		}
	}
	c, err := hw.NewCircuit(3, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	if c.Size() != lanes {
		t.Errorf("expected %d components, got %d", lanes, c.Size())
	}
	if err := c.Drain(count * (width + 6)); err != nil {
		t.Fatal(err)
	}
	for l := range results {
		if len(results[l]) != count {
			t.Fatalf("lane %d: expected %d results, got %d", l, count, len(results[l]))
		}
		for i, r := range results[l] {
			if exp := hwtest.Reference(width, reqs[l][i]); r.Value != exp || r.Half != reqs[l][i].Half {
				t.Errorf("lane %d, request %d %+v: expected %#x, got %+v", l, i, reqs[l][i], exp, r)
			}
		}
	}
	steps := c.Steps()
	c.Run(10)
	if c.Steps() != steps+10 || c.Busy() {
		t.Errorf("idle circuit: steps = %d, busy = %v", c.Steps(), c.Busy())
	}
}

func TestCircuit_backpressure(t *testing.T) {
	m := newMul(t, 8)
	var (
		calls int
		got   []hw.Result
	)
	c, err := hw.NewCircuit(1, hw.Part{
		Name: "slow",
		M:    m,
		In:   hw.FromSlice([]hw.Request{{A: 9, B: 9}, {A: 10, B: 10}}),
		Out: func(r hw.Result) bool {
			calls++
			if calls < 20 {
				return false
			}
			got = append(got, r)
			return true
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	c.Run(m.Latency(hw.Low) + 1)
	if m.Phase() != hw.Done || calls != 1 {
		t.Fatalf("phase = %s, calls = %d", m.Phase(), calls)
	}
	for i := 0; i < 10; i++ {
		c.Step()
		if r, ok := m.Poll(); !ok || r.Value != 81 {
			t.Fatalf("result not held: %+v, %v", r, ok)
		}
	}
	if err := c.Drain(100); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Value != 81 || got[1].Value != 100 {
		t.Errorf("unexpected results %+v", got)
	}
}

func TestCircuit_stall(t *testing.T) {
	c, err := hw.NewCircuit(0, hw.Part{
		M:   newMul(t, 4),
		In:  hw.FromSlice([]hw.Request{{A: 2, B: 3}}),
		Out: func(hw.Result) bool { return false },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	if err := c.Drain(50); err == nil {
		t.Error("Drain succeeded on a stalled circuit")
	}
}

func TestNewCircuit_errors(t *testing.T) {
	m := newMul(t, 8)
	td := []struct {
		name  string
		parts []hw.Part
	}{
		{"empty", nil},
		{"nil_multiplier", []hw.Part{{Name: "x"}}},
		{"shared_multiplier", []hw.Part{{Name: "a", M: m}, {Name: "b", M: m}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			c, err := hw.NewCircuit(0, d.parts...)
			if err == nil {
				c.Dispose()
				t.Fatal("expected an error")
			}
			t.Log(err)
		})
	}
}

func TestCircuit_nilSink(t *testing.T) {
	m := newMul(t, 16)
	c, err := hw.NewCircuit(2, hw.Part{M: m, In: hw.FromSlice([]hw.Request{{A: 1, B: 2}, {A: 3, B: 4}})})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	if err := c.Drain(100); err != nil {
		t.Fatal(err)
	}
	if !m.Ready() {
		t.Errorf("multiplier not idle: %s", m.Phase())
	}
}
