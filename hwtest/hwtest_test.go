package hwtest_test

import (
	"testing"

	hw "github.com/db47h/hwmul"
	"github.com/db47h/hwmul/hwtest"
)

func TestReference(t *testing.T) {
	td := []struct {
		width uint
		r     hw.Request
		exp   uint64
	}{
		{32, hw.Request{A: 7, B: 3}, 21},
		{32, hw.Request{A: 0xFFFFFFFF, B: 2, SignedA: true, SignedB: true}, 0xFFFFFFFE},
		{32, hw.Request{A: 0xFFFFFFFF, B: 2, SignedA: true, SignedB: true, Half: hw.High}, 0xFFFFFFFF},
		{32, hw.Request{A: 0xFFFFFFFF, B: 2, Half: hw.High}, 1},
		{8, hw.Request{A: 0x80, B: 0x80, SignedA: true, SignedB: true, Half: hw.High}, 0x40},
		{8, hw.Request{A: 0x80, B: 0xFF, SignedA: true, Half: hw.High}, 0x80},
		{1, hw.Request{A: 1, B: 1, SignedA: true, SignedB: true}, 1},
		{1, hw.Request{A: 1, B: 1, SignedA: true, Half: hw.High}, 1},
		{63, hw.Request{A: 1<<63 - 1, B: 1<<63 - 1, Half: hw.High}, 1<<63 - 2},
	}
	for _, d := range td {
		if got := hwtest.Reference(d.width, d.r); got != d.exp {
			t.Errorf("width %d, %+v: expected %#x, got %#x", d.width, d.r, d.exp, got)
		}
	}
}

func TestCompareMultiplier(t *testing.T) {
	for _, w := range []int{1, 7, 32, 63} {
		hwtest.CompareMultiplier(t, w, 16)
	}
}

func TestMultiply(t *testing.T) {
	m, err := hw.New(16)
	if err != nil {
		t.Fatal(err)
	}
	if v := hwtest.Multiply(t, m, hw.Request{A: 300, B: 200}); v != 60000 {
		t.Errorf("expected 60000, got %d", v)
	}
	if !m.Ready() {
		t.Error("result not acknowledged")
	}
}
