// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwmul

import "strconv"

// Phase is the state of a multiplier's control state machine.
//
type Phase uint8

// Multiplier phases, in sequence.
//
const (
	Idle         Phase = iota // waiting for a request
	NegateA                   // sign correction of operand a
	NegateB                   // sign correction of operand b
	Accumulate                // shift-add loop
	NegateResult              // sign correction of the product
	Done                      // result held until acknowledged
)

var phaseNames = [...]string{
	Idle:         "IDLE",
	NegateA:      "NEGATE_A",
	NegateB:      "NEGATE_B",
	Accumulate:   "ACCUMULATE",
	NegateResult: "NEGATE_RESULT",
	Done:         "DONE",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Phase(" + strconv.Itoa(int(p)) + ")"
}

// Half selects which half of the double width product a request returns.
//
type Half uint8

// Product halves.
//
const (
	Low  Half = iota // bits [width-1:0]
	High             // bits [2*width-1:width]
)

func (h Half) String() string {
	switch h {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "Half(" + strconv.Itoa(int(h)) + ")"
}

// limit returns the accumulation counter limit for h.
//
func (h Half) limit(width uint) uint {
	if h == High {
		return width - 1
	}
	return width
}
