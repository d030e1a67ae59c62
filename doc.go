/*
Package hwmul simulates an iterative signed/unsigned integer multiplier, the
kind found as a compute unit in small CPU cores.

A Multiplier computes the double width product of two operands of up to 63
bits, one bit position per step, and returns either its low or its high half.
Each request goes through a fixed sequence of phases: operand sign correction,
a shift-add loop and a final sign correction of the product. The result is then
held until the consumer acknowledges it:

	m, _ := hwmul.New(32)
	m.Submit(hwmul.Request{A: 7, B: 3})
	for {
		m.Step()
		if r, ok := m.Poll(); ok {
			fmt.Println(r.Value) // 21
			m.Acknowledge()
			break
		}
	}

Several multipliers can be clocked together by a Circuit, each wired to its
own request Source and result Sink.

*/
package hwmul
