// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command mulsim runs a single multiplication on a simulated multiplier.
//
//	mulsim [flags] a b
//
// Operands accept the usual Go integer prefixes (0x, 0b, 0o) and may be
// negative. Use -- to separate negative operands from flags:
//
//	mulsim -signed-a -signed-b -- -3 2
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/db47h/hwmul"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

func parseOperand(s string) (uint64, error) {
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return v, nil
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid operand %q", s)
	}
	return uint64(v), nil
}

func run(args []string, stdout io.Writer, tty bool) error {
	fs := flag.NewFlagSet("mulsim", flag.ContinueOnError)
	width := fs.Int("width", 32, "operand `bits`")
	signedA := fs.Bool("signed-a", false, "interpret a as a two's complement integer")
	signedB := fs.Bool("signed-b", false, "interpret b as a two's complement integer")
	high := fs.Bool("high", false, "return the high half of the product")
	trace := fs.Bool("trace", false, "print the multiplier state after each step")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("expected two operands")
	}

	var r hwmul.Request
	var err error
	if r.A, err = parseOperand(fs.Arg(0)); err != nil {
		return err
	}
	if r.B, err = parseOperand(fs.Arg(1)); err != nil {
		return err
	}
	r.SignedA, r.SignedB = *signedA, *signedB
	if *high {
		r.Half = hwmul.High
	}

	m, err := hwmul.New(*width)
	if err != nil {
		return err
	}

	out := stdout
	var tw *tabwriter.Writer
	if tty {
		tw = tabwriter.NewWriter(stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
		out = tw
	}
	if *trace {
		fmt.Fprintln(out, "step\tphase\ta\tb\tresult\tcount\tlowzero\t")
		step := 0
		m.Probe(func(s hwmul.State) {
			step++
			fmt.Fprintf(out, "%d\t%s\t%#x\t%#x\t%#x\t%d\t%v\t\n",
				step, s.Phase, s.A, s.B, s.Result, s.Count, s.LowZero)
		})
	}

	res, err := m.Run(context.Background(), r)
	if err != nil {
		return err
	}
	if tw != nil {
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(stdout, "%#x\n", res.Value)
	return err
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("mulsim: ")
	err := run(os.Args[1:], os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	if err == flag.ErrHelp {
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
