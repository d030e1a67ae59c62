// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwmul

import (
	"strconv"

	"github.com/pkg/errors"
)

// ErrPrecedence is returned when a result is read or acknowledged before the
// multiplier has one available. Errors returned by the package wrap it; use
// errors.Cause to test for it.
//
var ErrPrecedence = errors.New("no result available")

// A ConfigurationError is returned by New when the requested operand width is
// not supported.
//
type ConfigurationError struct {
	Width  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid width " + strconv.Itoa(e.Width) + ": " + e.Reason
}

func precedenceError(op string, p Phase) error {
	return errors.Wrapf(ErrPrecedence, "%s in phase %s", op, p)
}
