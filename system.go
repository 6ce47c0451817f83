// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"fmt"
)

// ConfigurationError reports a violated input constraint. It is
// returned before any per-locus computation starts.
type ConfigurationError struct {
	Constraint string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Constraint
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigurationError{Constraint: fmt.Sprintf(format, args...)}
}

// System is the sex-determination system of the study organism.
type System string

const (
	SystemZW System = "zw" // females heterogametic
	SystemXY System = "xy" // males heterogametic
)

// ParseSystem accepts exactly "zw" or "xy".
func ParseSystem(s string) (System, error) {
	switch System(s) {
	case SystemZW, SystemXY:
		return System(s), nil
	case "":
		return "", configErrorf("system must be specified (zw or xy)")
	default:
		return "", configErrorf("system must be zw or xy, not %q", s)
	}
}

func (sys System) valid() bool {
	return sys == SystemZW || sys == SystemXY
}

// HeterogameticName is the field name of the heterogametic-linked
// flag ("w.linked" or "y.linked").
func (sys System) HeterogameticName() string {
	if sys == SystemZW {
		return "w.linked"
	}
	return "y.linked"
}

// HomogameticName is the field name of the homogametic-linked flag
// ("z.linked" or "x.linked").
func (sys System) HomogameticName() string {
	if sys == SystemZW {
		return "z.linked"
	}
	return "x.linked"
}
