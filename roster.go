// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Sex byte

const (
	SexUnknown Sex = iota
	SexFemale
	SexMale
)

// ParseSex returns SexFemale for "F", SexMale for "M", and SexUnknown
// for anything else (including blank).
func ParseSex(s string) Sex {
	switch strings.TrimSpace(s) {
	case "F":
		return SexFemale
	case "M":
		return SexMale
	default:
		return SexUnknown
	}
}

func (s Sex) String() string {
	switch s {
	case SexFemale:
		return "F"
	case SexMale:
		return "M"
	default:
		return "unknown"
	}
}

// SexRoster maps sample ID to sex. Absent IDs are unknown.
type SexRoster map[string]Sex

// ReadSexRoster reads "id,sex" (or tab separated) lines. A first line
// whose second field is "sex" (any case) is treated as a header.
func ReadSexRoster(r io.Reader) (SexRoster, error) {
	roster := SexRoster{}
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sep := ","
		if strings.Contains(line, "\t") {
			sep = "\t"
		}
		fields := strings.Split(line, sep)
		id := strings.TrimSpace(fields[0])
		var sex string
		if len(fields) > 1 {
			sex = fields[1]
		}
		if lineNum == 1 && strings.EqualFold(strings.TrimSpace(sex), "sex") {
			continue
		}
		if id == "" {
			return nil, fmt.Errorf("line %d: empty sample id", lineNum)
		}
		if _, dup := roster[id]; dup {
			return nil, fmt.Errorf("line %d: duplicate sample id %q", lineNum, id)
		}
		roster[id] = ParseSex(sex)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return roster, nil
}

// Partition splits gm into female and male sub-matrices. Samples of
// unknown sex, including samples missing from the roster, appear in
// neither.
func Partition(gm *GenotypeMatrix, roster SexRoster) (female, male *GenotypeMatrix, err error) {
	var haveF, haveM bool
	for _, sex := range roster {
		haveF = haveF || sex == SexFemale
		haveM = haveM || sex == SexMale
	}
	if !haveF && !haveM {
		return nil, nil, configErrorf("sex roster has no individuals labeled F or M")
	}
	var fcols, mcols []int
	for col, id := range gm.SampleIDs {
		switch roster[id] {
		case SexFemale:
			fcols = append(fcols, col)
		case SexMale:
			mcols = append(mcols, col)
		}
	}
	return gm.columns(fcols), gm.columns(mcols), nil
}
