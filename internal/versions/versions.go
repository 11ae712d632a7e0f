// Package versions parses the line-oriented "installed versions" output of a
// runtime version manager into structured records.
package versions

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Record is one installed runtime version.
type Record struct {
	// Version is MAJOR.MINOR.PATCH without a leading "v".
	Version string `json:"version"`

	// IsDefault is true for the version new shells start with.
	IsDefault bool `json:"isDefault"`

	// IsActive is true for the version the current shell is using.
	IsActive bool `json:"isActive"`
}

// linePattern captures an optional active marker ("*" or "->"), an optional
// "v" prefix, a three-part numeric version and whatever trails it. The
// version must end the line or be followed by space, "(" or "-", so
// "v18.19.0.1" is not read as 18.19.0.
var linePattern = regexp.MustCompile(`^\s*(\*|->)?\s*v?(\d+\.\d+\.\d+)([\s(-].*)?$`)

// defaultMarker matches "default" as a word in the trailing alias list,
// e.g. "default" or "default, lts-iron".
var defaultMarker = regexp.MustCompile(`(^|[\s,(])default([\s,)]|$)`)

// ErrInvalidVersion is returned by Normalize for strings that are not MAJOR.MINOR.PATCH.
var ErrInvalidVersion = errors.New("invalid version")

// Parse converts version-manager output into records, one per matching line.
// Lines that do not carry a version are skipped. Parse never fails.
//
// When several lines carry the same marker the last one wins: at most one
// record is active and at most one is default.
func Parse(text string) []Record {
	records := make([]Record, 0)
	lastActive, lastDefault := -1, -1

	for line := range strings.Lines(text) {
		m := linePattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil {
			continue
		}
		rec := Record{Version: m[2]}
		if m[1] != "" {
			lastActive = len(records)
		}
		if defaultMarker.MatchString(m[3]) {
			lastDefault = len(records)
		}
		records = append(records, rec)
	}

	if lastActive >= 0 {
		records[lastActive].IsActive = true
	}
	if lastDefault >= 0 {
		records[lastDefault].IsDefault = true
	}
	return records
}

// Normalize strips surrounding space and a leading "v" and checks that the
// remainder is MAJOR.MINOR.PATCH.
func Normalize(v string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "v")
	if _, ok := split(s); !ok {
		return "", errors.Wrapf(ErrInvalidVersion, "%q", v)
	}
	return s, nil
}

// Compare orders two MAJOR.MINOR.PATCH strings numerically. Malformed
// versions sort before well-formed ones and compare lexically among themselves.
func Compare(a, b string) int {
	pa, okA := split(a)
	pb, okB := split(b)
	switch {
	case !okA && !okB:
		return strings.Compare(a, b)
	case !okA:
		return -1
	case !okB:
		return 1
	}
	for i := range pa {
		if c := cmp.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return 0
}

// SortNewestFirst orders records by descending version in place.
func SortNewestFirst(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		return Compare(b.Version, a.Version)
	})
}

func split(v string) ([3]int, bool) {
	var out [3]int
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return out, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p == "" || strings.HasPrefix(p, "+") {
			return out, false
		}
		out[i] = n
	}
	return out, true
}
