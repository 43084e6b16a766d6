// Package bytesize parses and formats human-readable byte sizes.
//
// Units are binary and case-insensitive: B, K/KB/KiB, M/MB/MiB, G/GB/GiB,
// T/TB/TiB. A bare number is a byte count.
//
// Examples:
//   - "48KB" = 48 * 1024 bytes
//   - "1.5 GB" = 1.5 * 1024^3 bytes
//   - "1024" = 1024 bytes
package bytesize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Size represents a byte size as int64.
type Size int64

// Common size constants using binary (1024) base.
const (
	B  Size = 1
	KB Size = 1024
	MB Size = 1024 * KB
	GB Size = 1024 * MB
	TB Size = 1024 * GB
)

// units is ordered largest first for Format.
var units = []struct {
	name    string
	size    Size
	aliases []string
}{
	{"TB", TB, []string{"t", "tb", "tib"}},
	{"GB", GB, []string{"g", "gb", "gib"}},
	{"MB", MB, []string{"m", "mb", "mib"}},
	{"KB", KB, []string{"k", "kb", "kib"}},
	{"B", B, []string{"b", "byte", "bytes"}},
}

var sizePattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:\.[0-9]+)?)\s*([a-z]*)\s*$`)

// Parse parses a human-readable byte size string.
func Parse(s string) (Size, error) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("bytesize: invalid format %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("bytesize: invalid number %q: %w", m[1], err)
	}

	multiplier, ok := lookup(strings.ToLower(m[2]))
	if !ok {
		return 0, fmt.Errorf("bytesize: unknown unit %q", m[2])
	}

	bytes := value * float64(multiplier)
	if bytes > math.MaxInt64 {
		return 0, fmt.Errorf("bytesize: %q overflows int64", s)
	}
	return Size(bytes), nil
}

func lookup(unit string) (Size, bool) {
	if unit == "" {
		return B, true
	}
	for _, u := range units {
		for _, alias := range u.aliases {
			if alias == unit {
				return u.size, true
			}
		}
	}
	return 0, false
}

// Format renders s with the largest unit that keeps the value >= 1,
// using at most two decimal places.
func Format(s Size) string {
	if s < 0 {
		return "-" + Format(-s)
	}
	for _, u := range units {
		if s < u.size {
			continue
		}
		if u.size == B {
			break
		}
		v := strconv.FormatFloat(float64(s)/float64(u.size), 'f', 2, 64)
		v = strings.TrimRight(strings.TrimRight(v, "0"), ".")
		return v + u.name
	}
	return strconv.FormatInt(int64(s), 10) + "B"
}

// Bytes returns the size in bytes.
func (s Size) Bytes() int64 {
	return int64(s)
}

// String implements fmt.Stringer.
func (s Size) String() string {
	return Format(s)
}
