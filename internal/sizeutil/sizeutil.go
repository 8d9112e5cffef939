// Package sizeutil converts between byte counts and human-readable size
// strings. Byte counts are the canonical representation everywhere in the
// system; formatted strings appear only at presentation boundaries and in
// legacy metadata records imported from the previous portal, where sizes
// were sometimes stored as strings like "1.5 KB".
package sizeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB"}

var unitMultipliers = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// sizePattern matches "<number><optional space><unit>", e.g. "1.5 KB", "2MB".
var sizePattern = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)\s*(B|KB|MB|GB|TB)$`)

// ParseSize tolerantly converts a heterogeneous size value to bytes.
// Numeric values are assumed to already be bytes. Strings are parsed at
// 1024-based multiples. Anything missing or unparseable contributes 0;
// this function never fails.
func ParseSize(v interface{}) int64 {
	switch s := v.(type) {
	case int64:
		return s
	case int:
		return int64(s)
	case float64:
		return int64(s)
	case string:
		return parseSizeString(s)
	default:
		return 0
	}
}

func parseSizeString(s string) int64 {
	m := sizePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return int64(value * float64(unitMultipliers[m[2]]))
}

// TotalSize sums the byte sizes of a sequence of file-like values.
// Each entry goes through ParseSize, so malformed legacy entries are
// silently skipped rather than failing the whole sum.
func TotalSize(sizes []interface{}) int64 {
	var total int64
	for _, s := range sizes {
		total += ParseSize(s)
	}
	return total
}

// FormatSize renders a byte count with the largest unit whose value is
// at least 1, to two decimal places. Zero formats as "0 B" exactly.
// Counts beyond the unit table clamp to TB.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	idx := 0
	value := float64(bytes)
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}

	return fmt.Sprintf("%.2f %s", value, units[idx])
}
