package linstor

import (
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

var sizePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*(\S*)\s*$`)

// ParseVolumeSize converts a size string such as "1g", "10GiB" or "512MB" to
// KiB, rounding up. A bare number is taken as GiB. Single letter units are
// binary, so "1g" equals "1GiB" while "1GB" is decimal.
func ParseVolumeSize(size string) (int64, error) {
	m := sizePattern.FindStringSubmatch(size)
	if m == nil {
		return 0, argumentErrorf("size '%s' is not a valid number", size)
	}

	unit := m[2]
	switch {
	case unit == "":
		unit = "GiB"
	case len(unit) == 1 && !strings.EqualFold(unit, "b"):
		unit += "iB"
	}

	n, err := humanize.ParseBytes(m[1] + unit)
	if err != nil {
		return 0, argumentErrorf("%q is not a valid unit", m[2])
	}
	kib := (n + 1023) / 1024
	if kib > 1<<62 {
		return 0, argumentErrorf("size '%s' is too large", size)
	}
	return int64(kib), nil
}

// sizeKiB accepts a volume size as KiB integer or as a size string.
func sizeKiB(v any) (int64, error) {
	switch s := v.(type) {
	case int:
		return int64(s), nil
	case int64:
		return s, nil
	case string:
		return ParseVolumeSize(s)
	default:
		return 0, argumentErrorf("unsupported size value %v", v)
	}
}
