// Package duration formats millisecond counts for people.
package duration

import (
	"strconv"
	"strings"
)

type unit struct {
	name string
	size uint64
}

var units = []unit{
	{"day", 86400000},
	{"hour", 3600000},
	{"minute", 60000},
	{"second", 1000},
	{"millisecond", 1},
}

// Human breaks ms down into days, hours, minutes, seconds and
// milliseconds, skipping zero parts: 90000 becomes "1 minute, 30 seconds".
// Zero is "0 milliseconds". The result ends in a newline.
func Human(ms uint64) string {
	parts := make([]string, 0, len(units))

	for _, u := range units {
		n := ms / u.size
		ms %= u.size

		if n == 0 {
			continue
		}

		part := strconv.FormatUint(n, 10) + " " + u.name
		if n != 1 {
			part += "s"
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return "0 milliseconds\n"
	}

	return strings.Join(parts, ", ") + "\n"
}
