package ping

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrNoMatch is returned when the output has no round-trip summary line
	// in either the Linux ("rtt") or BSD/macOS ("round-trip") dialect.
	ErrNoMatch = errors.New("no round-trip summary found in ping output")

	// ErrNumericFormat is returned when the summary line is present but its
	// average field is not a number.
	ErrNumericFormat = errors.New("average round-trip time is not a number")
)

// summaryRe matches the statistics line printed at the end of a ping run:
//
//	rtt min/avg/max/mdev = 10.123/15.456/20.789/2.345 ms
//	round-trip min/avg/max/stddev = 5.0/6.0/7.0/1.0ms
//
// The fields are captured loosely so that a malformed number is reported as
// ErrNumericFormat instead of ErrNoMatch. '.' does not cross line breaks.
var summaryRe = regexp.MustCompile(`(?:rtt|round-trip).* = ([^/\s]+)/([^/\s]+)/([^/\s]+)/([^/\s]+) ?ms`)

// decimalRe is the only number form ping prints. strconv.ParseFloat also
// accepts NaN, Inf, signs, exponents and hex floats, none of which is a
// round-trip time.
var decimalRe = regexp.MustCompile(`^\d*\.?\d+$`)

// ParseAverage extracts the average round-trip time in milliseconds from
// the full text output of ping. The second of the four slash-separated
// summary fields is the average.
func ParseAverage(output string) (float64, error) {
	m := summaryRe.FindStringSubmatch(output)
	if m == nil {
		return 0, ErrNoMatch
	}

	avg, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrNumericFormat, m[2], err)
	}
	if !decimalRe.MatchString(m[2]) {
		return 0, fmt.Errorf("%w: %q", ErrNumericFormat, m[2])
	}
	return avg, nil
}
