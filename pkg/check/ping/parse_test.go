package ping

import (
	"errors"
	"strconv"
	"testing"
)

func TestParseAverage_LinuxDialect(t *testing.T) {
	output := `PING google.com (142.250.74.46) 56(84) bytes of data.
64 bytes from arn09s22-in-f14.1e100.net (142.250.74.46): icmp_seq=1 ttl=117 time=10.1 ms
64 bytes from arn09s22-in-f14.1e100.net (142.250.74.46): icmp_seq=2 ttl=117 time=20.7 ms

--- google.com ping statistics ---
4 packets transmitted, 4 received, 0% packet loss, time 3004ms
rtt min/avg/max/mdev = 10.123/15.456/20.789/2.345 ms`

	avg, err := ParseAverage(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 15.456 {
		t.Errorf("expected 15.456, got %v", avg)
	}
}

func TestParseAverage_BSDDialectNoSpaceBeforeUnit(t *testing.T) {
	output := `PING google.com (142.250.74.46): 56 data bytes
64 bytes from 142.250.74.46: icmp_seq=0 ttl=117 time=5.0 ms

--- google.com ping statistics ---
4 packets transmitted, 4 packets received, 0.0% packet loss
round-trip min/avg/max/stddev = 5.0/6.0/7.0/1.0ms`

	avg, err := ParseAverage(output)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 6.0 {
		t.Errorf("expected 6.0, got %v", avg)
	}
}

func TestParseAverage_BSDDialectWithSpace(t *testing.T) {
	avg, err := ParseAverage("round-trip min/avg/max/stddev = 0.041/0.052/0.066/0.009 ms\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 0.052 {
		t.Errorf("expected 0.052, got %v", avg)
	}
}

func TestParseAverage_SecondFieldIsAlwaysAverage(t *testing.T) {
	for _, label := range []string{"rtt min/avg/max/mdev", "round-trip min/avg/max/stddev"} {
		for _, unit := range []string{" ms", "ms"} {
			for _, want := range []float64{0, 1, 12.5, 999.999} {
				line := label + " = 1.5/" + strconv.FormatFloat(want, 'f', -1, 64) + "/2000.25/3.75" + unit
				got, err := ParseAverage(line)
				if err != nil {
					t.Errorf("%q: unexpected error: %v", line, err)
					continue
				}
				if got != want {
					t.Errorf("%q: expected %v, got %v", line, want, got)
				}
			}
		}
	}
}

func TestParseAverage_NoSummary(t *testing.T) {
	output := `PING badhost (0.0.0.0): 56 data bytes
--- badhost ping statistics ---
4 packets transmitted, 0 received, 100% packet loss`

	_, err := ParseAverage(output)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestParseAverage_Empty(t *testing.T) {
	_, err := ParseAverage("")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestParseAverage_PerPacketTimesAreNotASummary(t *testing.T) {
	output := `64 bytes from localhost: icmp_seq=1 ttl=64 time=0.042 ms`

	_, err := ParseAverage(output)
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestParseAverage_ThreeFieldSummaryIsNotMatched(t *testing.T) {
	// busybox prints min/avg/max only
	_, err := ParseAverage("round-trip min/avg/max = 0.1/0.2/0.3 ms")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("expected ErrNoMatch, got %v", err)
	}
}

func TestParseAverage_NonNumericAverage(t *testing.T) {
	_, err := ParseAverage("rtt min/avg/max/mdev = 10.1/abc/20.7/2.3 ms")
	if !errors.Is(err, ErrNumericFormat) {
		t.Errorf("expected ErrNumericFormat, got %v", err)
	}
	if errors.Is(err, ErrNoMatch) {
		t.Error("numeric format failure must not be reported as no match")
	}
}

func TestParseAverage_MalformedNumber(t *testing.T) {
	_, err := ParseAverage("round-trip min/avg/max/stddev = 1.0/1.2.3/4.0/0.1 ms")
	if !errors.Is(err, ErrNumericFormat) {
		t.Errorf("expected ErrNumericFormat, got %v", err)
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("expected wrapped *strconv.NumError, got %T", err)
	}
}

func TestParseAverage_OnlyOtherFieldsMalformed(t *testing.T) {
	avg, err := ParseAverage("rtt min/avg/max/mdev = x/7.25/y/z ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 7.25 {
		t.Errorf("expected 7.25, got %v", avg)
	}
}

func TestParseAverage_RejectsNonDecimalFloats(t *testing.T) {
	for _, avg := range []string{"NaN", "Inf", "+Inf", "-5", "0x1p4", "1e3"} {
		_, err := ParseAverage("rtt min/avg/max/mdev = 1.0/" + avg + "/3.0/4.0 ms")
		if !errors.Is(err, ErrNumericFormat) {
			t.Errorf("average %q: expected ErrNumericFormat, got %v", avg, err)
		}
	}
}

func TestParseAverage_IntegerFields(t *testing.T) {
	avg, err := ParseAverage("rtt min/avg/max/mdev = 1/12/30/4 ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 12 {
		t.Errorf("expected 12, got %v", avg)
	}
}

func TestParseAverage_LeadingDot(t *testing.T) {
	avg, err := ParseAverage("round-trip min/avg/max/stddev = .1/.5/1/0ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 0.5 {
		t.Errorf("expected 0.5, got %v", avg)
	}
}
