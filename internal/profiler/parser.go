package profiler

import (
	"strconv"
	"strings"
)

// ParseStackSamples converts raw perf script output into discrete stack
// samples in emission order.
//
// The input is blank-line delimited. Each sample starts with a non-indented
// header line ("<command> <pid> [cpu] <timestamp>: <event>:") followed by
// indented frame lines ("<address> <symbol> (<module>)") emitted leaf-first.
// Frames are reversed so the stored stack is root-first.
//
// The parser never fails: malformed header fields degrade to zero values and
// a sample missing either its header or all of its frames is dropped.
func ParseStackSamples(raw string) []StackSample {
	var samples []StackSample
	var current *StackSample

	flush := func() {
		if current != nil && len(current.Stack) > 0 {
			reverseStrings(current.Stack)
			samples = append(samples, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		indented := line[0] == '\t' || line[0] == ' '
		if !indented {
			// New header; an immediately preceding frameless header is dropped.
			flush()
			current = parseSampleHeader(trimmed)
			continue
		}

		if current == nil {
			// Frame line with no header in sight; skip it.
			continue
		}
		if frame := parseFrameLine(trimmed); frame != "" {
			current.Stack = append(current.Stack, frame)
		}
	}
	flush()

	return samples
}

// parseSampleHeader extracts command, pid and timestamp from a header line.
// Missing or non-numeric fields degrade to empty string / zero.
func parseSampleHeader(line string) *StackSample {
	fields := strings.Fields(line)
	sample := &StackSample{}
	if len(fields) > 0 {
		sample.Command = fields[0]
	}
	if len(fields) > 1 {
		if pid, err := strconv.Atoi(fields[1]); err == nil {
			sample.PID = pid
		}
	}
	if len(fields) > 3 {
		sample.Timestamp = fields[3]
	}
	return sample
}

// parseFrameLine extracts the symbol name from a frame line that has already
// been trimmed of leading whitespace.
//
// The usual shape is "<address> <symbol> (<module>)": everything before the
// first '(' is the address+symbol portion, and the symbol is what follows the
// address token. A line with no '(' is taken verbatim as the symbol.
func parseFrameLine(trimmed string) string {
	payload := trimmed
	if idx := strings.IndexByte(trimmed, '('); idx >= 0 {
		payload = strings.TrimSpace(trimmed[:idx])
	} else {
		return payload
	}
	if payload == "" {
		return ""
	}

	// Drop the leading address token if one is present.
	if idx := strings.IndexAny(payload, " \t"); idx >= 0 {
		return strings.TrimSpace(payload[idx+1:])
	}
	return payload
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
