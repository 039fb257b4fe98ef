package profiler

import (
	"strconv"
	"strings"
)

// maxTopFunctions caps the number of rows taken from the report table.
const maxTopFunctions = 20

// ExtractStatistics parses perf report --stdio output into aggregated
// hot-function statistics.
//
// Lines are ignored until the header row containing both "Overhead" and
// "Command" is seen. After that, a row is accepted when it splits into at
// least three whitespace-delimited tokens and its first token carries a '%'.
// Rows whose overhead fails to parse are skipped without ending the scan.
func ExtractStatistics(reportSummary string) Statistics {
	stats := Statistics{TopFunctions: []HotFunction{}}
	if reportSummary == "" {
		return stats
	}

	inTable := false
	for _, line := range strings.Split(reportSummary, "\n") {
		line = strings.TrimSpace(line)

		if !inTable {
			if strings.Contains(line, "Overhead") && strings.Contains(line, "Command") {
				inTable = true
			}
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 || !strings.Contains(fields[0], "%") {
			continue
		}

		overhead, err := strconv.ParseFloat(strings.TrimRight(fields[0], "%"), 64)
		if err != nil {
			continue
		}

		// Column 4 onward is the symbol; short rows fall back to column 3.
		function := fields[2]
		if len(fields) > 3 {
			function = strings.Join(fields[3:], " ")
		}

		stats.TopFunctions = append(stats.TopFunctions, HotFunction{
			OverheadPercent: overhead,
			Command:         fields[1],
			Function:        function,
		})
		if len(stats.TopFunctions) >= maxTopFunctions {
			break
		}
	}

	// Row count, not the sampler's event count. See Statistics.
	stats.TotalSamples = len(stats.TopFunctions)
	return stats
}
