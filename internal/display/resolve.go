package display

import (
	"strconv"
	"strings"
)

// virtualMarker is the generic token identifying virtual displays in listing
// output when the session name itself does not appear on the line.
const virtualMarker = "VirtualDisplay"

// displayIDKey is the key=value token whose integer value is the OS-assigned
// display identifier.
const displayIDKey = "displayId="

// ResolveDisplayID scans free-text display listing output for the session
// identified by name and extracts its integer identifier.
//
// The listing format is not a stable contract, so this is a best-effort
// heuristic: a line is considered a match when it contains the session name
// or the generic virtual-display marker, and the identifier is the first
// integer following a displayId= token on that line. When no line matches,
// matched is false and the caller must substitute its configured fallback
// identifier (and log that the fallback path was taken).
func ResolveDisplayID(listing, name string) (id int, matched bool) {
	for _, line := range strings.Split(listing, "\n") {
		if name != "" && !strings.Contains(line, name) && !strings.Contains(line, virtualMarker) {
			continue
		}
		if name == "" && !strings.Contains(line, virtualMarker) {
			continue
		}
		if v, ok := extractIDToken(line); ok {
			return v, true
		}
	}
	return 0, false
}

// extractIDToken finds the first displayId= token in the line and parses the
// integer that immediately follows it.
func extractIDToken(line string) (int, bool) {
	idx := strings.Index(line, displayIDKey)
	if idx < 0 {
		return 0, false
	}
	rest := line[idx+len(displayIDKey):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
