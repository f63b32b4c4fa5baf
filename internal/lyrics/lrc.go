package lyrics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
)

// ParseSynced parses LRC-format synced lyrics ("[mm:ss.xx] text") into
// timed lines sorted by timestamp. Lines without a parseable timestamp
// or with empty text are skipped.
func ParseSynced(raw string) []core.LyricLine {
	if raw == "" {
		return nil
	}

	var result []core.LyricLine
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		timePart, text := splitLRCLine(trimmed)
		if timePart == "" || text == "" {
			continue
		}

		at, err := parseLRCTime(timePart)
		if err != nil {
			continue
		}

		result = append(result, core.LyricLine{At: at, Text: text})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].At < result[j].At })
	return result
}

func splitLRCLine(line string) (string, string) {
	if !strings.HasPrefix(line, "[") {
		return "", ""
	}

	end := strings.Index(line, "]")
	if end <= 1 {
		return "", ""
	}

	timePart := line[1:end]
	text := strings.TrimSpace(line[end+1:])
	if text == "" {
		return "", ""
	}

	return timePart, text
}

// parseLRCTime converts "mm:ss.xx" or "hh:mm:ss.xx" to a duration.
func parseLRCTime(raw string) (time.Duration, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, strconv.ErrSyntax
	}

	var total float64
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, err
		}
		total = total*60 + v
	}
	if total < 0 {
		return 0, strconv.ErrRange
	}

	return time.Duration(total * float64(time.Second)), nil
}
