package regex

import (
	"strings"
	"time"
)

// teku: 2024-10-02 18:35:21.202+04:00 | forkChoiceNotifier-async-0 | DEBUG | ...
// teku with UTC logs: 2024-10-02 14:35:21.202Z | ...
var DateLayouts = []string{
	"2006-01-02 15:04:05.000Z07:00",
}

// SearchDateFromLog parses the timestamp in front of the first field separator.
// It returns the layout used, so that the date can be displayed the way it was logged
func SearchDateFromLog(log string) (time.Time, string, bool) {
	prefix, _, found := strings.Cut(log, "|")
	if !found {
		return time.Time{}, "", false
	}
	prefix = strings.TrimSpace(prefix)
	for _, layout := range DateLayouts {
		t, err := time.Parse(layout, prefix)
		if err == nil {
			return t, layout, true
		}
	}
	return time.Time{}, "", false
}
