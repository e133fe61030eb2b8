package predict

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-task-time-predictor/internal/domain"
)

// deadlineLayouts are tried in order. Fractional seconds are accepted after
// any seconds field even when the layout omits them. Zone-less values parse
// as UTC, so their hour is the hour as written.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParseDeadline parses a client supplied deadline and reports the layout
// that matched.
func ParseDeadline(raw string) (time.Time, string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, "", fmt.Errorf("%w: empty value", domain.ErrUnparseableDeadline)
	}

	for _, layout := range deadlineLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, layout, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("%w: %q", domain.ErrUnparseableDeadline, raw)
}
