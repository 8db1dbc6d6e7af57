package classify

import (
	"strings"
	"time"

	"github.com/actau-dev/actau/pkg/models"
)

// effectiveDateLayout matches the bank's export timestamps,
// e.g. "2:52PM Sat 14 January, 2023".
const effectiveDateLayout = "3:04PM Mon 2 January, 2006"

// utcOffset corrects the export's UTC wall-clock times to local calendar
// days. A fixed +10h is used on purpose; daylight-saving drift is a known,
// accepted simplification.
const utcOffset = 10 * time.Hour

// NormalizeDate converts an export timestamp to the local calendar date.
func NormalizeDate(s string) (time.Time, error) {
	t, err := time.Parse(effectiveDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &models.FormatError{Input: s, Reason: "expected a timestamp like 2:52PM Sat 14 January, 2023"}
	}
	t = t.Add(utcOffset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
