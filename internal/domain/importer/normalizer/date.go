package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// romanianMonths maps Romanian month names and their 2-4 letter abbreviations
// (trailing period already stripped) to month numbers. Read-only after init.
var romanianMonths = map[string]time.Month{
	"ian": time.January, "ianuarie": time.January,
	"feb": time.February, "februarie": time.February,
	"mar": time.March, "martie": time.March,
	"apr": time.April, "aprilie": time.April,
	"mai": time.May,
	"iun": time.June, "iunie": time.June,
	"iul": time.July, "iulie": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "septembrie": time.September,
	"oct": time.October, "octombrie": time.October,
	"nov": time.November, "noi": time.November, "noiembrie": time.November,
	"dec": time.December, "decembrie": time.December,
}

// dateLayouts is the fixed ordered list of numeric date formats attempted
// after the month-name form. Day-first layouts come before ISO; each
// separator variant also appears with a time-of-day suffix.
var dateLayouts = []string{
	"2.01.2006",
	"02.01.2006",
	"2/01/2006",
	"02/01/2006",
	"2-01-2006",
	"02-01-2006",
	"2006-01-02",

	"2.01.2006 15:04:05",
	"02.01.2006 15:04:05",
	"2/01/2006 15:04:05",
	"02/01/2006 15:04:05",
	"2-01-2006 15:04:05",
	"02-01-2006 15:04:05",
	"2006-01-02 15:04:05",
}

var monthNameDate = regexp.MustCompile(`^(\d{1,2})\s+([\p{L}\.]+)\s+(\d{4})$`)

// ParseDate converts statement date text into a calendar date. It tries, in
// order: the Romanian month-name form ("4 nov. 2025", "1 noiembrie 2025"),
// the fixed numeric layout list, and finally a separator-normalized
// "d.MM.yyyy" retry. Any time-of-day component is discarded.
func ParseDate(raw string) (time.Time, error) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	if m := monthNameDate.FindStringSubmatch(s); m != nil {
		word := strings.ReplaceAll(strings.ToLower(m[2]), ".", "")
		if month, ok := romanianMonths[word]; ok {
			normalized := fmt.Sprintf("%s.%02d.%s", m[1], int(month), m[3])
			if t, err := time.Parse("2.01.2006", normalized); err == nil {
				return t, nil
			}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDate(t), nil
		}
	}

	alt := strings.ReplaceAll(strings.ReplaceAll(s, "/", "."), "-", ".")
	if t, err := time.Parse("2.01.2006", alt); err == nil {
		return t, nil
	}

	return time.Time{}, ErrInvalidDate
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
