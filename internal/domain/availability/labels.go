package availability

import (
	"fmt"
	"strings"
	"time"
)

type Locale string

const (
	LocaleDutch   Locale = "nl"
	LocaleEnglish Locale = "en"

	DefaultLocale = LocaleDutch
)

var weekdayNames = map[Locale][7]string{
	LocaleDutch:   {"Zondag", "Maandag", "Dinsdag", "Woensdag", "Donderdag", "Vrijdag", "Zaterdag"},
	LocaleEnglish: {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

var shortMonthNames = map[Locale][12]string{
	LocaleDutch:   {"jan", "feb", "mrt", "apr", "mei", "jun", "jul", "aug", "sep", "okt", "nov", "dec"},
	LocaleEnglish: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
}

// ParseLocale maps a language tag such as "en", "en-GB" or "nl-NL" onto a
// supported locale, falling back to DefaultLocale.
func ParseLocale(tag string) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}

	switch Locale(tag) {
	case LocaleDutch, LocaleEnglish:
		return Locale(tag)
	default:
		return DefaultLocale
	}
}

// DayLabel renders weekday, day of month and short month, e.g. "Woensdag 15 okt".
func DayLabel(d time.Time, locale Locale) string {
	days, ok := weekdayNames[locale]
	if !ok {
		days = weekdayNames[DefaultLocale]
	}
	months, ok := shortMonthNames[locale]
	if !ok {
		months = shortMonthNames[DefaultLocale]
	}

	return fmt.Sprintf("%s %d %s", days[d.Weekday()], d.Day(), months[d.Month()-1])
}
