package scale

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultFormat prints the shortest decimal that round-trips v.
func DefaultFormat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IntegerFormat prints v rounded to zero decimal places without
// grouping separators, as used for count axes.
func IntegerFormat(v float64) string {
	p := message.NewPrinter(language.English)
	return p.Sprint(number.Decimal(v, number.MaxFractionDigits(0), number.NoSeparator()))
}

// DateFormat prints the abbreviated month and zero-padded day, e.g. "Jan 02".
func DateFormat(t time.Time) string {
	return t.UTC().Format("Jan 02")
}

// FixedFormat returns a formatter printing digits decimal places.
func FixedFormat(digits int) Formatter[float64] {
	return func(v float64) string {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}
}
