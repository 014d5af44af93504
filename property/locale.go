package property

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale controls how floating point values are written. PRTG's web form is
// locale aware, so the decimal separator must match the operator's culture.
type Locale struct {
	Tag     language.Tag
	decimal string
}

// Invariant writes decimals with a period.
var Invariant = NewLocale(language.AmericanEnglish)

func NewLocale(tag language.Tag) Locale {
	return Locale{Tag: tag, decimal: decimalSeparator(tag)}
}

// ParseLocale accepts BCP 47 tags such as "de-DE".
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Locale{}, err
	}
	return NewLocale(tag), nil
}

func decimalSeparator(tag language.Tag) string {
	s := message.NewPrinter(tag).Sprint(number.Decimal(1.5))
	sep := strings.TrimSuffix(strings.TrimPrefix(s, "1"), "5")
	if utf8.RuneCountInString(sep) != 1 {
		return "."
	}
	return sep
}

func (l Locale) DecimalSeparator() string {
	if l.decimal == "" {
		return "."
	}
	return l.decimal
}

// FormatFloat writes f with the shortest precision that round trips.
func (l Locale) FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if sep := l.DecimalSeparator(); sep != "." {
		s = strings.Replace(s, ".", sep, 1)
	}
	return s
}

func (l Locale) String() string {
	return l.Tag.String()
}
