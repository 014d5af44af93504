package location

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// Two numbers separated by commas or whitespace, or directly by the
	// sign of the second one ("40.71455-74.00714").
	coordinatePattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)*)(?:[\s,]+(-?\d+(?:\.\d+)*)|(-\d+(?:\.\d+)*))`)
	thirdGroup        = regexp.MustCompile(`^[\s,]*-?\d`)
)

// Parsed is the result of splitting free-form location text.
type Parsed struct {
	Label string
	// Query is the text to geocode when Coordinates is false.
	Query       string
	Coordinates bool
	Latitude    float64
	Longitude   float64
}

// Parse splits text into an optional label and either a coordinate pair or
// an address query. The rules follow PRTG's own handling of the field:
//
//   - text that starts with a coordinate pair is taken as coordinates, and
//     trailing text is ignored when it starts with punctuation
//   - a coordinate line followed by words becomes the label of that address
//   - a trailing newline is ignored
//   - the last newline separates the label from the address
//   - a carriage return without newline discards the label and everything
//     before it
func Parse(text string) Parsed {
	if strings.TrimSpace(text) == "" {
		return Parsed{}
	}
	if lat, lon, ok := parseCoordinates(text); ok {
		return Parsed{Coordinates: true, Latitude: lat, Longitude: lon}
	}

	body := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	label := ""
	query := text
	if i := strings.LastIndex(body, "\n"); i >= 0 {
		label = strings.TrimSuffix(body[:i], "\r")
		body = body[i+1:]
		query = body
	}

	candidate := body
	if i := strings.LastIndex(body, "\r"); i >= 0 {
		label = ""
		candidate = body[i+1:]
	}

	if lat, lon, ok := parseCoordinates(candidate); ok {
		return Parsed{Label: label, Coordinates: true, Latitude: lat, Longitude: lon}
	}
	return Parsed{Label: label, Query: query}
}

func parseCoordinates(s string) (lat, lon float64, ok bool) {
	m := coordinatePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, 0, false
	}

	latText := s[m[2]:m[3]]
	var lonText string
	if m[4] >= 0 {
		lonText = s[m[4]:m[5]]
	} else {
		lonText = s[m[6]:m[7]]
	}

	rest := s[m[1]:]
	if thirdGroup.MatchString(rest) {
		return 0, 0, false
	}
	// Only punctuation may follow the pair: "5 7 Avenue Road" is an address.
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(truncatePeriods(latText), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(truncatePeriods(lonText), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}

// truncatePeriods keeps the integer part and the first fractional segment:
// 40.7145.5 becomes 40.7145.
func truncatePeriods(s string) string {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 3 {
		return s
	}
	return parts[0] + "." + parts[1]
}
