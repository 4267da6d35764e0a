package parser

import "regexp"

// markerSep is what may follow a marker word before its token. A token glued to
// the marker must start with a digit, so "flooring" and "Rooms" are not markers.
const markerSep = `(?:\.?\s*[:#\-]\s*|\.\s*|\s+)`

var (
	// "Flr" / "Floor", separator, alphanumeric token ("flr3" also matches).
	floorMarker = regexp.MustCompile(`(?i)\b(?:floor|flr)(?:` + markerSep + `([A-Za-z0-9]+)|(\d[A-Za-z0-9]*))`)
	// "Rm" / "Room", separator, alphanumeric token with interior hyphens.
	roomMarker = regexp.MustCompile(`(?i)\b(?:room|rm)(?:` + markerSep + `([A-Za-z0-9]+(?:-[A-Za-z0-9]+)*)|(\d[A-Za-z0-9]*(?:-[A-Za-z0-9]+)*))`)
)

// ExtractLocation finds the first floor and first room marker in a work-order
// description. The two searches are independent; an empty string means no marker
// was found, which is not an error.
func ExtractLocation(description string) (floor, room string) {
	return firstToken(floorMarker, description), firstToken(roomMarker, description)
}

func firstToken(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
