// Package location canonicalizes floor, room and building values and maps them to
// sort ranks.
package location

import "strings"

// Floor tokens with a fixed meaning.
const (
	FloorBasement = "B"
	FloorRoof     = "SF"
)

// Normalizer turns extracted floor/room candidates into canonical values.
type Normalizer struct {
	// TwoDigitFloors lets rooms such as "1012" imply floor "10". Only "10", "11"
	// and "12" are recognised, and only when the room has at least four characters.
	TwoDigitFloors bool
}

// Normalize returns the canonical floor and room. A missing floor is inferred from
// a room that starts with a digit. The room is upper-cased but otherwise kept
// verbatim, including leading zeros and hyphens.
func (n Normalizer) Normalize(floorCandidate, roomCandidate string) (floor, room string) {
	room = strings.ToUpper(strings.TrimSpace(roomCandidate))
	floor = strings.TrimSpace(floorCandidate)
	if floor == "" && room != "" && isDigit(room[0]) {
		floor = n.floorFromRoom(room)
	}
	return CanonicalFloor(floor), room
}

func (n Normalizer) floorFromRoom(room string) string {
	if n.TwoDigitFloors && len(room) >= 4 {
		switch room[:2] {
		case "10", "11", "12":
			return room[:2]
		}
	}
	return room[:1]
}

// CanonicalFloor maps basement and roof spellings to "B" and "SF" and upper-cases
// everything else.
func CanonicalFloor(token string) string {
	up := strings.ToUpper(strings.TrimSpace(token))
	switch up {
	case "0", "B", "BASEMENT":
		return FloorBasement
	case "SF", "ROOF":
		return FloorRoof
	}
	return up
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
