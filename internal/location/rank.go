package location

import (
	"cmp"
	"strconv"
	"strings"
)

// Floor ranks.
const (
	BasementRank     = 0
	RoofRank         = 99
	UnknownFloorRank = 999
)

// Room ranks: numbered rooms, then non-numeric tokens, then corridors, then empty.
// A room number is capped below NonNumericRoomRank so the bands never overlap.
const (
	maxRoomNumber      = 599999
	NonNumericRoomRank = 600000
	NonRoomRank        = 700000
	EmptyRoomRank      = 999999
)

// nonRoomMarkers identify corridors, stairs and elevators.
var nonRoomMarkers = []string{"HALL", "CORR", "STAIR", "STR", "ELEV"}

// RankKey orders records by location. It is working data for sorting only.
type RankKey struct {
	Floor int
	Room  int
}

// KeyOf returns the rank key for a canonical floor and room.
func KeyOf(floor, room string) RankKey {
	return RankKey{Floor: FloorRank(floor), Room: RoomRank(room)}
}

// Compare orders keys by floor rank, then room rank.
func (k RankKey) Compare(o RankKey) int {
	if c := cmp.Compare(k.Floor, o.Floor); c != 0 {
		return c
	}
	return cmp.Compare(k.Room, o.Room)
}

// FloorRank: basement 0, numbered floors by value, roof 99, anything else 999.
func FloorRank(floor string) int {
	up := strings.ToUpper(strings.TrimSpace(floor))
	switch up {
	case "":
		return UnknownFloorRank
	case FloorBasement:
		return BasementRank
	case FloorRoof:
		return RoofRank
	}
	if !allDigits(up) {
		return UnknownFloorRank
	}
	n, err := strconv.Atoi(up)
	if err != nil {
		return UnknownFloorRank
	}
	return n
}

// RoomRank ranks a numbered room by its leading number. Tokens without a number
// rank 600000, corridor/stair/elevator tokens 700000 and an empty room 999999.
func RoomRank(room string) int {
	up := strings.ToUpper(strings.TrimSpace(room))
	if up == "" {
		return EmptyRoomRank
	}
	for _, marker := range nonRoomMarkers {
		if strings.Contains(up, marker) {
			return NonRoomRank
		}
	}
	end := 0
	for end < len(up) && isDigit(up[end]) {
		end++
	}
	if end == 0 {
		return NonNumericRoomRank
	}
	n, err := strconv.Atoi(up[:end])
	if err != nil || n > maxRoomNumber {
		return maxRoomNumber
	}
	return n
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}
