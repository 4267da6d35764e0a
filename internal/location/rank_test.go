package location

import (
	"math/rand"
	"slices"
	"testing"
)

func TestFloorRank(t *testing.T) {
	tests := []struct {
		floor string
		want  int
	}{
		{"B", 0},
		{"b", 0},
		{"1", 1},
		{"12", 12},
		{"SF", 99},
		{"", 999},
		{"LL", 999},
		{"2A", 999},
	}
	for _, tt := range tests {
		if got := FloorRank(tt.floor); got != tt.want {
			t.Errorf("FloorRank(%q) = %d, want %d", tt.floor, got, tt.want)
		}
	}
}

func TestRoomRank(t *testing.T) {
	tests := []struct {
		room string
		want int
	}{
		{"", 999999},
		{"101", 101},
		{"305A", 305},
		{"014", 14},
		{"2-114", 2},
		{"HALL", 700000},
		{"1ST-STAIR", 700000},
		{"ELEV2", 700000},
		{"CORR-3", 700000},
		{"MECH", 600000},
		{"B12", 600000},
		{"9999999", 599999},
	}
	for _, tt := range tests {
		if got := RoomRank(tt.room); got != tt.want {
			t.Errorf("RoomRank(%q) = %d, want %d", tt.room, got, tt.want)
		}
	}
}

func TestRankBands(t *testing.T) {
	// basement < numbered floors < roof < unknown
	floors := []string{"B", "1", "2", "10", "SF", "", "XYZ"}
	for i := 1; i < len(floors); i++ {
		if FloorRank(floors[i-1]) > FloorRank(floors[i]) {
			t.Errorf("floor %q ranks after %q", floors[i-1], floors[i])
		}
	}
	// numbered rooms < non-numeric < corridors < empty
	rooms := []string{"1", "250", "599999", "MECH", "HALL", ""}
	for i := 1; i < len(rooms); i++ {
		if RoomRank(rooms[i-1]) >= RoomRank(rooms[i]) {
			t.Errorf("room %q does not rank before %q", rooms[i-1], rooms[i])
		}
	}
}

func TestRankKeyCompare_TotalOrder(t *testing.T) {
	floors := []string{"B", "1", "2", "SF", "", "LL"}
	rooms := []string{"101", "014", "HALL", "MECH", "", "305A"}
	var keys []RankKey
	for _, f := range floors {
		for _, r := range rooms {
			keys = append(keys, KeyOf(f, r))
		}
	}

	r := rand.New(rand.NewSource(1))
	a := slices.Clone(keys)
	b := slices.Clone(keys)
	r.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })

	slices.SortStableFunc(a, RankKey.Compare)
	slices.SortStableFunc(b, RankKey.Compare)
	if !slices.Equal(a, b) {
		t.Fatal("sorting the same keys from different orders gave different results")
	}
	for i := 1; i < len(a); i++ {
		if a[i-1].Compare(a[i]) > 0 {
			t.Fatalf("keys out of order at %d: %v > %v", i, a[i-1], a[i])
		}
	}
}
