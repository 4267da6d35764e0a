package location

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raphaelgruber/aimreport/internal/models"
)

// Building is one entry of the building table.
type Building struct {
	Code     string   `yaml:"code" json:"code"`
	Name     string   `yaml:"name" json:"name"`
	FullName string   `yaml:"full_name" json:"full_name"`
	Aliases  []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// DefaultBuildings is the built-in building table.
func DefaultBuildings() []Building {
	return []Building{
		{Code: "0548", Name: "ETB", FullName: "Emerging Technologies Building", Aliases: []string{"E.T.B"}},
		{Code: "0485", Name: "WEB", FullName: "Wisenbaker Engineering Building", Aliases: []string{"W.E.B"}},
		{Code: "0468", Name: "HEB", FullName: "Haynes Engineering Building", Aliases: []string{"H.E.B"}},
	}
}

// Directory resolves building codes, short names and full names.
type Directory struct {
	buildings []Building
	byCode    map[string]Building
	byAlias   map[string]Building
}

// NewDirectory indexes a building table. Codes are canonicalized on the way in.
func NewDirectory(buildings []Building) *Directory {
	d := &Directory{
		byCode:  make(map[string]Building, len(buildings)),
		byAlias: make(map[string]Building),
	}
	for _, b := range buildings {
		if code, ok := CanonicalCode(b.Code); ok {
			b.Code = code
		}
		d.buildings = append(d.buildings, b)
		d.byCode[b.Code] = b
		for _, alias := range append([]string{b.Name, b.FullName}, b.Aliases...) {
			if key := aliasKey(alias); key != "" {
				d.byAlias[key] = b
			}
		}
	}
	return d
}

// Buildings returns the table in configured order.
func (d *Directory) Buildings() []Building {
	return d.buildings
}

// Resolve identifies the building of a record. A supplied building value is
// canonicalized and looked up; without one, the description is searched for a
// building full name. Both results are empty when nothing matches. The error is
// non-nil only when a supplied value cannot be interpreted at all.
func (d *Directory) Resolve(raw, description string) (code, name string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		b, ok := d.detect(description)
		if !ok {
			return "", "", nil
		}
		return b.Code, b.Name, nil
	}

	if c, ok := CanonicalCode(raw); ok {
		return c, d.byCode[c].Name, nil
	}
	if b, ok := d.byAlias[aliasKey(raw)]; ok {
		return b.Code, b.Name, nil
	}
	return "", "", &models.UnparseableError{Field: "building", Value: raw}
}

// detect returns the building whose full name occurs earliest in the text.
func (d *Directory) detect(description string) (Building, bool) {
	text := strings.ToLower(description)
	best, bestAt := Building{}, -1
	for _, b := range d.buildings {
		if b.FullName == "" {
			continue
		}
		at := strings.Index(text, strings.ToLower(b.FullName))
		if at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = b, at
		}
	}
	return best, bestAt >= 0
}

// CanonicalCode turns a numeric building code such as "548", "0548" or "Bldg #548"
// into its zero-padded four-digit form.
func CanonicalCode(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for _, prefix := range []string{"BUILDING", "BLDG"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(s), "#.:"))
	if !allDigits(s) {
		return "", false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%04d", n), true
}

func aliasKey(s string) string {
	s = strings.ToUpper(s)
	return strings.NewReplacer(".", "", " ", "", "-", "").Replace(s)
}
