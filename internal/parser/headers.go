package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/raphaelgruber/aimreport/internal/models"
)

var nonPrintable = regexp.MustCompile(`[^\x20-\x7E]`)

// cleanHeaders strips control characters, BOM remnants and surrounding space from
// header names. Duplicate names get a " (n)" suffix so every column stays addressable.
func cleanHeaders(raw []string) []string {
	seen := make(map[string]int, len(raw))
	out := make([]string, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(nonPrintable.ReplaceAllString(h, ""))
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		seen[strings.ToLower(h)]++
		if n := seen[strings.ToLower(h)]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		out[i] = h
	}
	return out
}

// columnRule describes how to find one input column. Exact names are tried across
// all headers before any substring match.
type columnRule struct {
	exact    []string
	contains []string
}

var (
	descriptionRule = columnRule{
		exact:    []string{"description", "desc", "work description"},
		contains: []string{"description", "desc"},
	}
	idRule = columnRule{
		exact:    []string{"work order", "work order number", "work order #", "wo", "wo number", "wo #", "workorder"},
		contains: []string{"work order", "workorder", "wo number", "wo #"},
	}
	statusRule = columnRule{
		exact:    []string{"inspection status", "inspection"},
		contains: []string{"inspection status"},
	}
	createdRule = columnRule{
		exact:    []string{"date created", "created date", "created", "created on", "creation date"},
		contains: []string{"date created", "created date", "created on", "creation date"},
	}
	editedRule = columnRule{
		exact:    []string{"edit date", "last updated", "modified", "date modified"},
		contains: []string{"edit date", "last updated", "modified"},
	}
	buildingRule = columnRule{
		exact:    []string{"building", "bldg", "building code", "building number", "property", "facility"},
		contains: []string{"building", "bldg", "property", "facility"},
	}
)

// normalizeHeader lower-cases a header and folds underscores to spaces.
func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(h), "_", " ")), " ")
}

// resolver hands out each header at most once.
type resolver struct {
	headers []string
	norm    []string
	used    map[int]bool
}

func newResolver(headers []string) *resolver {
	norm := make([]string, len(headers))
	for i, h := range headers {
		norm[i] = normalizeHeader(h)
	}
	return &resolver{headers: headers, norm: norm, used: make(map[int]bool)}
}

func (r *resolver) find(rule columnRule) string {
	for _, name := range rule.exact {
		for i, h := range r.norm {
			if !r.used[i] && h == name {
				r.used[i] = true
				return r.headers[i]
			}
		}
	}
	for _, sub := range rule.contains {
		for i, h := range r.norm {
			if !r.used[i] && strings.Contains(h, sub) {
				r.used[i] = true
				return r.headers[i]
			}
		}
	}
	return ""
}

// resolveSchema maps the pipeline inputs onto source headers once per file.
func resolveSchema(headers []string) models.Schema {
	r := newResolver(headers)
	s := models.Schema{
		Description: r.find(descriptionRule),
		ID:          r.find(idRule),
		Status:      r.find(statusRule),
		Created:     r.find(createdRule),
	}
	if s.Created == "" {
		s.Created = r.find(editedRule)
	}
	s.Building = r.find(buildingRule)
	return s
}
