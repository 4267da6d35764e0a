package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/raphaelgruber/aimreport/internal/location"
	"github.com/raphaelgruber/aimreport/internal/metrics"
	"github.com/raphaelgruber/aimreport/internal/models"
)

const descriptionWidth = 48

var recordHeaders = []string{"Work Order", "Bldg", "Floor", "Room", "Age", "Status", "Description"}

const (
	colAge    = 4
	colStatus = 5
)

// renderRecords draws work orders as a table. With color on, status and age
// cells are filled from the theme.
func renderRecords(records []*models.WorkOrder, theme Theme, color bool) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		bldg := r.BuildingName
		if bldg == "" {
			bldg = r.BuildingCode
		}
		rows[i] = []string{r.ID, bldg, r.Floor, r.Room, formatAge(r.AgeDays), string(r.Status), truncate(r.Description, descriptionWidth)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(recordHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.headerStyle()
			}
			style := theme.cellStyle()
			if !color || row < 0 || row >= len(records) {
				return style
			}
			var fill lipgloss.Color
			var ok bool
			switch col {
			case colAge:
				fill, ok = theme.AgeColor(records[row].AgeDays)
			case colStatus:
				fill, ok = theme.StatusColor(records[row].Status)
			}
			if ok {
				style = style.Background(fill).Foreground(theme.CellText)
			}
			return style
		})

	return t.String()
}

// renderDashboard draws the overall summary and, when partitioned, one row per building.
func renderDashboard(d models.Dashboard, theme Theme) string {
	var b strings.Builder

	title := theme.completedStyle().Render("Work-order dashboard")
	fmt.Fprintf(&b, "%s  %s\n", title, theme.hintStyle().Render("as of "+d.AsOf))

	overall := d.Overall
	lines := []string{
		fmt.Sprintf("Total:          %d", overall.Total),
	}
	for _, s := range models.Statuses {
		lines = append(lines, fmt.Sprintf("%-15s %d", string(s)+":", overall.ByStatus[s]))
	}
	if overall.Unclassified > 0 {
		lines = append(lines, fmt.Sprintf("Unclassified:   %d", overall.Unclassified))
	}
	lines = append(lines,
		fmt.Sprintf("Mean age:       %s", formatMeanAge(overall.MeanAge)),
		fmt.Sprintf("Overdue (30+):  %d", overall.OverdueCount),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
	b.WriteString(box.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if len(d.Buildings) == 0 {
		return b.String()
	}

	headers := []string{"Building", "Total"}
	for _, s := range models.Statuses {
		headers = append(headers, string(s))
	}
	headers = append(headers, "Mean age", "Overdue")

	rows := make([][]string, 0, len(d.Buildings))
	for _, bs := range d.Buildings {
		row := []string{bs.Name, strconv.Itoa(bs.Summary.Total)}
		for _, s := range models.Statuses {
			row = append(row, strconv.Itoa(bs.Summary.ByStatus[s]))
		}
		row = append(row, formatMeanAge(bs.Summary.MeanAge), strconv.Itoa(bs.Summary.OverdueCount))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.headerStyle()
			}
			return theme.cellStyle()
		})
	b.WriteString(t.String())
	b.WriteString("\n")

	return b.String()
}

// renderBuildings lists the building directory.
func renderBuildings(buildings []location.Building, theme Theme) string {
	rows := make([][]string, len(buildings))
	for i, b := range buildings {
		rows[i] = []string{b.Code, b.Name, b.FullName, strings.Join(b.Aliases, ", ")}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Code", "Name", "Full name", "Aliases").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.headerStyle()
			}
			return theme.cellStyle()
		}).
		String()
}

// renderStages shows per-stage timings.
func renderStages(snap metrics.Snapshot, theme Theme) string {
	rows := make([][]string, len(snap.Stages))
	for i, s := range snap.Stages {
		rows[i] = []string{
			s.Stage,
			strconv.FormatInt(s.Items, 10),
			strconv.FormatInt(s.TotalTimeMs, 10),
			strconv.FormatFloat(s.AvgTimeMs, 'f', 1, 64),
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Hint)).
		Headers("Stage", "Records", "Total ms", "Avg ms").
		Rows(rows...).
		String()
}

func formatAge(age *int) string {
	if age == nil {
		return ""
	}
	return strconv.Itoa(*age)
}

func formatMeanAge(mean *float64) string {
	if mean == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*mean, 'f', 1, 64)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
