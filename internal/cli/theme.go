package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/raphaelgruber/aimreport/internal/service"
)

// Theme holds the colors for terminal output.
type Theme struct {
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Hint       lipgloss.Color
	ProgressBg lipgloss.Color
	Border     lipgloss.Color
	CellText   lipgloss.Color

	// Inspection status fills.
	StatusFill map[models.Status]lipgloss.Color

	// Age fills: a gradient from AgeFresh (1 day) to AgeStale (29 days),
	// then AgeOverdue from 30 days on.
	AgeFresh   lipgloss.Color
	AgeStale   lipgloss.Color
	AgeOverdue lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:     lipgloss.Color("#5FAFD7"), // light blue
	Success:    lipgloss.Color("#00D787"), // green
	Error:      lipgloss.Color("#FF005F"), // red
	Hint:       lipgloss.Color("#6C6C6C"), // dim gray
	ProgressBg: lipgloss.Color("#3A3A3A"), // dark gray
	Border:     lipgloss.Color("#6C6C6C"),
	CellText:   lipgloss.Color("#000000"),

	StatusFill: map[models.Status]lipgloss.Color{
		models.StatusComplete:    lipgloss.Color("#C6EFCE"),
		models.StatusPending:     lipgloss.Color("#FFF2CC"),
		models.StatusIncomplete:  lipgloss.Color("#F8CBAD"),
		models.StatusNeedsReview: lipgloss.Color("#FFD966"),
	},

	AgeFresh:   lipgloss.Color("#C6EFCE"),
	AgeStale:   lipgloss.Color("#F4B084"),
	AgeOverdue: lipgloss.Color("#F8696B"),
}

const (
	gradientFirstDay = 1
	gradientLastDay  = service.OverdueDays - 1
)

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Padding(0, 1)
}

func (t Theme) cellStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 1)
}

// StatusColor returns the fill for a status. Unknown statuses have none.
func (t Theme) StatusColor(s models.Status) (lipgloss.Color, bool) {
	c, ok := t.StatusFill[s]
	return c, ok
}

// AgeColor returns the fill for an age in business days. Ages below one day, and
// missing ages, have none.
func (t Theme) AgeColor(age *int) (lipgloss.Color, bool) {
	if age == nil || *age < gradientFirstDay {
		return "", false
	}
	if *age > gradientLastDay {
		return t.AgeOverdue, true
	}

	from, err := colorful.Hex(string(t.AgeFresh))
	if err != nil {
		return "", false
	}
	to, err := colorful.Hex(string(t.AgeStale))
	if err != nil {
		return "", false
	}
	pos := float64(*age-gradientFirstDay) / float64(gradientLastDay-gradientFirstDay)
	return lipgloss.Color(from.BlendRgb(to, pos).Clamped().Hex()), true
}
