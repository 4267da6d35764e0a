package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/aimreport/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status models.Status
		want   lipgloss.Color
		ok     bool
	}{
		{models.StatusComplete, "#C6EFCE", true},
		{models.StatusPending, "#FFF2CC", true},
		{models.StatusIncomplete, "#F8CBAD", true},
		{models.StatusNeedsReview, "#FFD966", true},
		{"Needs Review", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, ok := defaultTheme.StatusColor(tt.status)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAgeColor(t *testing.T) {
	t.Run("no fill", func(t *testing.T) {
		for _, age := range []*int{nil, models.IntPtr(0), models.IntPtr(-3)} {
			_, ok := defaultTheme.AgeColor(age)
			assert.False(t, ok)
		}
	})

	t.Run("gradient ends", func(t *testing.T) {
		first, ok := defaultTheme.AgeColor(models.IntPtr(1))
		require.True(t, ok)
		assert.True(t, strings.EqualFold("#C6EFCE", string(first)), "got %s", first)

		last, ok := defaultTheme.AgeColor(models.IntPtr(29))
		require.True(t, ok)
		assert.True(t, strings.EqualFold("#F4B084", string(last)), "got %s", last)
	})

	t.Run("between ends", func(t *testing.T) {
		mid, ok := defaultTheme.AgeColor(models.IntPtr(15))
		require.True(t, ok)
		assert.False(t, strings.EqualFold("#C6EFCE", string(mid)))
		assert.False(t, strings.EqualFold("#F4B084", string(mid)))
		assert.Len(t, string(mid), 7)
	})

	t.Run("overdue is fixed", func(t *testing.T) {
		for _, age := range []int{30, 31, 400} {
			c, ok := defaultTheme.AgeColor(models.IntPtr(age))
			require.True(t, ok)
			assert.Equal(t, lipgloss.Color("#F8696B"), c)
		}
	})
}
