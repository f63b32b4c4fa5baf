package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
	"github.com/Andbal23/dynamic-music-pill/internal/tui/styles"
)

// Sessions displays every tracked player session
type Sessions struct {
	cursor int
}

// NewSessions creates a new Sessions component
func NewSessions() *Sessions {
	return &Sessions{}
}

// SelectNext moves the cursor down
func (v *Sessions) SelectNext(count int) {
	if v.cursor < count-1 {
		v.cursor++
	}
}

// SelectPrev moves the cursor up
func (v *Sessions) SelectPrev() {
	if v.cursor > 0 {
		v.cursor--
	}
}

// Selected returns the cursor index, clamped to the list
func (v *Sessions) Selected(count int) int {
	if count == 0 {
		return -1
	}
	if v.cursor >= count {
		v.cursor = count - 1
	}
	return v.cursor
}

// Render renders the sessions panel
func (v *Sessions) Render(sessions []core.Session, activeBus, pinnedBus string, width, height int, focused bool) string {
	title := styles.PanelTitle("Players", focused)

	var rows []string
	if len(sessions) == 0 {
		rows = append(rows, styles.Muted.Render("No players on the bus"))
	}
	for i, s := range sessions {
		prefix := "  "
		if s.BusName == activeBus {
			prefix = styles.Title.Render("●") + " "
		}
		if focused && i == v.Selected(len(sessions)) {
			prefix = styles.Highlight.Render(">") + " "
		}

		line := styles.StatusIcon(string(s.Status)) + " " + s.DisplayName()
		if s.Meta.HasTitle() {
			line += styles.Subtitle.Render("  " + s.Meta.Title)
		}
		if s.BusName == pinnedBus {
			line += styles.Highlight.Render(" ★")
		}
		rows = append(rows, prefix+line)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, rows...)...,
	))
}
