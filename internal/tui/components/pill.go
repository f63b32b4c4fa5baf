package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Andbal23/dynamic-music-pill/internal/core"
	"github.com/Andbal23/dynamic-music-pill/internal/tui/styles"
)

// Pill displays the active session and its current lyric line
type Pill struct {
	// MaxLyricWidth truncates lyric lines; 0 disables truncation.
	MaxLyricWidth int
	// Overflow is "ellipsis", "word" or "none".
	Overflow string
}

// NewPill creates a new Pill component
func NewPill(maxLyricWidth int, overflow string) *Pill {
	return &Pill{MaxLyricWidth: maxLyricWidth, Overflow: overflow}
}

// Render renders the pill panel
func (p *Pill) Render(active *core.Session, pos time.Duration, lyric string, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if active == nil {
		content = styles.Muted.Render("No player session")
	} else {
		content = p.renderSession(active, pos, lyric, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (p *Pill) renderSession(s *core.Session, pos time.Duration, lyric string, width int) string {
	icon := styles.StatusIcon(string(s.Status))

	trackTitle := s.Meta.Title
	if trackTitle == "" {
		trackTitle = "Unknown track"
	}
	titleLine := icon + " " + styles.Title.Render(trackTitle)

	artist := styles.Subtitle.Render(s.Meta.Artist())
	player := styles.Dim.Render(s.DisplayName())

	progress := p.renderProgress(s, pos, width)
	modes := p.renderModes(s)

	lines := []string{
		titleLine,
		"  " + artist,
		"  " + player,
		"",
		progress,
		modes,
	}
	if lyricLine := p.renderLyric(lyric); lyricLine != "" {
		lines = append(lines, "", lyricLine)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (p *Pill) renderProgress(s *core.Session, pos time.Duration, width int) string {
	current := formatDuration(pos)
	if s.Meta.Length <= 0 {
		return styles.Muted.Render(current)
	}

	barWidth := width - 14 // Account for times on either side
	if barWidth < 10 {
		barWidth = 10
	}
	percent := float64(pos) / float64(s.Meta.Length) * 100
	bar := styles.ProgressBar(percent, barWidth)
	total := formatDuration(s.Meta.Length)

	return fmt.Sprintf("%s %s %s", current, bar, total)
}

func (p *Pill) renderModes(s *core.Session) string {
	shuffle := styles.Dim.Render("⇄")
	if s.Shuffle {
		shuffle = styles.Playing.Render("⇄")
	}

	loop := styles.Dim.Render("∞")
	switch s.Loop {
	case core.LoopPlaylist:
		loop = styles.Playing.Render("∞")
	case core.LoopTrack:
		loop = styles.Playing.Render("∞¹")
	}

	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Render(shuffle + "  " + loop)
}

func (p *Pill) renderLyric(lyric string) string {
	if lyric == "" {
		return ""
	}
	switch {
	case p.MaxLyricWidth <= 0 || p.Overflow == "none":
	case p.Overflow == "word":
		lyric = wordwrap.String(lyric, p.MaxLyricWidth)
	default:
		lyric = truncate.StringWithTail(lyric, uint(p.MaxLyricWidth), "…")
	}
	return styles.Lyric.Render("♪ " + lyric)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
