package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/blackwell-systems/steamstats/internal/playtime"
	"github.com/blackwell-systems/steamstats/internal/steam"
	"github.com/blackwell-systems/steamstats/internal/store"
)

const dateLayout = "2006-01-02 15:04"

type platformStyle struct {
	emoji string
	name  string
	color lipgloss.Color
}

var panelPlatforms = map[playtime.Platform]platformStyle{
	playtime.Windows: {"💻", "Windows", colorBlue},
	playtime.Mac:     {"🍏", "Mac", colorGreen},
	playtime.Linux:   {"🐧", "Linux", colorYellow},
	playtime.Deck:    {"🎮", "Steam Deck", colorMagenta},
}

// RenderPlatformStats renders the one-line banner: platform label, number of
// games played on it and total hours.
func RenderPlatformStats(th *Theme, p playtime.Platform, s playtime.Summary) string {
	return fmt.Sprintf("%s  %s  %s\n",
		th.bold(colorBlue).Render(p.Label()),
		th.bold(colorCyan).Render(fmt.Sprintf("🎮 %d", s.Count)),
		th.bold(colorYellow).Render("🕒 "+playtime.FormatMinutes(s.TotalMinutes, false)),
	)
}

// newTable returns a bordered table with the shared header style. The
// header is styled as row 0; data rows start at 1. Columns
// listed in right are right-aligned; cell styles come from cell.
func newTable(th *Theme, headers []string, right map[int]bool, cell func(col int) lipgloss.Style) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(th.style()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			if row == 0 {
				s = th.bold(colorMagenta)
			} else {
				s = cell(col)
			}
			s = s.Padding(0, 1)
			if right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
}

// RenderGamesTable renders the ranked games as a bordered table with the
// columns #, GAME and PLAYTIME.
func RenderGamesTable(th *Theme, rows []playtime.Row) string {
	if len(rows) == 0 {
		return "No games match the current filters.\n"
	}

	t := newTable(th, []string{"#", "GAME", "PLAYTIME"}, map[int]bool{0: true, 2: true}, func(col int) lipgloss.Style {
		switch col {
		case 0:
			return th.fg(colorCyan).Faint(true)
		case 1:
			return th.fg(colorGreen)
		default:
			return th.fg(colorYellow)
		}
	})

	for _, r := range rows {
		t.Row(strconv.Itoa(r.Index), r.Name, r.Playtime)
	}

	return t.String() + "\n"
}

// RenderFzfTable renders rows without borders or header, one game per line,
// with the app id as the last field so a picker can extract it.
func RenderFzfTable(th *Theme, rows []playtime.Row) string {
	cells := make([][4]string, len(rows))
	var widths [4]int
	for i, r := range rows {
		cells[i] = [4]string{strconv.Itoa(r.Index), r.Name, r.Playtime, strconv.Itoa(r.AppID)}
		for c, v := range cells[i] {
			if w := lipgloss.Width(v); w > widths[c] {
				widths[c] = w
			}
		}
	}

	styles := [4]lipgloss.Style{
		th.fg(colorCyan).Faint(true),
		th.fg(colorGreen),
		th.fg(colorYellow),
		th.dim(),
	}

	var sb strings.Builder
	for _, row := range cells {
		fields := make([]string, len(row))
		for c, v := range row {
			pad := strings.Repeat(" ", widths[c]-lipgloss.Width(v))
			if c == 1 {
				fields[c] = styles[c].Render(v) + pad
			} else {
				fields[c] = pad + styles[c].Render(v)
			}
		}
		sb.WriteString(strings.Join(fields, "  "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderGamePanel renders the detail panel for one game: per-platform hours
// with their share of the total, the total itself and when it was last
// played relative to now.
func RenderGamePanel(th *Theme, g steam.Game, now time.Time) string {
	var lines []string

	for _, share := range playtime.Breakdown(g) {
		ps := panelPlatforms[share.Platform]
		text := fmt.Sprintf("%s %s: %s", ps.emoji, ps.name, playtime.FormatMinutes(share.Minutes, false))
		if share.HasPercent {
			text += fmt.Sprintf(" (%.1f%%)", share.Percent)
		}

		style := th.fg(ps.color)
		if share.Leader {
			text += " 🏆"
			style = style.Bold(true)
		}
		lines = append(lines, style.Render(text))
	}

	lines = append(lines, "", th.style().Bold(true).Render("🌐 Total: "+playtime.FormatMinutes(g.PlaytimeForever, false)))

	if g.LastPlayed > 0 {
		played := time.Unix(g.LastPlayed, 0)
		lines = append(lines,
			"",
			th.dim().Render("Last played: "+played.Local().Format(dateLayout)),
			th.dim().Render("  ("+humanize.RelTime(played, now, "ago", "from now")+")"),
		)
	}

	box := th.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		th.bold(colorBlue).Render(g.Name),
		box,
		th.dim().Render(fmt.Sprintf("AppID: %d", g.AppID)),
	) + "\n"
}

// RenderGameNotFound renders the message shown when an app id is not in the
// library.
func RenderGameNotFound(th *Theme, appID int) string {
	return th.fg(colorRed).Render(fmt.Sprintf("Game not found (AppID %d)", appID)) + "\n"
}

// RenderFetchHistory renders recorded fetches, newest first as given.
func RenderFetchHistory(th *Theme, fetches []*store.Fetch, now time.Time) string {
	if len(fetches) == 0 {
		return "No fetches recorded yet. Run steamstats to record one.\n"
	}

	t := newTable(th, []string{"#", "FETCHED", "AGE", "GAMES", "TOTAL"}, map[int]bool{0: true, 3: true, 4: true}, func(col int) lipgloss.Style {
		switch col {
		case 0, 2:
			return th.dim()
		case 3:
			return th.fg(colorCyan)
		case 4:
			return th.fg(colorYellow)
		default:
			return th.style()
		}
	})

	for _, f := range fetches {
		t.Row(
			strconv.FormatInt(f.ID, 10),
			f.FetchedAt.Local().Format(dateLayout),
			humanize.RelTime(f.FetchedAt, now, "ago", "from now"),
			humanize.Comma(int64(f.GameCount)),
			playtime.FormatMinutes(f.TotalMinutes, false),
		)
	}

	return t.String() + "\n"
}

// RenderGameHistory renders one game's samples, newest first, with the change
// in total playtime since the previous sample.
func RenderGameHistory(th *Theme, samples []*store.Sample) string {
	if len(samples) == 0 {
		return "No history recorded for this game.\n"
	}

	t := newTable(th, []string{"FETCHED", "TOTAL", "CHANGE", "WINDOWS", "MAC", "LINUX", "DECK"},
		map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true},
		func(col int) lipgloss.Style {
			switch col {
			case 0:
				return th.dim()
			case 1:
				return th.fg(colorYellow)
			case 2:
				return th.fg(colorGreen)
			default:
				return th.style()
			}
		})

	for i, s := range samples {
		change := "-"
		if i+1 < len(samples) {
			change = formatDelta(s.Total - samples[i+1].Total)
		}
		t.Row(
			s.FetchedAt.Local().Format(dateLayout),
			playtime.FormatMinutes(s.Total, false),
			change,
			playtime.FormatMinutes(s.Windows, false),
			playtime.FormatMinutes(s.Mac, false),
			playtime.FormatMinutes(s.Linux, false),
			playtime.FormatMinutes(s.Deck, false),
		)
	}

	title := th.bold(colorBlue).Render(fmt.Sprintf("%s (AppID %d)", samples[0].Name, samples[0].AppID))
	return title + "\n" + t.String() + "\n"
}

func formatDelta(minutes int) string {
	if minutes > 0 {
		return "+" + playtime.FormatMinutes(minutes, false)
	}
	return playtime.FormatMinutes(minutes, false)
}
