package playtime

import (
	"fmt"
	"sort"

	"github.com/blackwell-systems/steamstats/internal/steam"
)

// Row is a display-ready projection of a game for one platform.
type Row struct {
	Index    int // 1-based position within the limit-truncated list
	Name     string
	Playtime string
	AppID    int
}

// SortByPlatform orders games in place by descending playtime on p.
// Games with equal playtime keep their relative order.
func SortByPlatform(games []steam.Game, p Platform) {
	sort.SliceStable(games, func(i, j int) bool {
		return Select(games[i], p) > Select(games[j], p)
	})
}

// BuildRows projects games into table rows. The first limit games are taken
// when limit > 0, and only then is the threshold applied: a game is kept when
// its playtime is strictly greater than minMinutes. Index numbering follows
// the truncated list, so filtered games leave gaps.
func BuildRows(games []steam.Game, p Platform, minMinutes, limit int) []Row {
	if limit > 0 && limit < len(games) {
		games = games[:limit]
	}

	rows := make([]Row, 0, len(games))
	for i, g := range games {
		minutes := Select(g, p)
		if minutes <= minMinutes {
			continue
		}
		rows = append(rows, Row{
			Index:    i + 1,
			Name:     g.Name,
			Playtime: FormatMinutes(minutes, true),
			AppID:    g.AppID,
		})
	}

	return rows
}

// FormatMinutes renders minutes as hours with one decimal, e.g. "3.5h".
// The aligned form pads the number to 7 characters for table columns.
func FormatMinutes(minutes int, aligned bool) string {
	hours := float64(minutes) / 60
	if aligned {
		return fmt.Sprintf("%7.1fh", hours)
	}
	return fmt.Sprintf("%.1fh", hours)
}

// MinMinutesFromHours converts an hours threshold to whole minutes,
// truncating toward zero.
func MinMinutesFromHours(hours float64) int {
	return int(hours * 60)
}

// Find returns the game with the given app id.
func Find(games []steam.Game, appID int) (steam.Game, bool) {
	for _, g := range games {
		if g.AppID == appID {
			return g, true
		}
	}
	return steam.Game{}, false
}
