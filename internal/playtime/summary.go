package playtime

import "github.com/blackwell-systems/steamstats/internal/steam"

// Summary is the aggregate shown in the platform banner.
type Summary struct {
	Count        int
	TotalMinutes int
}

// Summarize counts the games played on p and sums their minutes.
func Summarize(games []steam.Game, p Platform) Summary {
	var s Summary
	for _, g := range games {
		if minutes := Select(g, p); minutes > 0 {
			s.Count++
			s.TotalMinutes += minutes
		}
	}
	return s
}

// Share is one platform's slice of a game's total playtime.
type Share struct {
	Platform Platform
	Minutes  int
	// Percent of the game's total. Only meaningful when HasPercent is set,
	// which requires a non-zero total.
	Percent    float64
	HasPercent bool
	// Leader marks the platform(s) with the most non-zero minutes.
	Leader bool
}

// Breakdown splits a game's playtime across the four concrete platforms.
func Breakdown(g steam.Game) []Share {
	platforms := []Platform{Windows, Mac, Linux, Deck}
	shares := make([]Share, 0, len(platforms))

	most := 0
	for _, p := range platforms {
		if m := Select(g, p); m > most {
			most = m
		}
	}

	total := g.PlaytimeForever
	for _, p := range platforms {
		minutes := Select(g, p)
		s := Share{Platform: p, Minutes: minutes}
		if total > 0 {
			s.Percent = float64(minutes) / float64(total) * 100
			s.HasPercent = true
			s.Leader = minutes > 0 && minutes == most
		}
		shares = append(shares, s)
	}

	return shares
}
