package playtime

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/blackwell-systems/steamstats/internal/steam"
)

func gameWithTotal(id, minutes int) steam.Game {
	return steam.Game{AppID: id, Name: "game", PlaytimeForever: minutes}
}

// gameFromSeed spreads one generated number across every playtime field so
// each platform sees a different ordering.
func gameFromSeed(id, seed int) steam.Game {
	return steam.Game{
		AppID:           id,
		Name:            "generated",
		PlaytimeForever: seed,
		PlaytimeWindows: seed / 2,
		PlaytimeMac:     seed % 97,
		PlaytimeLinux:   (seed * 7) % 1000,
		PlaytimeDeck:    (seed * 13) % 331,
	}
}

func TestSelect(t *testing.T) {
	g := steam.Game{
		PlaytimeForever: 100,
		PlaytimeWindows: 40,
		PlaytimeMac:     30,
		PlaytimeLinux:   20,
		PlaytimeDeck:    10,
	}

	tests := []struct {
		platform Platform
		want     int
	}{
		{Windows, 40},
		{Mac, 30},
		{Linux, 20},
		{Deck, 10},
		{All, 100},
		{Platform("amiga"), 0},
		{Platform(""), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			if got := Select(g, tt.platform); got != tt.want {
				t.Errorf("Select(%q) = %d, want %d", tt.platform, got, tt.want)
			}
		})
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		in      string
		want    Platform
		wantErr bool
	}{
		{"windows", Windows, false},
		{"MAC", Mac, false},
		{" linux ", Linux, false},
		{"deck", Deck, false},
		{"all", All, false},
		{"switch", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePlatform(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlatform(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlatformLabel(t *testing.T) {
	for _, p := range Platforms() {
		if p.Label() == "" {
			t.Errorf("Label() for %q is empty", p)
		}
	}
	if got := Platform("bogus").Label(); got != All.Label() {
		t.Errorf("unknown platform label = %q, want the all-platforms label", got)
	}
}

func TestSortByPlatform_Descending(t *testing.T) {
	games := []steam.Game{
		{AppID: 1, PlaytimeLinux: 5},
		{AppID: 2, PlaytimeLinux: 50},
		{AppID: 3, PlaytimeLinux: 20},
	}

	SortByPlatform(games, Linux)

	var ids []int
	for _, g := range games {
		ids = append(ids, g.AppID)
	}
	if want := []int{2, 3, 1}; !reflect.DeepEqual(ids, want) {
		t.Errorf("sorted ids = %v, want %v", ids, want)
	}
}

func TestSortByPlatform_TiesKeepOriginalOrder(t *testing.T) {
	games := []steam.Game{
		gameWithTotal(1, 10),
		gameWithTotal(2, 30),
		gameWithTotal(3, 10),
		gameWithTotal(4, 30),
		gameWithTotal(5, 10),
	}

	SortByPlatform(games, All)

	var ids []int
	for _, g := range games {
		ids = append(ids, g.AppID)
	}
	if want := []int{2, 4, 1, 3, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("sorted ids = %v, want %v", ids, want)
	}
}

func TestSortByPlatform_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	seeds := gen.SliceOf(gen.IntRange(0, 100000))
	platformIdx := gen.IntRange(0, len(Platforms())-1)

	properties.Property("sorted playtime is non-increasing", prop.ForAll(
		func(values []int, idx int) bool {
			p := Platforms()[idx]
			games := make([]steam.Game, len(values))
			for i, v := range values {
				games[i] = gameFromSeed(i, v)
			}

			SortByPlatform(games, p)

			for i := 1; i < len(games); i++ {
				if Select(games[i-1], p) < Select(games[i], p) {
					return false
				}
			}
			return true
		},
		seeds, platformIdx,
	))

	properties.Property("sorting keeps every game", prop.ForAll(
		func(values []int, idx int) bool {
			games := make([]steam.Game, len(values))
			for i, v := range values {
				games[i] = gameFromSeed(i, v)
			}

			SortByPlatform(games, Platforms()[idx])

			seen := make(map[int]bool, len(games))
			for _, g := range games {
				seen[g.AppID] = true
			}
			return len(seen) == len(values)
		},
		seeds, platformIdx,
	))

	properties.TestingRun(t)
}

func TestBuildRows_StrictThreshold(t *testing.T) {
	games := []steam.Game{
		{AppID: 1, Name: "fifty", PlaytimeForever: 50},
		{AppID: 2, Name: "thirty", PlaytimeForever: 30},
		{AppID: 3, Name: "ten", PlaytimeForever: 10},
	}

	rows := BuildRows(games, All, 30, 0)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(rows), rows)
	}
	if rows[0].AppID != 1 || rows[0].Name != "fifty" || rows[0].Index != 1 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestBuildRows_TruncatesBeforeFiltering(t *testing.T) {
	games := []steam.Game{
		gameWithTotal(1, 100),
		gameWithTotal(2, 80),
		gameWithTotal(3, 5),
	}

	rows := BuildRows(games, All, 10, 2)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %+v", len(rows), rows)
	}

	rows = BuildRows([]steam.Game{gameWithTotal(1, 100), gameWithTotal(2, 5), gameWithTotal(3, 80)}, All, 10, 2)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d: %+v", len(rows), rows)
	}
	if rows[0].AppID != 1 {
		t.Errorf("expected only the 100-minute game, got %+v", rows[0])
	}
}

func TestBuildRows_IndexFollowsTruncatedList(t *testing.T) {
	games := []steam.Game{
		gameWithTotal(10, 300),
		gameWithTotal(20, 0),
		gameWithTotal(30, 120),
	}

	rows := BuildRows(games, All, 0, 0)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Index != 1 || rows[1].Index != 3 {
		t.Errorf("indices = %d, %d; want 1, 3", rows[0].Index, rows[1].Index)
	}
	if rows[0].Playtime != "    5.0h" {
		t.Errorf("Playtime = %q, want %q", rows[0].Playtime, "    5.0h")
	}
}

func TestBuildRows_LimitLargerThanList(t *testing.T) {
	games := []steam.Game{gameWithTotal(1, 10), gameWithTotal(2, 20)}

	if rows := BuildRows(games, All, 0, 10); len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
	if rows := BuildRows(nil, All, 0, 3); len(rows) != 0 {
		t.Errorf("expected no rows for empty library, got %d", len(rows))
	}
}

func TestBuildRows_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("rows never exceed the limit and all pass the threshold", prop.ForAll(
		func(values []int, minMinutes, limit int) bool {
			games := make([]steam.Game, len(values))
			for i, v := range values {
				games[i] = gameWithTotal(i, v)
			}

			rows := BuildRows(games, All, minMinutes, limit)
			if limit > 0 && len(rows) > limit {
				return false
			}
			for _, r := range rows {
				if games[r.Index-1].PlaytimeForever <= minMinutes {
					return false
				}
				if games[r.Index-1].AppID != r.AppID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5000)),
		gen.IntRange(0, 5000),
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		aligned bool
		want    string
	}{
		{90, false, "1.5h"},
		{0, false, "0.0h"},
		{210, false, "3.5h"},
		{59, false, "1.0h"},
		{90, true, "    1.5h"},
		{600000, true, "10000.0h"},
		{6000000, true, "100000.0h"},
	}

	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes, tt.aligned); got != tt.want {
			t.Errorf("FormatMinutes(%d, %v) = %q, want %q", tt.minutes, tt.aligned, got, tt.want)
		}
	}
}

func TestMinMinutesFromHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{0, 0},
		{1, 60},
		{1.5, 90},
		{0.01, 0},
		{2.99, 179},
	}

	for _, tt := range tests {
		if got := MinMinutesFromHours(tt.hours); got != tt.want {
			t.Errorf("MinMinutesFromHours(%v) = %d, want %d", tt.hours, got, tt.want)
		}
	}
}

func TestFind(t *testing.T) {
	games := []steam.Game{gameWithTotal(440, 1), gameWithTotal(620, 2)}

	g, ok := Find(games, 620)
	if !ok || g.PlaytimeForever != 2 {
		t.Errorf("Find(620) = %+v, %v", g, ok)
	}
	if _, ok := Find(games, 1); ok {
		t.Error("Find(1) should not match")
	}
}

func TestSummarize(t *testing.T) {
	games := []steam.Game{
		gameWithTotal(1, 0),
		gameWithTotal(2, 20),
		gameWithTotal(3, 40),
	}

	got := Summarize(games, All)
	if want := (Summary{Count: 2, TotalMinutes: 60}); got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if got := Summarize(games, Deck); got != (Summary{}) {
		t.Errorf("Summarize(deck) = %+v, want zero summary", got)
	}
	if got := Summarize(nil, All); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero summary", got)
	}
}

func TestBreakdown(t *testing.T) {
	g := steam.Game{
		PlaytimeForever: 200,
		PlaytimeWindows: 100,
		PlaytimeMac:     0,
		PlaytimeLinux:   100,
		PlaytimeDeck:    50,
	}

	shares := Breakdown(g)
	if len(shares) != 4 {
		t.Fatalf("expected 4 shares, got %d", len(shares))
	}

	want := []struct {
		platform Platform
		percent  float64
		leader   bool
	}{
		{Windows, 50, true},
		{Mac, 0, false},
		{Linux, 50, true},
		{Deck, 25, false},
	}
	for i, w := range want {
		s := shares[i]
		if s.Platform != w.platform {
			t.Errorf("shares[%d].Platform = %q, want %q", i, s.Platform, w.platform)
		}
		if !s.HasPercent || math.Abs(s.Percent-w.percent) > 1e-9 {
			t.Errorf("shares[%d].Percent = %v (has=%v), want %v", i, s.Percent, s.HasPercent, w.percent)
		}
		if s.Leader != w.leader {
			t.Errorf("shares[%d].Leader = %v, want %v", i, s.Leader, w.leader)
		}
	}
}

func TestBreakdown_NoPlaytime(t *testing.T) {
	for _, s := range Breakdown(steam.Game{}) {
		if s.HasPercent || s.Leader {
			t.Errorf("zero-playtime game should have no percentages or leader, got %+v", s)
		}
	}
}

func TestBreakdown_TotalBelowPlatformSum(t *testing.T) {
	// Upstream data is trusted; inconsistent totals must not panic.
	shares := Breakdown(steam.Game{PlaytimeForever: 10, PlaytimeWindows: 40})
	if shares[0].Percent != 400 {
		t.Errorf("Percent = %v, want 400", shares[0].Percent)
	}
}
