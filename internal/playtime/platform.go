// Package playtime selects, sorts, filters and summarises per-platform
// playtime for an owned-game library.
package playtime

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/steamstats/internal/steam"
)

// Platform selects which playtime field of a game is read.
type Platform string

const (
	Windows Platform = "windows"
	Mac     Platform = "mac"
	Linux   Platform = "linux"
	Deck    Platform = "deck"
	All     Platform = "all"
)

// Platforms lists the recognised platforms in display order.
func Platforms() []Platform {
	return []Platform{Windows, Mac, Linux, Deck, All}
}

// ParsePlatform validates a platform name from the command line.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid platform %q (must be one of: windows, mac, linux, deck, all)", s)
}

// Label returns the banner name for the platform.
func (p Platform) Label() string {
	switch p {
	case Windows:
		return "💻 Windows"
	case Mac:
		return "🍏 MacOS"
	case Linux:
		return "🐧 Linux"
	case Deck:
		return "🎮 Steam Deck"
	default:
		return "🌐 All Platforms"
	}
}

// Select returns the game's minutes on platform p. Unknown platforms yield 0.
func Select(g steam.Game, p Platform) int {
	switch p {
	case Windows:
		return g.PlaytimeWindows
	case Mac:
		return g.PlaytimeMac
	case Linux:
		return g.PlaytimeLinux
	case Deck:
		return g.PlaytimeDeck
	case All:
		return g.PlaytimeForever
	default:
		return 0
	}
}
