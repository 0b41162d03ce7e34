// Package steam talks to the Steam Web API and defines the owned-game record
// shared by the cache, the query engine and the renderers.
package steam

import "encoding/json"

// Defaults applied to fields missing from an API or cache record.
const (
	DefaultGameName = "some game"
	DefaultIconHash = "some icon"
)

// Game is one title from a user's owned-game library. Playtime fields are in
// minutes. LastPlayed is a Unix timestamp in seconds; 0 means never recorded.
//
// PlaytimeForever is expected to be at least the largest per-platform value
// but the API is trusted and nothing here enforces it.
type Game struct {
	AppID                int    `json:"appid" yaml:"appid"`
	Name                 string `json:"name" yaml:"name"`
	IconHash             string `json:"img_icon_url" yaml:"img_icon_url"`
	PlaytimeDeck         int    `json:"playtime_deck_forever" yaml:"playtime_deck_forever"`
	PlaytimeDisconnected int    `json:"playtime_disconnected" yaml:"playtime_disconnected"`
	PlaytimeForever      int    `json:"playtime_forever" yaml:"playtime_forever"`
	PlaytimeLinux        int    `json:"playtime_linux_forever" yaml:"playtime_linux_forever"`
	PlaytimeMac          int    `json:"playtime_mac_forever" yaml:"playtime_mac_forever"`
	PlaytimeWindows      int    `json:"playtime_windows_forever" yaml:"playtime_windows_forever"`
	LastPlayed           int64  `json:"rtime_last_played" yaml:"rtime_last_played"`
}

// UnmarshalJSON decodes a game record, filling in defaults for any field the
// payload leaves out. Numeric fields default to their zero value.
func (g *Game) UnmarshalJSON(data []byte) error {
	type rawGame Game
	raw := rawGame{
		Name:     DefaultGameName,
		IconHash: DefaultIconHash,
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = Game(raw)
	return nil
}

// ownedGamesResponse is the envelope returned by IPlayerService/GetOwnedGames.
type ownedGamesResponse struct {
	Response struct {
		GameCount int     `json:"game_count"`
		Games     *[]Game `json:"games"`
	} `json:"response"`
}
