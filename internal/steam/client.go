package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

// OwnedGamesURL is the GetOwnedGames endpoint of the Steam Web API.
const OwnedGamesURL = "https://api.steampowered.com/IPlayerService/GetOwnedGames/v0001/"

// ErrNoGames is returned when the API answers successfully but without a
// games list, which is what Steam does for profiles with private game details.
var ErrNoGames = errors.New("steam returned no games (is your profile's game details visibility set to public?)")

// Client fetches a user's owned games.
type Client struct {
	// BaseURL is the GetOwnedGames endpoint. Tests point it at an httptest server.
	BaseURL string
	// HTTPClient is used for the request. No timeout is configured.
	HTTPClient *http.Client
}

// NewClient creates a Client for the public Steam Web API.
func NewClient() *Client {
	return &Client{
		BaseURL:    OwnedGamesURL,
		HTTPClient: &http.Client{},
	}
}

// FetchOwnedGames requests the owned-game library of steamID, including free
// titles with recorded playtime and display metadata. Any transport, status
// or decoding failure is returned as an error; nothing is retried.
func (c *Client) FetchOwnedGames(ctx context.Context, apiKey string, steamID uint64) ([]Game, error) {
	endpoint, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid steam api url %q: %w", c.BaseURL, err)
	}

	q := endpoint.Query()
	q.Set("key", apiKey)
	q.Set("steamid", strconv.FormatUint(steamID, 10))
	q.Set("include_played_free_games", "true")
	q.Set("include_appinfo", "true")
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build steam request: %w", err)
	}

	slog.Debug("fetching owned games", slog.String("endpoint", c.BaseURL), slog.Uint64("steamid", steamID))

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		// The url in *url.Error carries the api key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("could not fetch your Steam games, check your network connection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("could not fetch your Steam games, check your API key and Steam ID: unexpected status %s", resp.Status)
	}

	var body ownedGamesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("could not decode Steam response: %w", err)
	}

	if body.Response.Games == nil {
		return nil, ErrNoGames
	}

	games := *body.Response.Games
	slog.Debug("fetched owned games", slog.Int("count", len(games)), slog.Int("game_count", body.Response.GameCount))

	return games, nil
}
