package store

import "time"

// Fetch is one successful library download.
type Fetch struct {
	ID           int64
	FetchedAt    time.Time
	GameCount    int
	TotalMinutes int
}

// Sample is a game's playtime as recorded by one fetch.
type Sample struct {
	FetchID    int64
	FetchedAt  time.Time
	AppID      int
	Name       string
	Total      int
	Windows    int
	Mac        int
	Linux      int
	Deck       int
	LastPlayed int64
}
