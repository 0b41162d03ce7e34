package store

const schema = `
CREATE TABLE IF NOT EXISTS fetches (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    fetched_at TIMESTAMP NOT NULL,
    game_count INTEGER NOT NULL,
    total_minutes INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS playtime_samples (
    fetch_id INTEGER NOT NULL,
    appid INTEGER NOT NULL,
    name TEXT NOT NULL,
    minutes_total INTEGER NOT NULL,
    minutes_windows INTEGER NOT NULL,
    minutes_mac INTEGER NOT NULL,
    minutes_linux INTEGER NOT NULL,
    minutes_deck INTEGER NOT NULL,
    last_played INTEGER NOT NULL,
    PRIMARY KEY (fetch_id, appid),
    FOREIGN KEY (fetch_id) REFERENCES fetches(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_samples_appid ON playtime_samples(appid);
CREATE INDEX IF NOT EXISTS idx_fetches_fetched_at ON fetches(fetched_at);
`
