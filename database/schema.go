package database

const schema = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS sites (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	created_by TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (created_by) REFERENCES users(id)
);
CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	site_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	author_name TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL,
	rating TEXT NOT NULL DEFAULT 'neutral',
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (site_id) REFERENCES sites(id) ON DELETE CASCADE,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
-- Moderator action logging
CREATE TABLE IF NOT EXISTS mod_actions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME NOT NULL,
	moderator_id TEXT NOT NULL,
	action TEXT NOT NULL,
	target_id TEXT,
	details TEXT
);

-- --- INDEXES ---
CREATE INDEX IF NOT EXISTS idx_sites_status_created ON sites(status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_comments_site_status ON comments(site_id, status);
CREATE INDEX IF NOT EXISTS idx_comments_status_created ON comments(status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_mod_actions_time ON mod_actions(timestamp DESC);
`
