package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS missions (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL CHECK(length(trim(title)) > 0),
	description  TEXT NOT NULL DEFAULT '',
	priority     TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
	status       TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'completed', 'overdue')),
	created_at   DATETIME NOT NULL,
	target_at    DATETIME,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_missions_status ON missions(status);
CREATE INDEX IF NOT EXISTS idx_missions_created_at ON missions(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
