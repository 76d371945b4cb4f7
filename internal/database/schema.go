package database

const schema = `
CREATE TABLE kv_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE INDEX idx_kv_updated_at ON kv_store(updated_at);
`

// migrations contains incremental schema changes applied in order based on
// the current user_version. migrations[0] is the base schema.
var migrations = []string{
	"",
}
