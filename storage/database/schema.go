package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// schema holds the full DDL. Statements are idempotent so Migrate can
// run on every deploy.
const schema = `
CREATE TABLE IF NOT EXISTS post (
	id           UUID PRIMARY KEY,
	content      TEXT        NOT NULL,
	type         VARCHAR(16) NOT NULL,
	start_at     TIMESTAMPTZ NOT NULL,
	end_at       TIMESTAMPTZ NOT NULL,
	author_id    VARCHAR(64) NOT NULL DEFAULT '',
	author_name  VARCHAR(128) NOT NULL DEFAULT '',
	author_email VARCHAR(254) NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS post_created_at_idx ON post (created_at DESC);
CREATE INDEX IF NOT EXISTS post_window_idx ON post (start_at, end_at);

CREATE TABLE IF NOT EXISTS student (
	id               UUID PRIMARY KEY,
	first_name       VARCHAR(128) NOT NULL,
	last_name        VARCHAR(128) NOT NULL,
	note             TEXT         NOT NULL DEFAULT '',
	gender           VARCHAR(1)   NOT NULL DEFAULT '',
	birth_date       TIMESTAMPTZ  NOT NULL DEFAULT 'epoch',
	birth_place      VARCHAR(128) NOT NULL DEFAULT '',
	arrival_date     TIMESTAMPTZ  NOT NULL DEFAULT 'epoch',
	departure_date   TIMESTAMPTZ  NOT NULL DEFAULT 'epoch',
	is_au_pair       BOOLEAN,
	left_early       BOOLEAN      NOT NULL DEFAULT FALSE,
	pre_registration BOOLEAN      NOT NULL DEFAULT FALSE,
	paid_150         BOOLEAN      NOT NULL DEFAULT FALSE,
	paid_total       BOOLEAN      NOT NULL DEFAULT FALSE,
	dossier_number   VARCHAR(64)  NOT NULL DEFAULT '',
	season_id        VARCHAR(64)  NOT NULL DEFAULT '',
	class_s1         VARCHAR(32)  NOT NULL DEFAULT '',
	class_s2         VARCHAR(32)  NOT NULL DEFAULT '',
	family_name1     VARCHAR(128) NOT NULL DEFAULT '',
	family_name2     VARCHAR(128) NOT NULL DEFAULT '',
	family_email     VARCHAR(254) NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ  NOT NULL,
	updated_at       TIMESTAMPTZ  NOT NULL
);
CREATE INDEX IF NOT EXISTS student_season_idx ON student (season_id);
CREATE INDEX IF NOT EXISTS student_name_idx ON student (last_name, first_name);

CREATE TABLE IF NOT EXISTS app_user (
	id            UUID PRIMARY KEY,
	name          VARCHAR(128) NOT NULL DEFAULT '',
	username      VARCHAR(64)  NOT NULL DEFAULT '',
	email         VARCHAR(254) NOT NULL DEFAULT '',
	is_active     BOOLEAN      NOT NULL DEFAULT TRUE,
	roles         TEXT         NOT NULL DEFAULT '',
	password_hash BYTEA        NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ  NOT NULL,
	updated_at    TIMESTAMPTZ  NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS app_user_username_idx ON app_user (username) WHERE username <> '';
CREATE UNIQUE INDEX IF NOT EXISTS app_user_email_idx ON app_user (email) WHERE email <> '';
`

// Migrate brings the schema up to date.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "migrating schema")
	}
	return nil
}
