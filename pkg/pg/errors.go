package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEmptyConnectionString    = errors.New("pg.errors.empty_connection_string")
	ErrFailedToParseDBConfig    = errors.New("pg.errors.failed_to_parse_db_config")
	ErrFailedToOpenDBConnection = errors.New("pg.errors.failed_to_open_db_connection")
	ErrHealthcheckFailed        = errors.New("pg.errors.healthcheck_failed")
	ErrFailedToApplyMigrations  = errors.New("pg.errors.failed_to_apply_migrations")
	ErrMigrationsDirNotFound    = errors.New("pg.errors.migrations_dir_not_found")
	ErrMigrationPathNotProvided = errors.New("pg.errors.migration_path_not_provided")
)

// IsNotFound reports whether err means the query matched no rows.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, pgx.ErrNoRows)
}

// IsDuplicateKey reports a unique constraint violation (SQLSTATE 23505),
// e.g. two organizations claiming the same slug.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports a referential integrity violation
// (SQLSTATE 23503), e.g. an appointment referencing a deleted patient.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
