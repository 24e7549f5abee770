package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/skateday/internal/constants"
)

// IsPostgres reports whether dsn is a PostgreSQL URL
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// DetectKind classifies a storage DSN for the status probe. Anything that
// looks like a URL to another database is reported as remote_other.
func DetectKind(dsn string) constants.StorageKind {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case IsPostgres(lower):
		return constants.StoragePostgres
	case strings.HasPrefix(lower, "mysql://"):
		return constants.StorageMySQL
	case strings.HasPrefix(lower, "file:"), lower == "", !strings.Contains(lower, "://"):
		if strings.EqualFold(filepath.Ext(lower), ".json") {
			return constants.StorageJSON
		}
		return constants.StorageSQLite
	default:
		return constants.StorageRemoteOther
	}
}

// RedactDSN hides the user info of a URL-style DSN so it can be logged
func RedactDSN(dsn string) string {
	i := strings.Index(dsn, "://")
	if i < 0 {
		return dsn
	}
	rest := dsn[i+3:]
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return dsn
	}
	return dsn[:i+3] + "***@" + rest[at+1:]
}
