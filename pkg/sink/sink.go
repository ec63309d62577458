// Package sink persists serialized backup artifacts and reports to object
// storage. Keys follow the fixed schema
// <category>/<environment>/<YYYYMMDD-HHMMSS>/<artifact-name>; downstream
// report-retrieval tooling depends on that exact layout.
package sink

import (
	"context"
	"fmt"
	"time"
)

// Artifact categories used as key prefixes.
const (
	CategoryClusterBackups = "k8s-backups"
	CategoryAppBackups     = "app-backups"
	CategoryReports        = "backup-reports"
)

// TimestampLayout is the UTC timestamp segment of every sink key.
const TimestampLayout = "20060102-150405"

// ContentTypeJSON is the content type for JSON artifacts.
const ContentTypeJSON = "application/json"

// Sink is the persistence target for serialized reports and backup
// artifacts.
type Sink interface {
	// Write stores payload under key with the given content type.
	Write(ctx context.Context, key string, payload []byte, contentType string) error
	// Location returns the externally meaningful address of a key,
	// e.g. "s3://bucket/key" or an absolute file path.
	Location(key string) string
}

// Key builds a sink key from the fixed schema parts. The timestamp is always
// rendered in UTC.
func Key(category, environment string, ts time.Time, artifact string) string {
	return fmt.Sprintf("%s/%s/%s/%s", category, environment, ts.UTC().Format(TimestampLayout), artifact)
}
