package cloud

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// maxRecentSnapshots caps how many recent automated snapshots are counted
// per instance; anything beyond that adds no signal.
const maxRecentSnapshots = 5

// DBInstance is one managed database instance in the snapshot inventory.
type DBInstance struct {
	ID            string
	RetentionDays int
}

// SnapshotInventory lists managed database instances and their automated
// snapshots.
type SnapshotInventory interface {
	// ListInstances returns the managed instances belonging to an
	// environment.
	ListInstances(ctx context.Context, environment string) ([]DBInstance, error)
	// CountRecentSnapshots returns how many recent automated snapshots an
	// instance has, capped at a small fixed number.
	CountRecentSnapshots(ctx context.Context, instanceID string) (int, error)
}

// SQLInventory reads the snapshot inventory from a backup-metadata database.
// The *sql.DB handle is injected so tests can substitute a mock.
type SQLInventory struct {
	db *sql.DB
}

// NewSQLInventory creates an inventory backed by the given database handle.
func NewSQLInventory(db *sql.DB) *SQLInventory {
	return &SQLInventory{db: db}
}

// OpenSQLInventory opens a MySQL connection for the given DSN and wraps it.
func OpenSQLInventory(dsn string) (*SQLInventory, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot inventory: %w", err)
	}
	return NewSQLInventory(db), nil
}

// ListInstances returns the managed instances for an environment.
func (i *SQLInventory) ListInstances(ctx context.Context, environment string) ([]DBInstance, error) {
	rows, err := i.db.QueryContext(ctx,
		"SELECT instance_id, backup_retention_days FROM db_instances WHERE environment = ?",
		environment)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	defer rows.Close()

	var instances []DBInstance
	for rows.Next() {
		var inst DBInstance
		if err := rows.Scan(&inst.ID, &inst.RetentionDays); err != nil {
			return nil, fmt.Errorf("failed to scan instance row: %w", err)
		}
		instances = append(instances, inst)
	}

	return instances, rows.Err()
}

// CountRecentSnapshots counts automated snapshots taken for an instance
// within the last day.
func (i *SQLInventory) CountRecentSnapshots(ctx context.Context, instanceID string) (int, error) {
	var count int
	err := i.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM db_snapshots WHERE instance_id = ? AND snapshot_type = 'automated' AND created_at >= NOW() - INTERVAL 1 DAY",
		instanceID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	if count > maxRecentSnapshots {
		count = maxRecentSnapshots
	}
	return count, nil
}
