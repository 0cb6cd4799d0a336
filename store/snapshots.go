package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type snapshotRow struct {
	bun.BaseModel `bun:"table:snapshots,alias:snap"`
	Kind          string    `bun:"kind,pk"`
	Payload       []byte    `bun:"payload,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// Snapshots persists the last good list per resource kind as raw JSON. It
// implements the pages.SnapshotStore contract.
type Snapshots struct {
	db *bun.DB
}

// NewSnapshots prepares the snapshots table and returns the store.
func NewSnapshots(ctx context.Context, db *bun.DB) (*Snapshots, error) {
	if err := createTable(ctx, db, (*snapshotRow)(nil)); err != nil {
		return nil, err
	}
	return &Snapshots{db: db}, nil
}

// SaveSnapshot replaces the stored list for kind.
func (s *Snapshots) SaveSnapshot(ctx context.Context, kind string, items any) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode snapshot")
	}

	row := &snapshotRow{
		Kind:      kind,
		Payload:   payload,
		UpdatedAt: time.Now(),
	}

	_, err = s.db.NewInsert().
		Model(row).
		On("CONFLICT (kind) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// LoadSnapshot decodes the stored list for kind into the given slice pointer.
// The second return is false when no snapshot exists.
func (s *Snapshots) LoadSnapshot(ctx context.Context, kind string, into any) (bool, error) {
	row := &snapshotRow{}
	err := s.db.NewSelect().
		Model(row).
		Where("kind = ?", kind).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to read snapshot")
	}

	if err := json.Unmarshal(row.Payload, into); err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode snapshot")
	}
	return true, nil
}
