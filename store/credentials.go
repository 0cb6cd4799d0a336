package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	farmacia "github.com/goliatone/go-farmacia"
)

// The token lives in a single fixed row; Put replaces it in place.
const credentialRowID = 1

type credentialRow struct {
	bun.BaseModel `bun:"table:credentials,alias:cred"`
	ID            int64     `bun:"id,pk"`
	Token         string    `bun:"token,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// Credentials is a CredentialStore backed by the local profile database.
type Credentials struct {
	db     *bun.DB
	logger farmacia.Logger
}

var _ farmacia.CredentialStore = (*Credentials)(nil)

// NewCredentials prepares the credentials table and returns the store.
func NewCredentials(ctx context.Context, db *bun.DB) (*Credentials, error) {
	if err := createTable(ctx, db, (*credentialRow)(nil)); err != nil {
		return nil, err
	}
	return &Credentials{db: db}, nil
}

// WithLogger overrides the default silent logger.
func (c *Credentials) WithLogger(logger farmacia.Logger) *Credentials {
	c.logger = logger
	return c
}

func (c *Credentials) Put(token string) error {
	row := &credentialRow{
		ID:        credentialRowID,
		Token:     token,
		UpdatedAt: time.Now(),
	}

	_, err := c.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(context.Background())
	return err
}

func (c *Credentials) Get() (string, bool) {
	row := &credentialRow{}
	err := c.db.NewSelect().
		Model(row).
		Where("id = ?", credentialRowID).
		Scan(context.Background())

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) && c.logger != nil {
			c.logger.Warn("credential read failed: %v", err)
		}
		return "", false
	}

	if row.Token == "" {
		return "", false
	}
	return row.Token, true
}

func (c *Credentials) Clear() error {
	_, err := c.db.NewDelete().
		Model((*credentialRow)(nil)).
		Where("id = ?", credentialRowID).
		Exec(context.Background())
	return err
}
