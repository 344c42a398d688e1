// Package notes is the small domain entityctl manages: titled notes with an owner.
package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-dbentity/entity"
)

// Table holds notes.
const Table = "notes"

// Note is one row of the notes table. Owner is kept out of the public mapping.
type Note struct {
	bun.BaseModel `bun:"table:notes"`
	entity.Base   `bun:"-"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Title     string    `bun:"title,notnull"`
	Body      string    `bun:"body"`
	Owner     string    `bun:"owner"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// New returns an empty note.
func New() *Note {
	return &Note{}
}

func (n *Note) PrimaryKey() any {
	return n.ID
}

func (n *Note) SetPrimaryKey(value any) error {
	id, err := cast.ToInt64E(value)
	if err != nil {
		return fmt.Errorf("note id: %w", err)
	}
	n.ID = id
	return nil
}

func (n *Note) SetFields(row map[string]any) error {
	return entity.AssignFields(row, entity.Fields{
		"id":         &n.ID,
		"title":      &n.Title,
		"body":       &n.Body,
		"owner":      &n.Owner,
		"created_at": &n.CreatedAt,
	})
}

func (n *Note) ToMap() map[string]any {
	return map[string]any{
		"id":         n.ID,
		"title":      n.Title,
		"body":       n.Body,
		"owner":      n.Owner,
		"created_at": n.CreatedAt,
	}
}

func (n *Note) ToPublicMap() map[string]any {
	return map[string]any{
		"id":         n.ID,
		"title":      n.Title,
		"body":       n.Body,
		"created_at": n.CreatedAt,
	}
}

func (n *Note) EntityConfig() entity.Config {
	return entity.Config{
		Table:      Table,
		PrimaryKey: "id",
		NewModel:   func() entity.Model { return New() },
	}
}

// CreateTable creates the notes table when it does not exist yet.
func CreateTable(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Note)(nil)).IfNotExists().Exec(ctx)
	return err
}
