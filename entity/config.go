package entity

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultPrimaryKey is used when Config.PrimaryKey is empty.
const DefaultPrimaryKey = "id"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Config binds an entity to one table, primary key and model type.
type Config struct {
	// Name identifies the entity type in cache keys. Defaults to Table,
	// qualified by Database when one is set.
	Name string `json:"name"`
	// Table is the table rows are stored in. Defaults to the pluralized
	// snake case name of the model type.
	Table string `json:"table"`
	// PrimaryKey is the primary key column. Defaults to "id".
	PrimaryKey string `json:"primary_key"`
	// Database names the pool database holding Table. Empty selects the default.
	Database string `json:"database"`
	// NewModel returns a fresh, uninitialized model.
	NewModel func() Model `json:"-"`
}

// Validate checks that the config can drive an entity.
func (c Config) Validate() error {
	if c.NewModel == nil {
		return errors.New("new_model: cannot be nil")
	}
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Table, validation.Required, validation.Match(identifierPattern)),
		validation.Field(&c.PrimaryKey, validation.Required, validation.Match(identifierPattern)),
	)
}

// withDefaults fills the optional fields. NewModel must already be set.
func (c Config) withDefaults() Config {
	if c.NewModel == nil {
		return c
	}
	if c.PrimaryKey == "" {
		c.PrimaryKey = DefaultPrimaryKey
	}
	if c.Table == "" {
		c.Table = tableNameFor(c.NewModel())
	}
	if c.Name == "" {
		c.Name = c.Table
		if c.Database != "" {
			c.Name = c.Database + "." + c.Table
		}
	}
	return c
}
