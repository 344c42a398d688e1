package database

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/uptrace/bun"
)

// ErrUnknownDatabase is returned when a name was never registered with the pool.
var ErrUnknownDatabase = errors.New("unknown database")

// Pool keeps named bun databases and remembers which one is the default.
// It is safe for concurrent use.
type Pool struct {
	dbs         *xsync.MapOf[string, *bun.DB]
	defaultName atomic.Value
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	p := &Pool{dbs: xsync.NewMapOf[string, *bun.DB]()}
	p.defaultName.Store("")
	return p
}

// Register adds db under name. The first registered database becomes the default.
func (p *Pool) Register(name string, db *bun.DB) {
	p.dbs.Store(name, db)
	p.defaultName.CompareAndSwap("", name)
}

// SetDefault changes the database used when callers pass an empty name.
func (p *Pool) SetDefault(name string) error {
	if _, ok := p.dbs.Load(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDatabase, name)
	}
	p.defaultName.Store(name)
	return nil
}

// Default returns the name of the default database.
func (p *Pool) Default() string {
	return p.defaultName.Load().(string)
}

// Get resolves name, falling back to the default database when name is empty.
func (p *Pool) Get(name string) (*bun.DB, error) {
	if name == "" {
		name = p.Default()
	}
	db, ok := p.dbs.Load(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDatabase, name)
	}
	return db, nil
}

// Close closes every registered database and empties the pool.
func (p *Pool) Close() error {
	var errs []error
	p.dbs.Range(func(name string, db *bun.DB) bool {
		if err := db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
		p.dbs.Delete(name)
		return true
	})
	p.defaultName.Store("")
	return errors.Join(errs...)
}
