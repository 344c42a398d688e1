package entity

// Model is one row of one table held in memory.
//
// Models are plain data holders: they expose their primary key, whether they reflect
// a stored row, and conversions to and from flat column mappings. Validation and
// computed fields are left to callers.
type Model interface {
	PrimaryKey() any
	SetPrimaryKey(value any) error

	IsInitialized() bool
	SetInitialized(initialized bool)

	// SetFields assigns the columns present in row. Absent columns keep their value.
	SetFields(row map[string]any) error
	// ToMap returns every column the table defines, including the primary key.
	ToMap() map[string]any
	// ToPublicMap returns the columns safe to expose outside the application.
	ToPublicMap() map[string]any

	// EntityConfig describes the entity that persists this model.
	EntityConfig() Config
}

// Base carries the initialized flag. Embed it in model structs.
type Base struct {
	initialized bool
}

// IsInitialized reports whether the model reflects a row that exists in storage.
func (b *Base) IsInitialized() bool {
	return b.initialized
}

// SetInitialized sets the initialized flag.
func (b *Base) SetInitialized(initialized bool) {
	b.initialized = initialized
}
