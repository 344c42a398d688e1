package cache

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cast"
	"github.com/tmthrgd/go-hex"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// DefaultKeyPrefix is the namespace every entity key starts with.
const DefaultKeyPrefix = "dbentity"

// defaultKeySerializer implements KeySerializer by fingerprinting primary key values.
// The entity segment is kept readable so keys can be grouped per entity type, while the
// primary key segment is an xxhash64 digest of its normalized string form.
type defaultKeySerializer struct {
	prefix string
}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{prefix: DefaultKeyPrefix}
}

// NewPrefixedKeySerializer creates a key serializer using a custom namespace prefix.
func NewPrefixedKeySerializer(prefix string) KeySerializer {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &defaultKeySerializer{prefix: prefix}
}

// SerializeKey builds the cache key for an entity.
// Without a primary key the result is the type-level key for the entity; with one,
// the pk-scoped key. Integer and string forms of the same value share a key.
func (s *defaultKeySerializer) SerializeKey(entity string, pk ...any) string {
	parts := []string{s.prefix, entity}
	if len(pk) == 0 {
		return strings.Join(parts, KeySeparator)
	}

	values := make([]string, len(pk))
	for i, v := range pk {
		values[i] = s.normalize(v)
	}

	digest := xxhash.New()
	_, _ = digest.WriteString(strings.Join(values, KeySeparator))

	parts = append(parts, hex.EncodeToString(digest.Sum(nil)))
	return strings.Join(parts, KeySeparator)
}

// normalize converts a primary key value into its canonical string form.
func (s *defaultKeySerializer) normalize(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "nil"
		}
		return s.normalize(rv.Elem().Interface())
	}

	if str, err := cast.ToStringE(v); err == nil {
		return str
	}

	// Fallback for values cast cannot render (structs, composite keys)
	return fmt.Sprintf("%T:%v", v, v)
}
