package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeySerializer_TypeLevelKey(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	assert.Equal(t, joinWithSeparator(DefaultKeyPrefix, "users"), serializer.SerializeKey("users"))
	assert.Equal(t, joinWithSeparator(DefaultKeyPrefix, "reports.users"), serializer.SerializeKey("reports.users"))
}

func TestDefaultKeySerializer_PrimaryKeyScope(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	key := serializer.SerializeKey("users", 42)
	parts := strings.Split(key, KeySeparator)
	require.Len(t, parts, 3)
	assert.Equal(t, DefaultKeyPrefix, parts[0])
	assert.Equal(t, "users", parts[1])
	assert.Len(t, parts[2], 16, "xxhash64 digest in hex")

	assert.NotEqual(t, serializer.SerializeKey("users"), key)
	assert.NotEqual(t, serializer.SerializeKey("users", 43), key)
	assert.NotEqual(t, serializer.SerializeKey("accounts", 42), key)
}

func TestDefaultKeySerializer_Deterministic(t *testing.T) {
	first := NewDefaultKeySerializer().SerializeKey("users", "abc")
	second := NewDefaultKeySerializer().SerializeKey("users", "abc")
	assert.Equal(t, first, second)
}

func TestDefaultKeySerializer_NormalizesPrimaryKeys(t *testing.T) {
	serializer := NewDefaultKeySerializer()
	want := serializer.SerializeKey("users", 42)

	id := int64(42)
	equivalents := []any{int64(42), int32(42), uint(42), "42", &id}
	for _, pk := range equivalents {
		assert.Equal(t, want, serializer.SerializeKey("users", pk), "pk %T", pk)
	}
}

func TestDefaultKeySerializer_NilPrimaryKey(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	var id *int64
	assert.Equal(t, serializer.SerializeKey("users", nil), serializer.SerializeKey("users", id))
	assert.NotEqual(t, serializer.SerializeKey("users"), serializer.SerializeKey("users", nil))
}

func TestDefaultKeySerializer_CompositePrimaryKey(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	type compositeKey struct {
		Tenant string
		ID     int
	}

	a := serializer.SerializeKey("users", compositeKey{"acme", 1})
	b := serializer.SerializeKey("users", compositeKey{"acme", 2})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, serializer.SerializeKey("users", compositeKey{"acme", 1}))
	assert.NotEqual(t, serializer.SerializeKey("users", "acme", 1), serializer.SerializeKey("users", "acme", 2))
}

func TestPrefixedKeySerializer(t *testing.T) {
	serializer := NewPrefixedKeySerializer("billing")
	assert.Equal(t, joinWithSeparator("billing", "invoices"), serializer.SerializeKey("invoices"))

	fallback := NewPrefixedKeySerializer("")
	assert.Equal(t, NewDefaultKeySerializer().SerializeKey("invoices", 1), fallback.SerializeKey("invoices", 1))
}
