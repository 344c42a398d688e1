package entity

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Fields maps column names to pointers of the struct fields that hold them.
type Fields map[string]any

// AssignFields copies the columns of row into the matching targets, converting
// driver and cache representations (int64, []byte, float64, strings) into the
// target's type. Columns missing from row are left untouched.
func AssignFields(row map[string]any, targets Fields) error {
	for column, target := range targets {
		value, ok := row[column]
		if !ok {
			continue
		}
		if err := assign(target, value); err != nil {
			return fmt.Errorf("column %s: %w", column, err)
		}
	}
	return nil
}

func assign(target, value any) error {
	var err error
	switch dst := target.(type) {
	case *int64:
		*dst, err = cast.ToInt64E(normalizeBytes(value))
	case *int:
		*dst, err = cast.ToIntE(normalizeBytes(value))
	case *int32:
		*dst, err = cast.ToInt32E(normalizeBytes(value))
	case *uint64:
		*dst, err = cast.ToUint64E(normalizeBytes(value))
	case *float64:
		*dst, err = cast.ToFloat64E(normalizeBytes(value))
	case *string:
		*dst, err = cast.ToStringE(value)
	case *bool:
		*dst, err = cast.ToBoolE(normalizeBytes(value))
	case *time.Time:
		*dst, err = cast.ToTimeE(normalizeBytes(value))
	case *[]byte:
		switch v := value.(type) {
		case []byte:
			*dst = append([]byte(nil), v...)
		case string:
			*dst = []byte(v)
		case nil:
			*dst = nil
		default:
			err = fmt.Errorf("unable to cast %#v of type %T to []byte", value, value)
		}
	case *any:
		*dst = value
	default:
		err = fmt.Errorf("unsupported target type %T", target)
	}
	return err
}

// normalizeBytes turns driver []byte values (MySQL text protocol, some sqlite
// columns) into strings so cast can parse them.
func normalizeBytes(value any) any {
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return value
}
