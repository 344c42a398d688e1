package entity

import (
	"bytes"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the cached form of a model.
type snapshot struct {
	Initialized bool           `msgpack:"initialized"`
	Fields      map[string]any `msgpack:"fields"`
}

func encodeSnapshot(m Model) ([]byte, error) {
	return msgpack.Marshal(&snapshot{
		Initialized: m.IsInitialized(),
		Fields:      m.ToMap(),
	})
}

// decodeSnapshot restores data into m through SetFields, so the model sees the same
// loosely typed values (int64, float64, string, UTC time.Time) a database row would carry.
func decodeSnapshot(data []byte, m Model) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)

	var s snapshot
	if err := dec.Decode(&s); err != nil {
		return err
	}
	// msgpack decodes timestamps into time.Local.
	for column, value := range s.Fields {
		if t, ok := value.(time.Time); ok {
			s.Fields[column] = t.UTC()
		}
	}
	if err := m.SetFields(s.Fields); err != nil {
		return err
	}
	m.SetInitialized(s.Initialized)
	return nil
}
