package responses

import (
	"bytes"

	"github.com/goccy/go-json"
)

type StringifiedField struct {
	Key   string
	Value string
}

// StringifiedDocument is a stored patient document projected to text. Fields
// keep the order in which the database returned them.
type StringifiedDocument []StringifiedField

func (d StringifiedDocument) Get(key string) (string, bool) {
	for _, field := range d {
		if field.Key == key {
			return field.Value, true
		}
	}
	return "", false
}

func (d StringifiedDocument) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
