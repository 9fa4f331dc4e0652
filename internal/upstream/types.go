package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Getter то, что доменным источникам нужно от Client
type Getter interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	GetRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}

var _ Getter = (*Client)(nil)

// ID идентификатор, который upstream отдает то строкой, то числом
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id must be string or number: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// Ptr nil для пустого идентификатора
func (id ID) Ptr() *string {
	if id == "" {
		return nil
	}
	s := string(id)
	return &s
}
