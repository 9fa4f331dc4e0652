package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape форма ответа со списком записей
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeArray         // [ ... ]
	ShapeWrapped       // { "<key>": [ ... ] }
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeWrapped:
		return "wrapped"
	default:
		return "unknown"
	}
}

// Listing результат разбора ответа, который бывает голым массивом или объектом-оберткой.
// ShapeUnknown означает, что контракт upstream изменился и синхронизировать нечего.
type Listing[T any] struct {
	Shape   Shape
	Key     string
	Records []T
}

// DecodeListing определяет форму ответа и достает записи.
// keys - допустимые ключи обертки в порядке приоритета.
// Ошибка возвращается только для невалидного JSON или записей, которые не декодируются.
func DecodeListing[T any](raw []byte, keys ...string) (Listing[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Listing[T]{}, fmt.Errorf("%w: empty body", ErrUpstreamMalformed)
	}
	if !json.Valid(trimmed) {
		return Listing[T]{}, fmt.Errorf("%w: invalid json", ErrUpstreamMalformed)
	}

	switch trimmed[0] {
	case '[':
		var records []T
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return Listing[T]{}, fmt.Errorf("%w: decode array: %v", ErrUpstreamMalformed, err)
		}
		return Listing[T]{Shape: ShapeArray, Records: records}, nil

	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Listing[T]{}, fmt.Errorf("%w: decode object: %v", ErrUpstreamMalformed, err)
		}
		for _, key := range keys {
			v, ok := fields[key]
			if !ok {
				continue
			}
			v = bytes.TrimSpace(v)
			if len(v) == 0 || v[0] != '[' {
				continue
			}
			var records []T
			if err := json.Unmarshal(v, &records); err != nil {
				return Listing[T]{}, fmt.Errorf("%w: decode %q: %v", ErrUpstreamMalformed, key, err)
			}
			return Listing[T]{Shape: ShapeWrapped, Key: key, Records: records}, nil
		}
	}

	return Listing[T]{Shape: ShapeUnknown}, nil
}
