package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

var ErrEmptyPayload = errors.New("payload is empty")

// ReadPayload читает файл пакета. YAML (.yaml, .yml) переводится в JSON, остальное должно быть валидным JSON.
func ReadPayload(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return ConvertPayload(filepath.Ext(path), data)
}

// ConvertPayload приводит содержимое к JSON по расширению файла
func ConvertPayload(ext string, data []byte) ([]byte, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyPayload
	}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		return out, nil
	default:
		if !json.Valid(data) {
			return nil, errors.New("payload is not valid json")
		}
		return data, nil
	}
}
