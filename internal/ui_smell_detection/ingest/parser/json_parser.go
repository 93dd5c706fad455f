package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

func (b *YBound) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*b = YBound(domain.Unknown())
		return nil
	case len(data) > 0 && data[0] == '{':
		var obj boundObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		v, err := obj.bound()
		if err != nil {
			return err
		}
		*b = v
		return nil
	default:
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("bound must be an integer: %w", err)
		}
		*b = YBound(domain.Exactly(n))
		return nil
	}
}

func ParseJSON(path string) (*YDocument, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSONBytes(b)
}

func ParseJSONBytes(b []byte) (*YDocument, error) {
	var d YDocument
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func ParseJSONString(s string) (*YDocument, error) {
	return ParseJSONBytes([]byte(s))
}

// ParseBytes picks the decoder from format ("yaml" or "json"); an empty
// format sniffs for a leading '{'.
func ParseBytes(b []byte, format string) (*YDocument, error) {
	switch format {
	case "json":
		return ParseJSONBytes(b)
	case "yaml", "yml":
		return ParseYAMLBytes(b)
	case "":
		if t := bytes.TrimSpace(b); len(t) > 0 && t[0] == '{' {
			return ParseJSONBytes(b)
		}
		return ParseYAMLBytes(b)
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}
