package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal encodes v as indented JSON or as YAML.
func Marshal(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(v)
	case "json", "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use json or yaml)", format)
	}
}

// Extension returns the file extension for format.
func Extension(format string) string {
	if f := strings.ToLower(format); f == "yaml" || f == "yml" {
		return "yaml"
	}
	return "json"
}
