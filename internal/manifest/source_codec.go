package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements custom YAML unmarshaling for Source.
// Accepts either a single string or an array of strings.
func (s *Source) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		*s = Source{Paths: []string{str}}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = Source{Paths: arr, IsList: true}

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// UnmarshalJSON implements custom JSON unmarshaling for Source.
// Accepts either a single string or an array of strings.
func (s *Source) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return errors.New("expected string or array, got null")
	}

	if len(data) > 0 && data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}

		*s = Source{Paths: arr, IsList: true}

		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("expected string or array: %w", err)
	}

	*s = Source{Paths: []string{str}}

	return nil
}
