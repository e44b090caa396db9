package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies a description format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DetectFormat picks a format from the file extension. Anything that is not
// YAML or JSON is treated as text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatText
}

// ParseFormat validates a user supplied format name. Empty means text.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, yaml or json)", name)
}

// LoadFile reads and parses a description, choosing the format by extension.
func LoadFile(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read machine description: %w", err)
	}
	def, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return def, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*domain.Definition, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(data)
	case FormatJSON:
		return ParseJSON(data)
	default:
		return ParseText(bytes.NewReader(data))
	}
}

// ParseYAML decodes a YAML definition document.
func ParseYAML(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return decode(raw)
}

// ParseJSON decodes a JSON definition document.
func ParseJSON(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	return decode(raw)
}

func decode(raw map[string]any) (*domain.Definition, error) {
	if raw == nil {
		return nil, fmt.Errorf("empty definition")
	}

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(directionHook, inputHook),
		ErrorUnused: true,
		Result:      &def,
		TagName:     "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	if err := checkNonNegative(&def); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return &def, nil
}

// checkNonNegative rejects negative state keys and symbols anywhere in def.
func checkNonNegative(def *domain.Definition) error {
	for _, k := range def.States {
		if k < 0 {
			return fmt.Errorf("negative state %d", k)
		}
	}
	for _, s := range def.Alphabet {
		if s < 0 {
			return fmt.Errorf("negative symbol %d", s)
		}
	}
	for i, r := range def.Transitions {
		if r.From < 0 || r.To < 0 || r.On < 0 || r.Write < 0 {
			return fmt.Errorf("transition #%d: negative state or symbol", i)
		}
	}
	for i, s := range def.Input {
		if s < 0 {
			return fmt.Errorf("negative input symbol %d at offset %d", s, i)
		}
	}
	for _, k := range []*domain.StateKey{def.Start, def.Final} {
		if k != nil && *k < 0 {
			return fmt.Errorf("negative state %d", *k)
		}
	}
	return nil
}

var (
	directionType = reflect.TypeOf(domain.Direction(0))
	inputType     = reflect.TypeOf([]domain.Symbol(nil))
)

// directionHook accepts "L"/"R"/"left"/"right" for Direction fields.
func directionHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if to != directionType || !ok {
		return data, nil
	}
	return domain.ParseDirection(s)
}

// inputHook accepts a tape string ("0110") wherever a symbol list is expected.
func inputHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if to != inputType || !ok {
		return data, nil
	}
	return ParseInput(s)
}
