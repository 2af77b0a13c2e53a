package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes translation content into language -> nested key map.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension accepts extensions with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	ext := filepath.Ext(filename)
	for _, p := range []Parser{NewYAMLParser(), NewJSONParser()} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// JSONParser reads {"en": {...}, "nb": {...}} documents. Top-level entries
// that are not objects are skipped, so metadata keys may sit next to the
// languages.
type JSONParser struct{ codec }

func NewJSONParser() *JSONParser {
	return &JSONParser{codec{
		extensions: []string{"json"},
		unmarshal:  json.Unmarshal,
		cancelled:  ErrJSONParsingCancelled,
		invalid:    ErrFailedToParseJSON,
	}}
}

// YAMLParser reads documents whose top level maps language codes to
// translation trees. Every top-level value must be a mapping.
type YAMLParser struct{ codec }

func NewYAMLParser() *YAMLParser {
	return &YAMLParser{codec{
		extensions: []string{"yaml", "yml"},
		unmarshal:  yaml.Unmarshal,
		cancelled:  ErrYAMLParsingCancelled,
		invalid:    ErrFailedToParseYAML,
		structure:  ErrInvalidYAMLStructure,
	}}
}

// codec holds what the format parsers share. A nil structure error makes
// the parser skip malformed languages instead of failing.
type codec struct {
	extensions []string
	unmarshal  func([]byte, any) error
	cancelled  error
	invalid    error
	structure  error
}

func (c codec) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(c.cancelled, err)
	}

	var data map[string]any
	if err := c.unmarshal([]byte(content), &data); err != nil {
		return nil, errors.Join(c.invalid, err)
	}

	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		m, ok := val.(map[string]any)
		if !ok {
			if c.structure == nil {
				continue
			}
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", c.structure, lang, val)
		}
		result[lang] = m
	}
	if len(result) == 0 && c.structure != nil {
		return nil, fmt.Errorf("%w: no languages", c.structure)
	}
	return result, nil
}

func (c codec) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return slices.ContainsFunc(c.extensions, func(e string) bool { return strings.EqualFold(e, ext) })
}
