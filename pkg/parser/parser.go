package parser

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kage-cloud/routemap/pkg/except"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatAuto Format = "auto"
	FormatJson Format = "json"
	FormatYaml Format = "yaml"
)

func (f Format) IsValid() bool {
	switch f {
	case FormatAuto, FormatJson, FormatYaml:
		return true
	}
	return false
}

// Json keeps numbers as json.Number so ports and weights render as written.
var Json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// DetectFormat picks JSON when the trimmed text opens an object or array and
// YAML for everything else, including blank text.
func DetectFormat(text string) Format {
	stripped := strings.TrimSpace(text)
	if strings.HasPrefix(stripped, "{") || strings.HasPrefix(stripped, "[") {
		return FormatJson
	}
	return FormatYaml
}

// Parse decodes a single document. A YAML stream holding exactly one
// document yields that document, any other count yields a []interface{} of
// the documents.
func Parse(text string, format Format) (interface{}, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(text)
	}

	switch format {
	case FormatJson:
		return parseJson(text)
	case FormatYaml:
		return parseYaml(text)
	}
	return nil, except.NewError("Unsupported format %q", except.ErrUnsupported, format)
}

// ParseAll decodes every non-blank document. The first failure aborts.
func ParseAll(texts []string, format Format) ([]interface{}, error) {
	docs := make([]interface{}, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc, err := Parse(text, format)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func parseJson(text string) (interface{}, error) {
	var doc interface{}
	if err := Json.UnmarshalFromString(text, &doc); err != nil {
		return nil, except.NewError("Invalid JSON: %s", except.ErrParse, err.Error())
	}
	return doc, nil
}

func parseYaml(text string) (interface{}, error) {
	dec := yaml.NewDecoder(strings.NewReader(text))
	docs := make([]interface{}, 0, 1)
	for {
		var doc interface{}
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, except.NewError("Invalid YAML: %s", except.ErrParse, err.Error())
		}
		docs = append(docs, normalize(doc))
	}

	if len(docs) == 1 {
		return docs[0], nil
	}
	return docs, nil
}

// normalize rewrites mappings with non-string keys so that every mapping in
// the tree is a map[string]interface{}.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []interface{}:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	}
	return v
}
