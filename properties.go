package csv2geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Property is a single feature attribute: one CSV cell keyed by its
// column name.
type Property struct {
	Key   string
	Value string
}

// Properties holds the attributes of a feature in CSV header order.
// Go maps do not keep member order during encoding, so properties are
// carried as an ordered pair list with custom marshalers.
type Properties []Property

// Get returns the value stored under key and whether the key exists.
func (p Properties) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// MarshalJSON renders the properties as a JSON object with its members
// in pair order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, kv := range p {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat JSON object into the pair list, keeping
// member order. Scalar values are rendered back to their literal text
// form; nested objects and arrays are rejected.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected JSON object, got %v", tok)
	}

	out := Properties{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("properties: unexpected key token %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}

		var value string
		switch v := valTok.(type) {
		case string:
			value = v
		case json.Number:
			value = v.String()
		case bool:
			value = strconv.FormatBool(v)
		case nil:
			value = ""
		default:
			return fmt.Errorf("properties: %q has a non-scalar value", key)
		}

		out = append(out, Property{Key: key, Value: value})
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}

// MarshalYAML renders the properties as a YAML mapping in pair order,
// with all values tagged as strings.
func (p Properties) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Value},
		)
	}
	return node, nil
}
