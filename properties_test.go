package csv2geojson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPropertiesMarshalJSON(t *testing.T) {
	props := Properties{
		{Key: "name", Value: "A"},
		{Key: "id", Value: "007"},
		{Key: "note", Value: `say "hi"`},
	}

	data, err := json.Marshal(props)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A","id":"007","note":"say \"hi\""}`, string(data))
}

func TestPropertiesMarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Properties{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestPropertiesUnmarshalJSON(t *testing.T) {
	var props Properties
	err := json.Unmarshal([]byte(`{"b":"2","a":"1","n":3.5,"t":true,"z":null}`), &props)
	require.NoError(t, err)

	want := Properties{
		{Key: "b", Value: "2"},
		{Key: "a", Value: "1"},
		{Key: "n", Value: "3.5"},
		{Key: "t", Value: "true"},
		{Key: "z", Value: ""},
	}
	assert.Equal(t, want, props)
}

func TestPropertiesUnmarshalJSONRejectsNested(t *testing.T) {
	var props Properties
	err := json.Unmarshal([]byte(`{"a":{"b":"c"}}`), &props)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`["a"]`), &props)
	assert.Error(t, err)
}

func TestPropertiesGet(t *testing.T) {
	props := Properties{
		{Key: "name", Value: "A"},
		{Key: "ref", Value: ""},
	}

	v, ok := props.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "A", v)

	v, ok = props.Get("ref")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = props.Get("missing")
	assert.False(t, ok)
}

func TestPropertiesMarshalYAML(t *testing.T) {
	props := Properties{
		{Key: "name", Value: "A"},
		{Key: "id", Value: "7"},
	}

	data, err := yaml.Marshal(props)
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &node))
	require.Len(t, node.Content, 1)

	mapping := node.Content[0]
	require.Equal(t, yaml.MappingNode, mapping.Kind)
	require.Len(t, mapping.Content, 4)

	assert.Equal(t, "name", mapping.Content[0].Value)
	assert.Equal(t, "A", mapping.Content[1].Value)
	assert.Equal(t, "id", mapping.Content[2].Value)
	assert.Equal(t, "7", mapping.Content[3].Value)

	// Numeric-looking values stay strings
	assert.Equal(t, "!!str", mapping.Content[3].Tag)
}
