package graphson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coingaming/gremlex/graph"
)

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{"plain string", `"hello"`, "hello"},
		{"plain bool", `true`, true},
		{"plain null", `null`, nil},
		{"int32", `{"@type":"g:Int32","@value":29}`, int64(29)},
		{"int64", `{"@type":"g:Int64","@value":123456789}`, int64(123456789)},
		{"double", `{"@type":"g:Double","@value":2.5}`, 2.5},
		{"float", `{"@type":"g:Float","@value":0.5}`, 0.5},
		{"uuid", `{"@type":"g:UUID","@value":"41d2e28a-20a4-4ab0-b379-d810dede3786"}`,
			"41d2e28a-20a4-4ab0-b379-d810dede3786"},
		{"unknown tag", `{"@type":"g:T","@value":"id"}`, "id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := Decode([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, decoded)
		})
	}
}

func TestDecodeTimestampMicroseconds(t *testing.T) {
	decoded, err := Decode([]byte(`{"@type":"g:Date","@value":1609459200000000}`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), decoded)

	decoded, err = Decode([]byte(`{"@type":"g:Timestamp","@value":1609459200000000}`))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), decoded)
}

func TestDecodeList(t *testing.T) {
	decoded, err := Decode([]byte(`{"@type":"g:List","@value":["0",{"@type":"g:Int32","@value":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, []any{"0", int64(1)}, decoded)
}

func TestDecodeSet(t *testing.T) {
	decoded, err := Decode([]byte(`{"@type":"g:Set","@value":["a","b"]}`))
	require.NoError(t, err)
	set, ok := decoded.(graph.Set)
	require.True(t, ok)
	assert.True(t, set.Contains("a"))
	assert.True(t, set.Contains("b"))
	assert.False(t, set.Contains("c"))
}

func TestDecodeMap(t *testing.T) {
	input := `{"@type":"g:Map","@value":["id","id1","linked",{"@type":"g:List","@value":["id2"]},"label","VERTEX"]}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, map[any]any{
		"id":     "id1",
		"linked": []any{"id2"},
		"label":  "VERTEX",
	}, decoded)
}

func TestDecodeMapTypedKeys(t *testing.T) {
	input := `{"@type":"g:Map","@value":[{"@type":"g:Int32","@value":1},"one","two",{"@type":"g:Int64","@value":2}]}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, map[any]any{
		int64(1): "one",
		"two":    int64(2),
	}, decoded)
}

func TestDecodeVertex(t *testing.T) {
	input := `{"@type":"g:Vertex","@value":{
		"id":{"@type":"g:Int64","@value":1},
		"label":"person",
		"properties":{
			"name":[{"@type":"g:VertexProperty","@value":{
				"id":{"@type":"g:Int64","@value":0},
				"value":"marko",
				"label":"name"}}],
			"age":[{"@type":"g:VertexProperty","@value":{
				"id":{"@type":"g:Int64","@value":2},
				"value":{"@type":"g:Int32","@value":29},
				"label":"age"}}]
		}}}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)

	vertex, ok := decoded.(graph.Vertex)
	require.True(t, ok)
	assert.Equal(t, int64(1), vertex.ID)
	assert.Equal(t, "person", vertex.Label)
	assert.Equal(t, []any{"marko"}, vertex.Properties["name"])
	assert.Equal(t, []any{int64(29)}, vertex.Properties["age"])
	assert.Equal(t, "marko", vertex.Property("name"))
	assert.Nil(t, vertex.Property("missing"))
}

func TestDecodeVertexWithoutProperties(t *testing.T) {
	input := `{"@type":"g:Vertex","@value":{"id":"v-1","label":"product"}}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)

	vertex, ok := decoded.(graph.Vertex)
	require.True(t, ok)
	assert.Equal(t, "v-1", vertex.ID)
	assert.Equal(t, "product", vertex.Label)
	assert.Nil(t, vertex.Properties)
}

func TestDecodeEdge(t *testing.T) {
	input := `{"@type":"g:Edge","@value":{
		"id":{"@type":"g:Int32","@value":13},
		"label":"develops",
		"inVLabel":"software",
		"outVLabel":"person",
		"inV":{"@type":"g:Int32","@value":10},
		"outV":{"@type":"g:Int32","@value":1},
		"properties":{
			"since":[{"@type":"g:Property","@value":{"key":"since","value":{"@type":"g:Int32","@value":2009}}}]
		}}}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)

	edge, ok := decoded.(graph.Edge)
	require.True(t, ok)
	assert.Equal(t, int64(13), edge.ID)
	assert.Equal(t, "develops", edge.Label)
	assert.Equal(t, int64(10), edge.InVertex.ID)
	assert.Equal(t, "software", edge.InVertex.Label)
	assert.Equal(t, int64(1), edge.OutVertex.ID)
	assert.Equal(t, "person", edge.OutVertex.Label)
	assert.Equal(t, []any{int64(2009)}, edge.Properties["since"])
}

func TestDecodeVertexProperty(t *testing.T) {
	input := `{"@type":"g:VertexProperty","@value":{
		"id":{"@type":"g:Int64","@value":0},
		"value":"marko",
		"label":"name",
		"vertex":{"@type":"g:Int64","@value":1}}}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)

	vp, ok := decoded.(graph.VertexProperty)
	require.True(t, ok)
	assert.Equal(t, int64(0), vp.ID)
	assert.Equal(t, "name", vp.Label)
	assert.Equal(t, "marko", vp.Value)
	require.NotNil(t, vp.Vertex)
	assert.Equal(t, int64(1), vp.Vertex.ID)
}

func TestDecodePath(t *testing.T) {
	input := `{"@type":"g:Path","@value":{
		"labels":{"@type":"g:List","@value":[
			{"@type":"g:Set","@value":["a"]},
			{"@type":"g:Set","@value":[]}
		]},
		"objects":{"@type":"g:List","@value":[
			{"@type":"g:Vertex","@value":{"id":{"@type":"g:Int32","@value":1},"label":"person"}},
			"edge-value"
		]}}}`
	decoded, err := Decode([]byte(input))
	require.NoError(t, err)

	path, ok := decoded.(graph.Path)
	require.True(t, ok)
	require.Equal(t, 2, path.Len())
	assert.Equal(t, [][]string{{"a"}, {}}, path.Labels)
	vertex, ok := path.Objects[0].(graph.Vertex)
	require.True(t, ok)
	assert.Equal(t, int64(1), vertex.ID)
	assert.Equal(t, "edge-value", path.Objects[1])
}

func TestDecodeListHelper(t *testing.T) {
	values, err := DecodeList([]byte(`{"@type":"g:List","@value":["0"]}`))
	require.NoError(t, err)
	assert.Equal(t, []any{"0"}, values)

	values, err = DecodeList([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = DecodeList(nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	values, err = DecodeList([]byte(`"single"`))
	require.NoError(t, err)
	assert.Equal(t, []any{"single"}, values)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{`))
	require.Error(t, err)
	_, err = DecodeList([]byte(`{`))
	require.Error(t, err)
}
