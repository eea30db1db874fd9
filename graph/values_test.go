package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVertexProperty(t *testing.T) {
	v := Vertex{
		ID:    int64(1),
		Label: "person",
		Properties: map[string][]any{
			"name": {"marko", "marko a. rodriguez"},
		},
	}
	assert.Equal(t, "marko", v.Property("name"))
	assert.Nil(t, v.Property("age"))
	assert.Equal(t, "v[1:person]", v.String())
}

func TestEdgeString(t *testing.T) {
	e := Edge{
		ID:        int64(7),
		Label:     "knows",
		OutVertex: Vertex{ID: int64(1)},
		InVertex:  Vertex{ID: int64(2)},
	}
	assert.Equal(t, "e[7:knows][1->2]", e.String())
}

func TestSetContains(t *testing.T) {
	s := Set{"a", int64(2)}
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains(int64(2)))
	assert.False(t, s.Contains("b"))
}

func TestPathLen(t *testing.T) {
	p := Path{
		Labels:  [][]string{{"a"}, {}},
		Objects: []any{"x", "y"},
	}
	assert.Equal(t, 2, p.Len())
}
