// Package graphson decodes GraphSON-v3 typed JSON into graph domain values.
//
// GraphSON-v3 wraps typed values as {"@type": T, "@value": V}; strings,
// booleans and nulls appear as plain JSON. The decoder dispatches on the type
// tag and returns values from the graph package, passing unknown tags through
// unchanged.
package graphson

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/graph"
)

// GraphSON-v3 type tags handled by the decoder
const (
	TypeInt32          = "g:Int32"
	TypeInt64          = "g:Int64"
	TypeDouble         = "g:Double"
	TypeFloat          = "g:Float"
	TypeUUID           = "g:UUID"
	TypeDate           = "g:Date"
	TypeTimestamp      = "g:Timestamp"
	TypeList           = "g:List"
	TypeSet            = "g:Set"
	TypeMap            = "g:Map"
	TypeVertex         = "g:Vertex"
	TypeEdge           = "g:Edge"
	TypeVertexProperty = "g:VertexProperty"
	TypePath           = "g:Path"
)

// Decode unmarshals raw GraphSON-v3 JSON and converts it to a domain value.
func Decode(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapInvalid(err, "graphson", "Decode", "unmarshal JSON")
	}
	return Value(raw), nil
}

// DecodeList decodes the result.data payload of a response frame into a list
// of values. A null payload (the 204 case) yields an empty list; a g:List or
// g:Set yields its decoded elements; any other value yields a single-element
// list.
func DecodeList(data []byte) ([]any, error) {
	if len(data) == 0 {
		return []any{}, nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapInvalid(err, "graphson", "DecodeList", "unmarshal JSON")
	}
	if raw == nil {
		return []any{}, nil
	}
	switch decoded := Value(raw).(type) {
	case []any:
		return decoded, nil
	case graph.Set:
		return decoded, nil
	default:
		return []any{decoded}, nil
	}
}

// Value converts an unmarshaled JSON value to a domain value, recursing
// through typed wrappers. Plain strings, booleans, numbers and nulls are
// returned unchanged.
func Value(v any) any {
	wrapper, ok := v.(map[string]any)
	if !ok {
		return v
	}
	tag, hasTag := wrapper["@type"].(string)
	inner, hasValue := wrapper["@value"]
	if !hasTag || !hasValue {
		return v
	}

	switch tag {
	case TypeInt32, TypeInt64:
		if f, ok := inner.(float64); ok {
			return int64(f)
		}
		return inner
	case TypeDouble, TypeFloat:
		return inner
	case TypeUUID:
		return inner
	case TypeDate, TypeTimestamp:
		// Pinned to microseconds since the Unix epoch; Gremlin server
		// versions disagree on units, see the configured server before
		// relying on sub-second precision.
		if f, ok := inner.(float64); ok {
			return time.UnixMicro(int64(f)).UTC()
		}
		return inner
	case TypeList:
		return decodeSlice(inner)
	case TypeSet:
		return graph.Set(decodeSlice(inner))
	case TypeMap:
		return decodeMap(inner)
	case TypeVertex:
		return decodeVertex(inner)
	case TypeEdge:
		return decodeEdge(inner)
	case TypeVertexProperty:
		return decodeVertexProperty(inner)
	case TypePath:
		return decodePath(inner)
	default:
		return inner
	}
}

func decodeSlice(v any) []any {
	elements, ok := v.([]any)
	if !ok {
		return []any{}
	}
	out := make([]any, len(elements))
	for i, element := range elements {
		out[i] = Value(element)
	}
	return out
}

// decodeMap chunks the flat key/value sequence of a g:Map into pairs. Typed
// keys contribute their inner value as the real key.
func decodeMap(v any) map[any]any {
	flat, ok := v.([]any)
	if !ok {
		return map[any]any{}
	}
	out := make(map[any]any, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		out[mapKey(flat[i])] = Value(flat[i+1])
	}
	return out
}

func mapKey(raw any) any {
	key := Value(raw)
	switch key.(type) {
	case map[any]any, []any, graph.Set:
		// Unhashable decoded keys fall back to their string form
		return fmt.Sprintf("%v", key)
	default:
		return key
	}
}

func decodeVertex(v any) any {
	fields, ok := v.(map[string]any)
	if !ok {
		return v
	}
	label, _ := fields["label"].(string)
	return graph.Vertex{
		ID:         Value(fields["id"]),
		Label:      label,
		Properties: decodeElementProperties(fields["properties"]),
	}
}

func decodeEdge(v any) any {
	fields, ok := v.(map[string]any)
	if !ok {
		return v
	}
	label, _ := fields["label"].(string)
	inVLabel, _ := fields["inVLabel"].(string)
	outVLabel, _ := fields["outVLabel"].(string)
	return graph.Edge{
		ID:         Value(fields["id"]),
		Label:      label,
		InVertex:   graph.Vertex{ID: Value(fields["inV"]), Label: inVLabel},
		OutVertex:  graph.Vertex{ID: Value(fields["outV"]), Label: outVLabel},
		Properties: decodeElementProperties(fields["properties"]),
	}
}

func decodeVertexProperty(v any) any {
	fields, ok := v.(map[string]any)
	if !ok {
		return v
	}
	label, _ := fields["label"].(string)
	vp := graph.VertexProperty{
		ID:    Value(fields["id"]),
		Label: label,
		Value: Value(fields["value"]),
	}
	if vertexID, exists := fields["vertex"]; exists {
		vp.Vertex = &graph.Vertex{ID: Value(vertexID)}
	}
	if meta, ok := fields["properties"].(map[string]any); ok {
		vp.Properties = make(map[string]any, len(meta))
		for key, value := range meta {
			vp.Properties[key] = Value(value)
		}
	}
	return vp
}

func decodePath(v any) any {
	fields, ok := v.(map[string]any)
	if !ok {
		return v
	}
	path := graph.Path{}
	if labelSets, ok := Value(fields["labels"]).([]any); ok {
		path.Labels = make([][]string, len(labelSets))
		for i, rawSet := range labelSets {
			path.Labels[i] = stringSet(rawSet)
		}
	}
	if objects, ok := Value(fields["objects"]).([]any); ok {
		path.Objects = objects
	}
	return path
}

func stringSet(v any) []string {
	var elements []any
	switch typed := v.(type) {
	case graph.Set:
		elements = typed
	case []any:
		elements = typed
	default:
		return nil
	}
	labels := make([]string, 0, len(elements))
	for _, element := range elements {
		if s, ok := element.(string); ok {
			labels = append(labels, s)
		}
	}
	return labels
}

// decodeElementProperties converts a vertex or edge properties mapping into a
// map from property key to the ordered list of decoded values. Each entry in
// the source map is a list of property objects whose nested @value carries the
// actual value.
func decodeElementProperties(v any) map[string][]any {
	props, ok := v.(map[string]any)
	if !ok || len(props) == 0 {
		return nil
	}
	out := make(map[string][]any, len(props))
	for key, rawList := range props {
		objects, ok := rawList.([]any)
		if !ok {
			continue
		}
		values := make([]any, 0, len(objects))
		for _, obj := range objects {
			values = append(values, propertyValue(obj))
		}
		out[key] = values
	}
	return out
}

func propertyValue(obj any) any {
	wrapper, ok := obj.(map[string]any)
	if !ok {
		return Value(obj)
	}
	// Typed property object: g:VertexProperty or g:Property
	if inner, ok := wrapper["@value"].(map[string]any); ok {
		if value, exists := inner["value"]; exists {
			return Value(value)
		}
	}
	// Untyped property object carrying a bare value field
	if value, exists := wrapper["value"]; exists {
		return Value(value)
	}
	return Value(obj)
}
