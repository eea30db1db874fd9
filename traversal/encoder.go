package traversal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coingaming/gremlex/errors"
	"github.com/coingaming/gremlex/graph"
)

// Encode compiles a rooted traversal into Gremlin-Groovy source beginning
// with g, the global traversal source. Encoding an anonymous traversal at top
// level is a programmer error; anonymous traversals are only valid nested as
// step arguments.
func Encode(t Traversal) (string, error) {
	if t.IsAnonymous() {
		return "", errors.WrapInvalid(errors.ErrAnonymousTopLevel, "traversal", "Encode", "emit traversal")
	}
	return encode(t, "g")
}

// encode renders the step sequence onto the given initial accumulator. Nested
// traversals re-enter here with an empty accumulator (or g for rooted forms).
func encode(t Traversal, acc string) (string, error) {
	for _, step := range t.steps {
		if step.Name == anonymousMarker {
			if acc != "" {
				return "", errors.WrapInvalid(errors.ErrMisplacedAnonymous, "traversal", "Encode",
					"emit anonymous marker")
			}
			acc = anonymousMarker
			continue
		}

		args, err := renderArgs(step.Args)
		if err != nil {
			return "", err
		}

		call := step.Name + "(" + args + ")"
		if acc == "" {
			acc = call
		} else {
			acc = acc + "." + call
		}
	}
	return acc, nil
}

func renderArgs(args []any) (string, error) {
	rendered := make([]string, len(args))
	for i, arg := range args {
		fragment, err := renderArg(arg)
		if err != nil {
			return "", err
		}
		rendered[i] = fragment
	}
	return strings.Join(rendered, ", "), nil
}

// renderArg renders a single step argument to a Groovy source fragment.
// Strings are single-quoted with escaping so values can never break out of
// the literal; everything else follows the server DSL conventions.
func renderArg(arg any) (string, error) {
	switch v := arg.(type) {
	case nil:
		return "none", nil
	case string:
		return quote(v), nil
	case Token:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case Range:
		return fmt.Sprintf("%d..%d", v.Low, v.High), nil
	case Predicate:
		args, err := renderArgs(v.Args)
		if err != nil {
			return "", err
		}
		return v.Name + "(" + args + ")", nil
	case graph.Vertex:
		return renderVertex(v)
	case *graph.Vertex:
		if v == nil {
			return "none", nil
		}
		return renderVertex(*v)
	case Traversal:
		return renderNested(v)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = quote(s)
		}
		return strings.Join(quoted, ", "), nil
	case []any:
		return renderArgs(v)
	default:
		return "", errors.WrapInvalid(errors.ErrUnsupportedArg, "traversal", "Encode",
			fmt.Sprintf("render argument of type %T", arg))
	}
}

// renderVertex renders a vertex handle as a V(id) traversal argument so it
// can be passed to steps like to and from.
func renderVertex(v graph.Vertex) (string, error) {
	id, err := renderArg(v.ID)
	if err != nil {
		return "", err
	}
	return "V(" + id + ")", nil
}

// renderNested encodes a traversal argument. A nested traversal that starts
// with a V or E step uses the global source g to preserve server semantics;
// anything else starts from an empty accumulator, which yields the __ form
// for anonymous traversals.
func renderNested(t Traversal) (string, error) {
	if len(t.steps) > 0 {
		if name := t.steps[0].Name; name == "V" || name == "E" {
			return encode(t, "g")
		}
	}
	return encode(t, "")
}

// quote renders a string as a single-quoted Groovy literal, escaping any
// quote not already escaped by an odd number of preceding backslashes.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	backslashes := 0
	for _, r := range s {
		if r == '\'' && backslashes%2 == 0 {
			b.WriteByte('\\')
		}
		if r == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}
