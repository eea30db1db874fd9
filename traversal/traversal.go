// Package traversal provides a fluent, compositional builder for Gremlin
// traversals and the encoder that compiles them to Gremlin-Groovy source.
//
// A Traversal is a pure value: every step method returns a new Traversal with
// one step appended and never mutates its receiver, so traversal prefixes can
// be shared freely between goroutines. Execution is deferred until the value
// is encoded and submitted through the client.
package traversal

// Step records one Gremlin method call as a name plus its ordered arguments.
type Step struct {
	Name string
	Args []any
}

// Traversal is an ordered, append-only sequence of steps. The zero value is
// an empty rooted traversal; use Anonymous for the __ form.
type Traversal struct {
	steps []Step
}

// anonymousMarker is the pseudo-step recorded as the first step of an
// anonymous traversal. The encoder consumes it without emitting a call.
const anonymousMarker = "__"

// Root returns an empty rooted traversal whose emitted source begins with g,
// the global traversal source.
func Root() Traversal {
	return Traversal{}
}

// Anonymous returns a traversal whose emitted source begins with __. It is
// only valid as an argument nested inside another traversal; encoding it at
// top level is a programmer error.
func Anonymous() Traversal {
	return Traversal{steps: []Step{{Name: anonymousMarker}}}
}

// Steps returns a copy of the recorded step sequence.
func (t Traversal) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// IsAnonymous reports whether the traversal's first recorded step is the
// anonymous marker.
func (t Traversal) IsAnonymous() bool {
	return len(t.steps) > 0 && t.steps[0].Name == anonymousMarker
}

// add returns a new traversal with one step appended. The backing array is
// copied so the receiver is never aliased.
func (t Traversal) add(name string, args ...any) Traversal {
	steps := make([]Step, len(t.steps), len(t.steps)+1)
	copy(steps, t.steps)
	return Traversal{steps: append(steps, Step{Name: name, Args: args})}
}
