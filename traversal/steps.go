package traversal

// Step methods are thin recorders: each appends one named step with its
// arguments and returns the extended traversal. Argument shapes follow the
// Gremlin step signatures; the encoder is responsible for rendering them.

// V starts or continues traversal at the vertices with the given ids, or all
// vertices when no id is given.
func (t Traversal) V(ids ...any) Traversal { return t.add("V", ids...) }

// E starts or continues traversal at the edges with the given ids.
func (t Traversal) E(ids ...any) Traversal { return t.add("E", ids...) }

// AddV adds a vertex with the given label.
func (t Traversal) AddV(label string) Traversal { return t.add("addV", label) }

// AddE adds an edge with the given label.
func (t Traversal) AddE(label string) Traversal { return t.add("addE", label) }

// Property sets a property. An optional leading cardinality token
// (CardinalitySingle, CardinalityList, CardinalitySet) may precede the
// key/value pair.
func (t Traversal) Property(args ...any) Traversal { return t.add("property", args...) }

// Filtering steps

// Has filters by property key, key/value, or key/predicate.
func (t Traversal) Has(args ...any) Traversal { return t.add("has", args...) }

// HasLabel filters elements by label.
func (t Traversal) HasLabel(labels ...any) Traversal { return t.add("hasLabel", labels...) }

// HasID filters elements by id.
func (t Traversal) HasID(ids ...any) Traversal { return t.add("hasId", ids...) }

// HasKey filters properties by key.
func (t Traversal) HasKey(keys ...any) Traversal { return t.add("hasKey", keys...) }

// HasNot filters out elements carrying the given property key.
func (t Traversal) HasNot(key string) Traversal { return t.add("hasNot", key) }

// Where filters with a nested traversal or predicate.
func (t Traversal) Where(arg any) Traversal { return t.add("where", arg) }

// Is filters the current value by equality or predicate.
func (t Traversal) Is(arg any) Traversal { return t.add("is", arg) }

// Not filters out traversers for which the nested traversal yields a result.
func (t Traversal) Not(arg any) Traversal { return t.add("not", arg) }

// Movement steps

// Out moves to outgoing adjacent vertices, optionally filtered by edge label.
func (t Traversal) Out(labels ...any) Traversal { return t.add("out", labels...) }

// In moves to incoming adjacent vertices.
func (t Traversal) In(labels ...any) Traversal { return t.add("in", labels...) }

// Both moves to adjacent vertices in both directions.
func (t Traversal) Both(labels ...any) Traversal { return t.add("both", labels...) }

// OutE moves to outgoing incident edges.
func (t Traversal) OutE(labels ...any) Traversal { return t.add("outE", labels...) }

// InE moves to incoming incident edges.
func (t Traversal) InE(labels ...any) Traversal { return t.add("inE", labels...) }

// BothE moves to incident edges in both directions.
func (t Traversal) BothE(labels ...any) Traversal { return t.add("bothE", labels...) }

// OutV moves to the outgoing vertex of an edge.
func (t Traversal) OutV() Traversal { return t.add("outV") }

// InV moves to the incoming vertex of an edge.
func (t Traversal) InV() Traversal { return t.add("inV") }

// BothV moves to both vertices of an edge.
func (t Traversal) BothV() Traversal { return t.add("bothV") }

// OtherV moves to the vertex that was not the vertex moved from.
func (t Traversal) OtherV() Traversal { return t.add("otherV") }

// To specifies the target of an addE step; accepts a vertex handle or
// traversal.
func (t Traversal) To(target any) Traversal { return t.add("to", target) }

// From specifies the source of an addE step.
func (t Traversal) From(source any) Traversal { return t.add("from", source) }

// Composition steps

// And requires all nested traversals to yield a result.
func (t Traversal) And(args ...any) Traversal { return t.add("and", args...) }

// Or requires at least one nested traversal to yield a result.
func (t Traversal) Or(args ...any) Traversal { return t.add("or", args...) }

// Coalesce evaluates nested traversals in order and emits the first that
// yields a result.
func (t Traversal) Coalesce(args ...any) Traversal { return t.add("coalesce", args...) }

// Union merges the results of the nested traversals.
func (t Traversal) Union(args ...any) Traversal { return t.add("union", args...) }

// Choose routes traversers through branches.
func (t Traversal) Choose(args ...any) Traversal { return t.add("choose", args...) }

// Reshaping steps

// Fold folds the stream into a single list.
func (t Traversal) Fold() Traversal { return t.add("fold") }

// Unfold unfolds a list back into a stream.
func (t Traversal) Unfold() Traversal { return t.add("unfold") }

// Project projects the current value into a map with the given keys; follow
// with By steps to populate each key.
func (t Traversal) Project(keys ...string) Traversal {
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = key
	}
	return t.add("project", args...)
}

// By modulates the previous step.
func (t Traversal) By(args ...any) Traversal { return t.add("by", args...) }

// Select selects labeled steps or map keys.
func (t Traversal) Select(args ...any) Traversal { return t.add("select", args...) }

// As labels the current step for later reference.
func (t Traversal) As(label string) Traversal { return t.add("as", label) }

// Group groups the stream into a map.
func (t Traversal) Group() Traversal { return t.add("group") }

// GroupCount groups and counts the stream.
func (t Traversal) GroupCount() Traversal { return t.add("groupCount") }

// Aggregate collects the stream into the named side-effect.
func (t Traversal) Aggregate(label string) Traversal { return t.add("aggregate", label) }

// Store lazily collects the stream into the named side-effect.
func (t Traversal) Store(label string) Traversal { return t.add("store", label) }

// Cap emits the named side-effect.
func (t Traversal) Cap(label string) Traversal { return t.add("cap", label) }

// Paging steps

// Limit restricts the stream to the first n traversers.
func (t Traversal) Limit(n int) Traversal { return t.add("limit", n) }

// Range restricts the stream to the traversers between low and high.
func (t Traversal) Range(low, high int) Traversal { return t.add("range", low, high) }

// Tail restricts the stream to the last n traversers.
func (t Traversal) Tail(n int) Traversal { return t.add("tail", n) }

// Dedup removes duplicate traversers.
func (t Traversal) Dedup() Traversal { return t.add("dedup") }

// Flow steps

// Repeat loops over the nested traversal.
func (t Traversal) Repeat(arg any) Traversal { return t.add("repeat", arg) }

// Until bounds a repeat by a condition.
func (t Traversal) Until(arg any) Traversal { return t.add("until", arg) }

// Emit emits traversers from inside a repeat.
func (t Traversal) Emit(args ...any) Traversal { return t.add("emit", args...) }

// Times bounds a repeat by iteration count.
func (t Traversal) Times(n int) Traversal { return t.add("times", n) }

// Loops emits the current loop counter.
func (t Traversal) Loops() Traversal { return t.add("loops") }

// SideEffect runs the nested traversal without altering the stream.
func (t Traversal) SideEffect(arg any) Traversal { return t.add("sideEffect", arg) }

// Local applies the nested traversal per-object rather than per-stream.
func (t Traversal) Local(arg any) Traversal { return t.add("local", arg) }

// Barrier turns a lazy stream into a bulk-synchronized one.
func (t Traversal) Barrier() Traversal { return t.add("barrier") }

// Terminal and value steps

// ToList materializes the stream as a list.
func (t Traversal) ToList() Traversal { return t.add("toList") }

// ToSet materializes the stream as a set.
func (t Traversal) ToSet() Traversal { return t.add("toSet") }

// ToBulkSet materializes the stream as a bulk set.
func (t Traversal) ToBulkSet() Traversal { return t.add("toBulkSet") }

// Next emits the next result.
func (t Traversal) Next(args ...any) Traversal { return t.add("next", args...) }

// HasNext reports whether another result is available.
func (t Traversal) HasNext() Traversal { return t.add("hasNext") }

// Drop removes the current elements from the graph.
func (t Traversal) Drop() Traversal { return t.add("drop") }

// Iterate exhausts the stream for its side effects.
func (t Traversal) Iterate() Traversal { return t.add("iterate") }

// Count counts the traversers in the stream.
func (t Traversal) Count() Traversal { return t.add("count") }

// Sum sums the stream.
func (t Traversal) Sum() Traversal { return t.add("sum") }

// Min emits the minimum of the stream.
func (t Traversal) Min() Traversal { return t.add("min") }

// Max emits the maximum of the stream.
func (t Traversal) Max() Traversal { return t.add("max") }

// Label emits the element label.
func (t Traversal) Label() Traversal { return t.add("label") }

// ID emits the element id.
func (t Traversal) ID() Traversal { return t.add("id") }

// Key emits the property key.
func (t Traversal) Key() Traversal { return t.add("key") }

// Values emits the property values for the given keys.
func (t Traversal) Values(keys ...any) Traversal { return t.add("values", keys...) }

// ValueMap emits a map of property keys to values.
func (t Traversal) ValueMap(args ...any) Traversal { return t.add("valueMap", args...) }

// ElementMap emits a flattened map view of the element.
func (t Traversal) ElementMap(args ...any) Traversal { return t.add("elementMap", args...) }

// Path emits the traverser's path.
func (t Traversal) Path() Traversal { return t.add("path") }

// SimplePath filters out traversers with repeated objects in their path.
func (t Traversal) SimplePath() Traversal { return t.add("simplePath") }

// CyclicPath filters to traversers with repeated objects in their path.
func (t Traversal) CyclicPath() Traversal { return t.add("cyclicPath") }

// Datetime parses a datetime literal.
func (t Traversal) Datetime(value string) Traversal { return t.add("datetime", value) }

// Constant maps every traverser to the given value.
func (t Traversal) Constant(value any) Traversal { return t.add("constant", value) }

// Identity emits the current value unchanged.
func (t Traversal) Identity() Traversal { return t.add("identity") }

// Order orders the stream; modulate with By and order tokens.
func (t Traversal) Order() Traversal { return t.add("order") }
