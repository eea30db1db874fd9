package traversal

// Predicate is a comparison applied by filtering steps such as has and where.
// It renders as a bare function call, e.g. gt(100) or within('a', 'b').
type Predicate struct {
	Name string
	Args []any
}

// Eq matches values equal to v.
func Eq(v any) Predicate { return Predicate{Name: "eq", Args: []any{v}} }

// Neq matches values not equal to v.
func Neq(v any) Predicate { return Predicate{Name: "neq", Args: []any{v}} }

// Gt matches values greater than v.
func Gt(v any) Predicate { return Predicate{Name: "gt", Args: []any{v}} }

// Gte matches values greater than or equal to v.
func Gte(v any) Predicate { return Predicate{Name: "gte", Args: []any{v}} }

// Lt matches values less than v.
func Lt(v any) Predicate { return Predicate{Name: "lt", Args: []any{v}} }

// Within matches values contained in the given values or Range.
func Within(values ...any) Predicate { return Predicate{Name: "within", Args: values} }

// Without matches values not contained in the given values or Range.
func Without(values ...any) Predicate { return Predicate{Name: "without", Args: values} }
