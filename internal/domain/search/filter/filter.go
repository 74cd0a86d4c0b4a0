package filter

import "fmt"

// MaxConditions is the maximum number of conditions in one expression.
const MaxConditions = 16

// Op is a predicate operator.
type Op string

// Supported operators.
const (
	OpEq  Op = "eq"
	OpGte Op = "gte"
)

// Expression is a conjunction (logical AND) of conditions.
// The zero value is the empty expression, which means "no filter".
type Expression struct {
	conditions []Condition
}

// NewExpression validates and creates a conjunctive Expression.
// Each key may appear at most once.
func NewExpression(conditions ...Condition) (Expression, error) {
	if len(conditions) > MaxConditions {
		return Expression{}, fmt.Errorf("too many filter conditions (max %d)", MaxConditions)
	}
	seen := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		if c.key == "" {
			return Expression{}, fmt.Errorf("filter key is required")
		}
		if _, dup := seen[c.key]; dup {
			return Expression{}, fmt.Errorf("duplicate filter key %q", c.key)
		}
		seen[c.key] = struct{}{}
	}
	return Expression{conditions: conditions}, nil
}

// Conditions returns the conditions in insertion order.
func (e Expression) Conditions() []Condition { return e.conditions }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.conditions) == 0 }

// Predicate is the provider-neutral form of one condition.
type Predicate map[Op]any

// Predicates renders the expression as {field: {op: value}}.
// Returns nil for the empty expression so callers never send an empty filter object.
func (e Expression) Predicates() map[string]Predicate {
	if e.IsEmpty() {
		return nil
	}
	out := make(map[string]Predicate, len(e.conditions))
	for _, c := range e.conditions {
		switch c.op {
		case OpEq:
			out[c.key] = Predicate{OpEq: c.str}
		case OpGte:
			out[c.key] = Predicate{OpGte: c.num}
		}
	}
	return out
}

// Condition is a single field constraint: string equality or numeric lower bound.
type Condition struct {
	key string
	op  Op
	str string
	num float64
}

// Eq creates an exact match condition.
func Eq(key, value string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if value == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, op: OpEq, str: value}, nil
}

// Gte creates an inclusive lower bound condition.
func Gte(key string, value float64) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, op: OpGte, num: value}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Op returns the operator.
func (c Condition) Op() Op { return c.op }

// Value returns the string operand of an Eq condition.
func (c Condition) Value() string { return c.str }

// Bound returns the numeric operand of a Gte condition.
func (c Condition) Bound() float64 { return c.num }

// IsEq reports whether this is an equality condition.
func (c Condition) IsEq() bool { return c.op == OpEq }

// IsGte reports whether this is a lower bound condition.
func (c Condition) IsGte() bool { return c.op == OpGte }
