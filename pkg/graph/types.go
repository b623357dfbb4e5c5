package graph

import (
	"fmt"
	"math"
	"strconv"
)

// Kind represents the type of an attribute value
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

// Value represents a typed attribute value
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// Helper functions to create typed values
func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// Decode methods
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value is not a string")
	}
	return v.s, nil
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("value is not an int")
	}
	return v.i, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("value is not a float")
	}
	return v.f, nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("value is not a bool")
	}
	return v.b, nil
}

// String renders the value for display and export, whatever its kind.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	default:
		return false
	}
}

// Well-known attribute keys. "sign" is the canonical edge sign; "interaction"
// is the legacy spelling normalized away at ingestion.
const (
	AttrSign        = "sign"
	AttrInteraction = "interaction"
	AttrType        = "type"
	AttrColor       = "color"
	AttrFillColor   = "fillcolor"
	AttrShape       = "shape"
	AttrStyle       = "style"
	AttrPenWidth    = "penwidth"
	AttrWeight      = "weight"
	AttrEffect      = "effect"
)

// Attrs is the attribute mapping carried by every node and edge.
type Attrs map[string]Value

// Clone creates a deep copy of the attribute mapping.
func (a Attrs) Clone() Attrs {
	clone := make(Attrs, len(a))
	for k, v := range a {
		clone[k] = v
	}
	return clone
}

// Equal reports whether two attribute mappings hold the same keys and values.
func (a Attrs) Equal(o Attrs) bool {
	if len(a) != len(o) {
		return false
	}
	for k, v := range a {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Node represents a vertex in the network
type Node struct {
	ID    string
	Attrs Attrs
}

// Edge represents an interaction between two nodes
type Edge struct {
	From  string
	To    string
	Attrs Attrs
}

// Clone creates a deep copy of a node
func (n *Node) Clone() *Node {
	return &Node{ID: n.ID, Attrs: n.Attrs.Clone()}
}

// Attr gets an attribute value
func (n *Node) Attr(key string) (Value, bool) {
	val, ok := n.Attrs[key]
	return val, ok
}

// SetAttr sets an attribute value
func (n *Node) SetAttr(key string, v Value) {
	n.Attrs[key] = v
}

// Clone creates a deep copy of an edge
func (e *Edge) Clone() *Edge {
	return &Edge{From: e.From, To: e.To, Attrs: e.Attrs.Clone()}
}

// Attr gets an attribute value
func (e *Edge) Attr(key string) (Value, bool) {
	val, ok := e.Attrs[key]
	return val, ok
}

// SetAttr sets an attribute value
func (e *Edge) SetAttr(key string, v Value) {
	e.Attrs[key] = v
}

// Sign returns the canonical edge sign and whether any sign information is
// present. Numeric values coerce to int64; non-integral floats and values of
// other kinds report 0, which downstream styling treats as neutral.
func (e *Edge) Sign() (int64, bool) {
	v, ok := e.Attrs[AttrSign]
	if !ok {
		return 0, false
	}
	return coerceSign(v), true
}

func coerceSign(v Value) int64 {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		if v.f == math.Trunc(v.f) && !math.IsInf(v.f, 0) {
			return int64(v.f)
		}
		return 0
	case KindString:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.s, 64); err == nil && f == math.Trunc(f) {
			return int64(f)
		}
		return 0
	default:
		return 0
	}
}

// normalizeAttrs rewrites a legacy "interaction" attribute to the canonical
// "sign" key. The legacy key wins over an existing "sign" because callers that
// still set it expect the rename semantics.
func normalizeAttrs(attrs Attrs) {
	if v, ok := attrs[AttrInteraction]; ok {
		delete(attrs, AttrInteraction)
		attrs[AttrSign] = v
	}
}
