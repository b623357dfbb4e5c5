package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := NewDirected()

	n := g.AddNode("EGFR")
	if n == nil {
		t.Fatal("AddNode returned nil")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}

	n.SetAttr(AttrType, StringValue("source"))

	again := g.AddNode("EGFR")
	if again != n {
		t.Error("re-adding an existing node should return the same node")
	}
	if v, ok := again.Attr(AttrType); !ok || v.String() != "source" {
		t.Error("re-adding an existing node must not reset its attributes")
	}
}

func TestAddEdge(t *testing.T) {
	g := NewDirected()

	e := g.AddEdge("A", "B", Attrs{AttrSign: IntValue(1)})
	if e == nil {
		t.Fatal("AddEdge returned nil")
	}
	if !g.HasNode("A") || !g.HasNode("B") {
		t.Error("AddEdge should create missing endpoints")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}

	got, ok := g.Edge("A", "B")
	if !ok {
		t.Fatal("Edge lookup failed")
	}
	if sign, present := got.Sign(); !present || sign != 1 {
		t.Errorf("Sign = (%d, %v), want (1, true)", sign, present)
	}

	if _, ok := g.Edge("B", "A"); ok {
		t.Error("directed network should not match the reverse orientation")
	}
}

func TestAddEdgeMergesAttrs(t *testing.T) {
	g := NewDirected()

	g.AddEdge("A", "B", Attrs{"weight": FloatValue(0.5)})
	g.AddEdge("A", "B", Attrs{AttrSign: IntValue(-1)})

	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1 after duplicate add", g.EdgeCount())
	}
	e, _ := g.Edge("A", "B")
	if _, ok := e.Attr("weight"); !ok {
		t.Error("merge dropped the original weight attribute")
	}
	if sign, _ := e.Sign(); sign != -1 {
		t.Errorf("sign = %d, want -1 after merge", sign)
	}
}

func TestInteractionNormalizedAtIngestion(t *testing.T) {
	g := NewDirected()

	e := g.AddEdge("A", "B", Attrs{AttrInteraction: IntValue(-1)})

	if _, ok := e.Attr(AttrInteraction); ok {
		t.Error("interaction attribute should be removed at ingestion")
	}
	sign, present := e.Sign()
	if !present || sign != -1 {
		t.Errorf("Sign = (%d, %v), want (-1, true)", sign, present)
	}
}

func TestInteractionWinsOverSign(t *testing.T) {
	g := NewDirected()

	e := g.AddEdge("A", "B", Attrs{
		AttrSign:        IntValue(1),
		AttrInteraction: IntValue(-1),
	})

	if sign, _ := e.Sign(); sign != -1 {
		t.Errorf("sign = %d, want -1 (legacy key has rename semantics)", sign)
	}
}

func TestUndirectedEdgeLookup(t *testing.T) {
	g := NewUndirected()

	g.AddEdge("A", "B", nil)

	if _, ok := g.Edge("B", "A"); !ok {
		t.Error("undirected network should match either orientation")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if len(g.Edges()) != 1 {
		t.Errorf("Edges() returned %d edges, want 1", len(g.Edges()))
	}
}

func TestNodeOrderIsInsertionOrder(t *testing.T) {
	g := NewDirected()
	for _, id := range []string{"C", "A", "B"} {
		g.AddNode(id)
	}

	want := []string{"C", "A", "B"}
	if got := g.NodeIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("NodeIDs = %v, want %v", got, want)
	}
}

func TestAdjacency(t *testing.T) {
	g := NewDirected()
	g.AddEdge("A", "B", nil)
	g.AddEdge("A", "C", nil)
	g.AddEdge("C", "A", nil)

	succ := g.Successors("A")
	if !reflect.DeepEqual(succ, []string{"B", "C"}) {
		t.Errorf("Successors(A) = %v, want [B C]", succ)
	}
	pred := g.Predecessors("A")
	if !reflect.DeepEqual(pred, []string{"C"}) {
		t.Errorf("Predecessors(A) = %v, want [C]", pred)
	}
	if g.OutDegree("A") != 2 {
		t.Errorf("OutDegree(A) = %d, want 2", g.OutDegree("A"))
	}
	if g.InDegree("A") != 1 {
		t.Errorf("InDegree(A) = %d, want 1", g.InDegree("A"))
	}
}

func TestSelfLoop(t *testing.T) {
	g := NewUndirected()
	g.AddEdge("A", "A", nil)

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if _, ok := g.Edge("A", "A"); !ok {
		t.Error("self loop lookup failed")
	}
}

func TestCloneIndependence(t *testing.T) {
	g := NewDirected()
	g.AddNode("A").SetAttr(AttrType, StringValue("source"))
	g.AddEdge("A", "B", Attrs{AttrSign: IntValue(1)})

	clone := g.Clone()
	if clone.NodeCount() != g.NodeCount() || clone.EdgeCount() != g.EdgeCount() {
		t.Fatalf("clone shape mismatch: %d/%d nodes, %d/%d edges",
			clone.NodeCount(), g.NodeCount(), clone.EdgeCount(), g.EdgeCount())
	}

	cn, _ := clone.Node("A")
	cn.SetAttr(AttrType, StringValue("target"))
	ce, _ := clone.Edge("A", "B")
	ce.SetAttr(AttrColor, StringValue("red"))
	clone.AddEdge("B", "C", nil)

	on, _ := g.Node("A")
	if v, _ := on.Attr(AttrType); v.String() != "source" {
		t.Error("mutating clone node attrs affected the original")
	}
	oe, _ := g.Edge("A", "B")
	if _, ok := oe.Attr(AttrColor); ok {
		t.Error("mutating clone edge attrs affected the original")
	}
	if g.HasNode("C") {
		t.Error("adding to clone affected the original")
	}
	if clone.Directed() != g.Directed() {
		t.Error("clone changed directedness")
	}
}

func TestErrorHelpers(t *testing.T) {
	err := EdgeNotFoundError("subnetwork", "A", "B")
	if !errors.Is(err, ErrEdgeNotFound) {
		t.Error("EdgeNotFoundError should match ErrEdgeNotFound")
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should be true for edge not found")
	}

	var ge *Error
	if !errors.As(err, &ge) {
		t.Fatal("error should unwrap to *Error")
	}
	if ge.From != "A" || ge.To != "B" {
		t.Errorf("structured fields = %q->%q, want A->B", ge.From, ge.To)
	}

	nerr := NodeNotFoundError("lookup", "X")
	if !errors.Is(nerr, ErrNodeNotFound) {
		t.Error("NodeNotFoundError should match ErrNodeNotFound")
	}
}
