package harmonia_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vsariola/harmonia"
)

func testForest() harmonia.Forest {
	return harmonia.Forest{
		"root":  {ID: "root", Scale: harmonia.DegreeScale(0, 2, 4, 5, 7, 9, 11)},
		"a":     {ID: "a", Parent: "root", Scale: harmonia.DegreeScale(0, 2, 4)},
		"a1":    {ID: "a1", Parent: "a", Scale: harmonia.DegreeScale(0, 1)},
		"a2":    {ID: "a2", Parent: "a", Scale: harmonia.DegreeScale(2)},
		"b":     {ID: "b", Parent: "root", Scale: harmonia.DegreeScale(1, 3, 5)},
		"other": {ID: "other", Scale: harmonia.DegreeScale(0, 7)},
	}
}

func TestAncestors(t *testing.T) {
	f := testForest()
	got, err := f.Ancestors("a1")
	if err != nil {
		t.Fatalf("Ancestors failed: %v", err)
	}
	if expected := []harmonia.NodeID{"root", "a"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("got ancestors %v, expected %v", got, expected)
	}
	got, err = f.Ancestors("root")
	if err != nil || len(got) != 0 {
		t.Fatalf("a root should have no ancestors, got %v, %v", got, err)
	}
	if _, err := f.Ancestors("nope"); !errors.Is(err, harmonia.ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
	f["x"] = harmonia.ScaleNode{ID: "x", Parent: "y"}
	f["y"] = harmonia.ScaleNode{ID: "y", Parent: "x"}
	if _, err := f.Ancestors("x"); !errors.Is(err, harmonia.ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestChildrenAndRoots(t *testing.T) {
	f := testForest()
	if got, expected := f.Children("a"), []harmonia.NodeID{"a1", "a2"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("got children %v, expected %v", got, expected)
	}
	if got, expected := f.Roots(), []harmonia.NodeID{"other", "root"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("got roots %v, expected %v", got, expected)
	}
}

func TestInsert(t *testing.T) {
	f := testForest()
	g, err := f.Insert(harmonia.ScaleNode{ID: "c", Parent: "b", Scale: harmonia.DegreeScale(0)})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if _, ok := g["c"]; !ok {
		t.Fatalf("inserted node missing")
	}
	if _, ok := f["c"]; ok {
		t.Fatalf("Insert modified the original forest")
	}
	if _, err := f.Insert(harmonia.ScaleNode{ID: "a"}); !errors.Is(err, harmonia.ErrDuplicateNode) {
		t.Fatalf("expected ErrDuplicateNode, got %v", err)
	}
	if _, err := f.Insert(harmonia.ScaleNode{ID: "c", Parent: "nope"}); !errors.Is(err, harmonia.ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
	if _, err := f.Insert(harmonia.ScaleNode{}); err == nil {
		t.Fatalf("inserting a node without id should fail")
	}
	if _, err := f.Insert(harmonia.ScaleNode{ID: harmonia.NewNodeID()}); err != nil {
		t.Fatalf("inserting a new root failed: %v", err)
	}
}

func TestDeleteCascades(t *testing.T) {
	f := testForest()
	g := f.Delete("a")
	for _, id := range []harmonia.NodeID{"a", "a1", "a2"} {
		if _, ok := g[id]; ok {
			t.Fatalf("%v should have been deleted", id)
		}
	}
	if len(g) != 3 {
		t.Fatalf("expected 3 nodes left, got %v", len(g))
	}
	if len(f) != 6 {
		t.Fatalf("Delete modified the original forest")
	}
	if h := f.Delete("nope"); len(h) != len(f) {
		t.Fatalf("deleting a missing node should not change anything")
	}
	f["x"] = harmonia.ScaleNode{ID: "x", Parent: "y"}
	f["y"] = harmonia.ScaleNode{ID: "y", Parent: "x"}
	if h := f.Delete("x"); len(h) != 6 {
		t.Fatalf("deleting a cycle should delete both nodes, got %v nodes", len(h))
	}
}

func TestReparent(t *testing.T) {
	f := testForest()
	g, err := f.Reparent("a2", "b")
	if err != nil {
		t.Fatalf("Reparent failed: %v", err)
	}
	if g["a2"].Parent != "b" || f["a2"].Parent != "a" {
		t.Fatalf("Reparent did not work on a copy")
	}
	if _, err := f.Reparent("a", "a1"); !errors.Is(err, harmonia.ErrCycle) {
		t.Fatalf("moving a node under its descendant should fail with ErrCycle, got %v", err)
	}
	if _, err := f.Reparent("a", "a"); !errors.Is(err, harmonia.ErrCycle) {
		t.Fatalf("moving a node under itself should fail with ErrCycle, got %v", err)
	}
	g, err = f.Reparent("a", "")
	if err != nil || !g["a"].IsRoot() {
		t.Fatalf("making a root failed: %v", err)
	}
	if g["a1"].IsRoot() || f["a"].IsRoot() {
		t.Fatalf("only the reparented node should become a root")
	}
}

func TestReplaceKeepsParent(t *testing.T) {
	f := testForest()
	g, err := f.Replace(harmonia.ScaleNode{ID: "a", Parent: "other", Scale: harmonia.DegreeScale(1)})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if g["a"].Parent != "root" || !reflect.DeepEqual(g["a"].Scale, harmonia.DegreeScale(1)) {
		t.Fatalf("unexpected replaced node %v", g["a"])
	}
	if _, err := f.Replace(harmonia.ScaleNode{ID: "nope"}); !errors.Is(err, harmonia.ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	f := testForest()
	if err := f.Validate(); err != nil {
		t.Fatalf("valid forest failed to validate: %v", err)
	}
	f["bad"] = harmonia.ScaleNode{ID: "bad", Parent: "gone"}
	if err := f.Validate(); !errors.Is(err, harmonia.ErrUnknownNode) {
		t.Fatalf("expected ErrUnknownNode, got %v", err)
	}
}

func TestCopyIsDeep(t *testing.T) {
	f := testForest()
	g := f.Copy()
	g["a"].Scale[0].Degree = 5
	if f["a"].Scale[0].Degree != 0 {
		t.Fatalf("Copy shares the scale slices")
	}
}
