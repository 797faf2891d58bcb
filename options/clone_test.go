package options

import (
	"testing"
)

func TestClonePreservesTypesAndValues(t *testing.T) {
	r := New().MustDeclare(Of[optMomentum](), Of[optMomentumTightCut](), Of[optInFile]())
	if err := SetValue[optInFile, string](r, "data.root"); err != nil {
		t.Fatal(err)
	}

	c, err := r.Clone()
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	if c.Len() != r.Len() {
		t.Fatalf("expected %d options in clone, got %d", r.Len(), c.Len())
	}
	// the most-derived implementation survives the copy
	if !IsDeclared[optMomentumTightCut](c) {
		t.Error("expected derived implementation in clone")
	}
	if v, _ := GetValue[optMomentum, float64](c); v != 25.4 {
		t.Errorf("expected derived default through base view in clone, got %v", v)
	}
	if v, _ := GetValue[optInFile, string](c); v != "data.root" {
		t.Errorf("expected specified value to survive clone, got %q", v)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := New().MustDeclare(Of[optInFile]())
	if err := SetValue[optInFile, string](r, "original.root"); err != nil {
		t.Fatal(err)
	}

	c := r.MustClone()

	if err := SetValue[optInFile, string](c, "clone.root"); err != nil {
		t.Fatal(err)
	}
	if v, _ := GetValue[optInFile, string](r); v != "original.root" {
		t.Errorf("mutating the clone leaked into the original: %q", v)
	}

	if err := SetValue[optInFile, string](r, "changed.root"); err != nil {
		t.Fatal(err)
	}
	if v, _ := GetValue[optInFile, string](c); v != "clone.root" {
		t.Errorf("mutating the original leaked into the clone: %q", v)
	}
}

func TestCloneRebindsBackReferences(t *testing.T) {
	r := New().MustDeclare(Of[optAlpha](), Of[optBetaLikeAlpha]())
	if err := SetValue[optAlpha, int](r, 12); err != nil {
		t.Fatal(err)
	}

	c := r.MustClone()

	// B is unset, so its effective value follows A through the
	// back-reference; it must read the clone's A, not the original's
	if err := SetValue[optAlpha, int](c, 77); err != nil {
		t.Fatal(err)
	}

	if v, _ := GetValue[optBetaLikeAlpha, int](c); v != 77 {
		t.Errorf("clone's back-reference still points at the original: got %d", v)
	}
	if v, _ := GetValue[optBetaLikeAlpha, int](r); v != 12 {
		t.Errorf("original's back-reference disturbed by clone: got %d", v)
	}
}

func TestCloneDeepCopiesCompositeValues(t *testing.T) {
	r := New().MustDeclare(Of[optTags]())
	if err := SetValue[optTags, []string](r, []string{"fast"}); err != nil {
		t.Fatal(err)
	}

	c := r.MustClone()

	orig, err := Get[optTags](r)
	if err != nil {
		t.Fatal(err)
	}
	tags, _ := orig.Value()
	tags[0] = "mutated"

	if v, _ := GetValue[optTags, []string](c); v[0] != "fast" {
		t.Errorf("clone shares backing storage with the original: %v", v)
	}
}

type optTags struct{ Base[[]string] }

func (o *optTags) Name() string { return "tags" }
