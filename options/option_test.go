package options

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

type optAlpha struct{ Base[int] }

func (o *optAlpha) Name() string { return "A" }

// optBetaLikeAlpha mirrors optAlpha's effective value until it is set
// itself, the cross-option resolution case.
type optBetaLikeAlpha struct{ Base[int] }

func (o *optBetaLikeAlpha) Name() string { return "B" }

func (o *optBetaLikeAlpha) Resolve() (int, bool) {
	if v, ok := o.RawValue(); ok {
		return v, true
	}
	return GetValue2[optAlpha](o.Registry())
}

// GetValue2 adapts GetValue to the (value, ok) shape Resolve wants.
func GetValue2[T any, PT TypedOption[T, int]](r *Registry) (int, bool) {
	v, err := GetValue[T, int, PT](r)
	return v, err == nil
}

type optDataDir struct{ Base[string] }

func (o *optDataDir) Name() string        { return "data-dir,d" }
func (o *optDataDir) Description() string { return "Data directory" }

// optDataFile resolves relative paths against the data directory.
type optDataFile struct{ Base[string] }

func (o *optDataFile) Name() string { return "data-file" }

func (o *optDataFile) DefaultValue() (string, bool) { return "raw_data.root", true }

func (o *optDataFile) Resolve() (string, bool) {
	raw, ok := o.RawValue()
	if !ok {
		return "", false
	}
	if filepath.IsAbs(raw) {
		return raw, true
	}
	dir := GetValueOr[optDataDir, string](o.Registry(), "")
	if dir == "" {
		return raw, true
	}
	return filepath.Join(dir, raw), true
}

type optPositive struct{ Base[float64] }

func (o *optPositive) Name() string                  { return "x" }
func (o *optPositive) DefaultValue() (float64, bool) { return 1.0, true }

// optNonNegative refines optPositive with a validity predicate.
type optNonNegative struct{ optPositive }

func (o *optNonNegative) Validate() error {
	v, ok := o.RawValue()
	if !ok {
		return nil
	}
	if v < 0 {
		return fmt.Errorf("value %v must not be negative", v)
	}
	return nil
}

func TestSwitchDefaults(t *testing.T) {
	r := New().MustDeclare(Of[optBatch]())

	v, err := GetValue[optBatch, bool](r)
	if err != nil {
		t.Fatalf("GetValue failed: %v", err)
	}
	if v {
		t.Error("unset switch must default to false")
	}

	if err := r.Parse(map[string]any{"batch": "true"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v, _ := GetValue[optBatch, bool](r); !v {
		t.Error("expected switch true after parse")
	}

	if err := r.Set("b", "0"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, _ := GetValue[optBatch, bool](r); v {
		t.Error("explicit '0' must turn the switch off")
	}
}

func TestRawValueVersusValue(t *testing.T) {
	r := New().MustDeclare(Of[optDataDir](), Of[optDataFile]())

	if err := SetValue[optDataDir, string](r, "/data"); err != nil {
		t.Fatal(err)
	}

	opt, err := Get[optDataFile](r)
	if err != nil {
		t.Fatal(err)
	}
	if raw, _ := opt.RawValue(); raw != "raw_data.root" {
		t.Errorf("raw value must skip post-processing, got %q", raw)
	}
	if v, _ := opt.Value(); v != filepath.Join("/data", "raw_data.root") {
		t.Errorf("effective value must be post-processed, got %q", v)
	}

	// absolute paths pass through untouched
	if err := SetValue[optDataFile, string](r, "/abs/file.root"); err != nil {
		t.Fatal(err)
	}
	if v, _ := opt.Value(); v != "/abs/file.root" {
		t.Errorf("expected absolute path untouched, got %q", v)
	}
}

func TestCrossOptionResolution(t *testing.T) {
	r := New().MustDeclare(Of[optAlpha](), Of[optBetaLikeAlpha]())

	if err := SetValue[optAlpha, int](r, 12); err != nil {
		t.Fatal(err)
	}

	if v, _ := GetValue[optBetaLikeAlpha, int](r); v != 12 {
		t.Errorf("unset B must mirror A, got %d", v)
	}

	if err := SetValue[optBetaLikeAlpha, int](r, 3); err != nil {
		t.Fatal(err)
	}
	if v, _ := GetValue[optBetaLikeAlpha, int](r); v != 3 {
		t.Errorf("set B must win over A, got %d", v)
	}
}

func TestValidationRunsAtParse(t *testing.T) {
	r := New().MustDeclare(Of[optPositive](), Of[optNonNegative]())

	err := r.Parse(map[string]any{"x": "-2"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// the refined predicate is reachable through the base view too
	if err := r.Parse(map[string]any{"x": "2"}); err != nil {
		t.Fatalf("Parse of valid value failed: %v", err)
	}
	if v, _ := GetValue[optPositive, float64](r); v != 2 {
		t.Errorf("expected 2, got %v", v)
	}
}

func TestCheckValidSkipsValueless(t *testing.T) {
	r := New().MustDeclare(Of[optBetaLikeAlpha]())

	// no specified and no default value: the predicate must not run
	if err := r.CheckValid(); err != nil {
		t.Fatalf("CheckValid on valueless option failed: %v", err)
	}
}

func TestDerivedValidatorThroughBaseDeclaredAfter(t *testing.T) {
	// declaring the parent after the child must keep the child's
	// validity predicate active
	r := New().MustDeclare(Of[optNonNegative](), Of[optPositive]())

	if err := SetValue[optPositive, float64](r, -1); err != nil {
		t.Fatal(err)
	}
	if err := r.CheckValid(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation through shadowed parent, got %v", err)
	}
}
