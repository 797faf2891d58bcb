package options

import (
	"reflect"
	"sort"

	"github.com/goliatone/go-optreg/logger"
)

var (
	DefaultCaption              = "Available options"
	DefaultLineLength           = 120
	DefaultMinDescriptionLength = 80
)

// Registry is an ordered collection of declared options. Declaration
// order is preserved across clones and drives the presentation surface.
// A Registry is not safe for concurrent mutation; callers needing shared
// access must serialize externally.
type Registry struct {
	caption     string
	lineLength  int
	minDescrLen int
	holders     []holder
	logger      logger.Logger
}

// New returns an empty registry with default presentation metadata.
func New() *Registry {
	return &Registry{
		caption:     DefaultCaption,
		lineLength:  DefaultLineLength,
		minDescrLen: DefaultMinDescriptionLength,
		logger:      logger.Noop(),
	}
}

func (r *Registry) WithCaption(caption string) *Registry {
	r.caption = caption
	return r
}

// WithLayout sets the help line length and minimum description column
// width consumed by WriteHelp.
func (r *Registry) WithLayout(lineLength, minDescriptionLength int) *Registry {
	r.lineLength = lineLength
	r.minDescrLen = minDescriptionLength
	return r
}

func (r *Registry) WithLogger(l logger.Logger) *Registry {
	if l != nil {
		r.logger = l
	}
	return r
}

// Decl is a single declaration step; Of and Group produce them so a
// whole application's options can be declared as one nested list.
type Decl func(r *Registry) error

// Of returns the declaration of a single option type.
func Of[T any, PT interface {
	*T
	Option
}]() Decl {
	return Declare[T, PT]
}

// Group flattens several declarations, including nested groups, into
// one. Members are declared left to right; the resolved end state does
// not depend on that order.
func Group(decls ...Decl) Decl {
	return func(r *Registry) error {
		for _, d := range decls {
			if d == nil {
				continue
			}
			if err := d(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// Declare runs each declaration against the registry, stopping at the
// first failure.
func (r *Registry) Declare(decls ...Decl) error {
	return Group(decls...)(r)
}

// MustDeclare is Declare panicking on failure, for chained setup of
// static option sets whose conflicts are programming errors.
func (r *Registry) MustDeclare(decls ...Decl) *Registry {
	if err := r.Declare(decls...); err != nil {
		panic(err)
	}
	return r
}

// Declare registers the option type T, running declaration resolution
// against every already-declared option: a duplicate or already-shadowed
// declaration is a no-op, a refinement of a declared ancestor replaces it
// in place, and a name collision between unrelated types is rejected.
func Declare[T any, PT interface {
	*T
	Option
}](r *Registry) error {
	h, err := makeHolder[T, PT](PT(new(T)), r)
	if err != nil {
		return err
	}
	return r.resolve(h)
}

// IsDeclared reports whether T, or a type derived from it, is declared.
func IsDeclared[T any, PT interface {
	*T
	Option
}](r *Registry) bool {
	_, _, err := r.findByType(reflect.TypeFor[T]())
	return err == nil
}

// Get returns the declared option reachable as T: the active instance
// when its concrete type is exactly T, or the embedded T view of the
// derived replacement. State is shared with the active instance either
// way, and overridable behavior still dispatches to the most-derived
// type.
func Get[T any, PT interface {
	*T
	Option
}](r *Registry) (PT, error) {
	h, path, err := r.findByType(reflect.TypeFor[T]())
	if err != nil {
		var none PT
		return none, opError("get", PT(new(T)).Name(), ErrNotDeclared, "option was not declared")
	}
	if path == nil {
		return h.opt.(PT), nil
	}
	return reflect.ValueOf(h.opt).Elem().FieldByIndex(path).Addr().Interface().(PT), nil
}

// IsSet reports whether the option reachable as T holds a specified
// value. It fails when the option was not declared.
func IsSet[T any, PT interface {
	*T
	Option
}](r *Registry) (bool, error) {
	h, _, err := r.findByType(reflect.TypeFor[T]())
	if err != nil {
		return false, opError("is set", PT(new(T)).Name(), ErrNotDeclared, "option was not declared")
	}
	return h.u.isSet(), nil
}

// TypedOption constrains PT to the pointer form of option type T with
// value type V. It is what the value accessors need from a declared
// type; any struct embedding Base[V] and implementing Name satisfies it.
type TypedOption[T any, V any] interface {
	*T
	Option
	Value() (V, bool)
	RawValue() (V, bool)
	Set(V)
}

// GetValue returns the effective value of the option reachable as T. It
// fails with ErrNotDeclared when no such option exists and with
// ErrNoValue when the option has neither a specified nor a default
// value.
func GetValue[T any, V any, PT TypedOption[T, V]](r *Registry) (V, error) {
	var zero V
	opt, err := Get[T, PT](r)
	if err != nil {
		return zero, err
	}
	v, ok := opt.Value()
	if !ok {
		return zero, opError("get value", opt.Name(), ErrNoValue, "neither specified nor default value")
	}
	return v, nil
}

// GetValueOr returns the effective value of the option reachable as T,
// or fallback when the option is missing or holds no value. It never
// fails.
func GetValueOr[T any, V any, PT TypedOption[T, V]](r *Registry, fallback V) V {
	v, err := GetValue[T, V, PT](r)
	if err != nil {
		return fallback
	}
	return v
}

// SetValue sets the specified value of the option reachable as T. No
// validity check is performed.
func SetValue[T any, V any, PT TypedOption[T, V]](r *Registry, v V) error {
	opt, err := Get[T, PT](r)
	if err != nil {
		return err
	}
	opt.Set(v)
	return nil
}

// DeclareAndSet declares T, which must not already be declared, and sets
// its value.
func DeclareAndSet[T any, V any, PT TypedOption[T, V]](r *Registry, v V) error {
	if IsDeclared[T, PT](r) {
		return opError("declare", PT(new(T)).Name(), ErrNameConflict, "option is already declared")
	}
	if err := Declare[T, PT](r); err != nil {
		return err
	}
	return SetValue[T, V, PT](r, v)
}

// Force sets the value of T, declaring it first when absent.
func Force[T any, V any, PT TypedOption[T, V]](r *Registry, v V) error {
	if err := Declare[T, PT](r); err != nil {
		return err
	}
	return SetValue[T, V, PT](r, v)
}

// Set accepts a raw value for a recognized long or short name, converting
// it to the option's value type. This is the entry point argument and
// config collaborators push parsed values through.
func (r *Registry) Set(key string, raw any) error {
	h := r.findByName(key)
	if h == nil {
		return opError("set", key, ErrNotDeclared, "no declared option matches")
	}
	return h.u.setRaw(raw)
}

// Parse distributes a raw key to value view over the declared options:
// every key must match a declared long or short name, and matching
// options get their specified value overwritten. Defaults are never
// inferred here. After all values are set, every option holding a value
// is validated.
func (r *Registry) Parse(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		h := r.findByName(key)
		if h == nil {
			return opError("parse", key, ErrParse, "unrecognized option")
		}
		r.logger.Debug("parse: set option %q", h.name.Long)
		if err := h.u.setRaw(values[key]); err != nil {
			return err
		}
	}

	return r.CheckValid()
}

// CheckValid runs the validity predicate of every option that currently
// holds a value, specified or default.
func (r *Registry) CheckValid() error {
	for i := range r.holders {
		if !r.holders[i].u.hasRaw() {
			continue
		}
		if err := r.holders[i].u.checkValid(); err != nil {
			return err
		}
	}
	return nil
}

// Clone deep-copies the registry: every option is reproduced with its
// most-derived type and state, and every back-reference is rebound to
// the clone before it is returned.
func (r *Registry) Clone() (*Registry, error) {
	nr := &Registry{
		caption:     r.caption,
		lineLength:  r.lineLength,
		minDescrLen: r.minDescrLen,
		logger:      r.logger,
		holders:     make([]holder, 0, len(r.holders)),
	}
	for i := range r.holders {
		nh, err := r.holders[i].clone(nr)
		if err != nil {
			return nil, err
		}
		nr.holders = append(nr.holders, nh)
	}
	return nr, nil
}

// MustClone is Clone panicking on failure.
func (r *Registry) MustClone() *Registry {
	nr, err := r.Clone()
	if err != nil {
		panic(err)
	}
	return nr
}

// Len returns the number of declared options.
func (r *Registry) Len() int {
	return len(r.holders)
}

// findByType locates the unique holder whose concrete type is t or a
// descendant of t, returning the embedded field path for the descendant
// case. The resolution algorithm guarantees at most one match; a second
// one means the registry was corrupted.
func (r *Registry) findByType(t reflect.Type) (*holder, []int, error) {
	found := -1
	var path []int
	for i := range r.holders {
		ht := r.holders[i].typ
		if ht == t {
			if found >= 0 {
				panic("options: multiple declared options match " + t.String())
			}
			found, path = i, nil
			continue
		}
		if p, ok := embedPath(ht, t); ok {
			if found >= 0 {
				panic("options: multiple declared options match " + t.String())
			}
			found, path = i, p
		}
	}
	if found < 0 {
		return nil, nil, ErrNotDeclared
	}
	return &r.holders[found], path, nil
}

func (r *Registry) findByName(key string) *holder {
	for i := range r.holders {
		if r.holders[i].name.Matches(key) {
			return &r.holders[i]
		}
	}
	return nil
}
