package options

import (
	"fmt"

	"github.com/goliatone/go-optreg/convert"
)

// Option is the capability surface every declared option type exposes to
// the registry. Name is implemented by the concrete type and must be pure:
// every instance of a given type returns the same spec, in the grammar
// understood by ParseName. Description defaults to "" via Base.
type Option interface {
	Name() string
	Description() string
}

// Resolver is implemented by option types whose effective value
// post-processes the raw value or depends on other options. Resolve must
// be a pure function of RawValue and of other options' Value reached
// through the registry back-reference.
type Resolver[V any] interface {
	Resolve() (V, bool)
}

// Validator is implemented by option types carrying a validity predicate
// beyond type conversion. It is consulted at the end of a parse for every
// option holding a value, and by Registry.CheckValid.
type Validator interface {
	Validate() error
}

// defaulter is the dispatch surface for the overridable default. Base
// supplies the absent default; concrete types shadow DefaultValue to
// provide one.
type defaulter[V any] interface {
	DefaultValue() (V, bool)
}

// unit is the registry-facing view of an option instance. Base implements
// it; the unexported methods keep it satisfiable only by types embedding
// Base.
type unit interface {
	Option
	bind(self Option, reg *Registry)
	detachState() error
	setRaw(raw any) error
	isSet() bool
	hasRaw() bool
	hasDefault() bool
	printable() string
	checkValid() error
	isSwitch() bool
}

// switchMarker tags Switch-derived options so the argument collaborator
// can register them as value-less flags.
type switchMarker interface {
	switchOption()
}

// Base carries the state shared by every option type: the specified
// value, the back-reference to the owning registry, and the self pointer
// through which overridable behavior dispatches to the most-derived type.
// Concrete option types embed Base[V] and implement Name; they may shadow
// Description and DefaultValue, and implement Resolver[V] or Validator on
// top.
type Base[V any] struct {
	specified *V
	reg       *Registry
	self      Option
}

// Description returns the option help text. Shadow it on the concrete
// type to supply one.
func (b *Base[V]) Description() string { return "" }

// DefaultValue reports no default. Shadow it on the concrete type to
// supply one.
func (b *Base[V]) DefaultValue() (V, bool) {
	var zero V
	return zero, false
}

// Set unconditionally overwrites the specified value. No validity check
// is performed.
func (b *Base[V]) Set(v V) {
	b.specified = &v
}

// Specified returns the most recently set value, whether it came from an
// explicit Set or from a parse.
func (b *Base[V]) Specified() (V, bool) {
	if b.specified == nil {
		var zero V
		return zero, false
	}
	return *b.specified, true
}

// IsSet reports whether a value was specified.
func (b *Base[V]) IsSet() bool {
	return b.specified != nil
}

// RawValue returns the specified value if present, else the default, with
// no post-processing applied.
func (b *Base[V]) RawValue() (V, bool) {
	if b.specified != nil {
		return *b.specified, true
	}
	return b.dispatch().DefaultValue()
}

// Value returns the effective value: the result of the most-derived
// type's Resolve when implemented, else RawValue.
func (b *Base[V]) Value() (V, bool) {
	if r, ok := b.mustSelf().(Resolver[V]); ok {
		return r.Resolve()
	}
	return b.RawValue()
}

// ValueOr returns the effective value, falling back when neither a
// specified nor a default value exists.
func (b *Base[V]) ValueOr(fallback V) V {
	if v, ok := b.Value(); ok {
		return v
	}
	return fallback
}

// MustValue returns the effective value and panics when the option holds
// none. Prefer Value or the registry accessors in library code.
func (b *Base[V]) MustValue() V {
	v, ok := b.Value()
	if !ok {
		panic(opError("value", b.mustSelf().Name(), ErrNoValue, "neither specified nor default value"))
	}
	return v
}

// Registry returns the owning registry, for cross-option lookups from
// Resolve and Validate implementations.
func (b *Base[V]) Registry() *Registry {
	if b.reg == nil {
		panic("options: option is not bound to a registry")
	}
	return b.reg
}

func (b *Base[V]) mustSelf() Option {
	if b.self == nil {
		panic("options: option is not bound to a registry")
	}
	return b.self
}

func (b *Base[V]) dispatch() defaulter[V] {
	d, ok := b.mustSelf().(defaulter[V])
	if !ok {
		// unreachable: Base itself provides DefaultValue
		panic(fmt.Sprintf("options: %T does not expose DefaultValue", b.self))
	}
	return d
}

func (b *Base[V]) bind(self Option, reg *Registry) {
	b.self = self
	b.reg = reg
}

// detachState deep-copies the specified value so a cloned option shares
// nothing with its origin.
func (b *Base[V]) detachState() error {
	if b.specified == nil {
		return nil
	}
	v, err := convert.Clone(*b.specified)
	if err != nil {
		return opError("clone", b.mustSelf().Name(), nil, "%v", err)
	}
	b.specified = &v
	return nil
}

func (b *Base[V]) setRaw(raw any) error {
	if v, ok := raw.(V); ok {
		b.Set(v)
		return nil
	}
	v, err := convert.To[V](raw)
	if err != nil {
		return opError("set", b.mustSelf().Name(), nil, "%v", err)
	}
	b.Set(v)
	return nil
}

func (b *Base[V]) isSet() bool { return b.IsSet() }

func (b *Base[V]) hasRaw() bool {
	_, ok := b.RawValue()
	return ok
}

func (b *Base[V]) hasDefault() bool {
	_, ok := b.dispatch().DefaultValue()
	return ok
}

func (b *Base[V]) printable() string {
	v, ok := b.Value()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func (b *Base[V]) checkValid() error {
	v, ok := b.mustSelf().(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return opError("validate", b.mustSelf().Name(), ErrValidation, "%v", err)
	}
	return nil
}

func (b *Base[V]) isSwitch() bool {
	_, ok := b.mustSelf().(switchMarker)
	return ok
}

// Switch is the base for boolean switch options: absent means false,
// present on the command line without a value means true. An explicit
// value ("--batch=0") still wins.
type Switch struct {
	Base[bool]
}

// DefaultValue reports false when the switch was never specified.
func (s *Switch) DefaultValue() (bool, bool) { return false, true }

func (s *Switch) switchOption() {}

// Help is a ready-made "--help" switch. It is omitted from the help rows
// it triggers; the host program decides what to do when it is requested.
type Help struct {
	Switch
}

func (h *Help) Name() string        { return "help" }
func (h *Help) Description() string { return "Print help and exit" }

// OmitFromHelp hides the help switch from its own output.
func (h *Help) OmitFromHelp() bool { return true }

// HelpRequested reports whether a declared Help option was set.
func HelpRequested(r *Registry) bool {
	return GetValueOr[Help, bool](r, false)
}
