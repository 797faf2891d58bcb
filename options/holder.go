package options

import (
	"reflect"
)

// holder owns exactly one option instance behind the type-erased Option
// view. The clone closure is captured while the concrete type is still
// statically known, so copying through the erased view reproduces the
// most-derived type and state without any user-authored clone protocol.
type holder struct {
	opt   Option
	u     unit
	typ   reflect.Type
	name  Name
	clone func(dst *Registry) (holder, error)
}

// makeHolder wraps an option instance, binding it to reg. PT is the
// pointer form of the concrete option type; it must embed Base.
func makeHolder[T any, PT interface {
	*T
	Option
}](p PT, reg *Registry) (holder, error) {
	u, ok := any(p).(unit)
	if !ok {
		return holder{}, opError("declare", reflect.TypeFor[T]().String(), nil,
			"option type must embed options.Base")
	}
	u.bind(p, reg)

	name, err := ParseName(p.Name())
	if err != nil {
		return holder{}, err
	}

	h := holder{
		opt:  p,
		u:    u,
		typ:  reflect.TypeFor[T](),
		name: name,
	}
	h.clone = func(dst *Registry) (holder, error) {
		cp := *p
		nh, err := makeHolder[T, PT](PT(&cp), dst)
		if err != nil {
			return holder{}, err
		}
		if err := nh.u.detachState(); err != nil {
			return holder{}, err
		}
		return nh, nil
	}
	return h, nil
}

// relation classifies a declared type against a candidate type.
type relation int

const (
	relUnrelated relation = iota
	relSame
	relParent // existing is a strict ancestor of the candidate
	relChild  // existing is a strict descendant of the candidate
)

func relate(existing, candidate reflect.Type) relation {
	switch {
	case existing == candidate:
		return relSame
	case embedsType(candidate, existing):
		return relParent
	case embedsType(existing, candidate):
		return relChild
	default:
		return relUnrelated
	}
}

// embedsType reports whether outer reaches inner through a chain of
// anonymous struct fields.
func embedsType(outer, inner reflect.Type) bool {
	_, ok := embedPath(outer, inner)
	return ok
}

// embedPath returns the field index path from outer to an embedded inner,
// following anonymous fields only.
func embedPath(outer, inner reflect.Type) ([]int, bool) {
	if outer.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < outer.NumField(); i++ {
		f := outer.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == inner {
			return []int{i}, true
		}
		if sub, ok := embedPath(ft, inner); ok {
			return append([]int{i}, sub...), true
		}
	}
	return nil, false
}
