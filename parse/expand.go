package parse

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/v2"
)

// Delimiters mark a reference to another option inside a string value.
var (
	DefaultExpandStart = "${"
	DefaultExpandEnd   = "}"
)

// PriorityExpand runs after every value source has been merged.
var PriorityExpand Priority = 100

// Expand returns a source rewriting references to other options inside
// string values. A value that is exactly one reference takes the
// referenced value as is, keeping its type:
//
//	out-file: ${data-dir}/out.dat   ->  /data/run1/out.dat
//	retries:  ${max-attempts}       ->  3 (int, not "3")
//
// References to keys the merged view does not hold are left untouched.
func Expand(order ...int) Source {
	return &loader{
		sourceType: SourceTypeExpand,
		order:      getOrder(PriorityExpand, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			for key, val := range k.All() {
				s, ok := val.(string)
				if !ok {
					continue
				}
				if out, changed := expandValue(s, key, k); changed {
					k.Set(key, out)
				}
			}
			return nil
		},
	}
}

func expandValue(val, key string, k *koanf.Koanf) (any, bool) {
	start := strings.Index(val, DefaultExpandStart)
	if start == -1 {
		return nil, false
	}
	rest := val[start+len(DefaultExpandStart):]
	end := strings.Index(rest, DefaultExpandEnd)
	if end == -1 {
		return nil, false
	}

	path := rest[:end]
	if path == key || !k.Exists(path) {
		return nil, false
	}

	replacement := k.Get(path)
	if start == 0 && end == len(rest)-len(DefaultExpandEnd) {
		// whole value is one reference
		return replacement, true
	}

	out := val[:start] + fmt.Sprintf("%v", replacement) + rest[end+len(DefaultExpandEnd):]
	// keep going in case more references follow
	if next, changed := expandValue(out, key, k); changed {
		return next, true
	}
	return out, true
}
