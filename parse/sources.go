package parse

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Map returns a source feeding literal values, keyed by long option
// name. It sits at the lowest priority by default, useful for baseline
// values a file or the command line may override.
func Map(values map[string]any, order ...int) Source {
	return &loader{
		sourceType: SourceTypeMap,
		order:      getOrder(PriorityMap, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			if len(values) == 0 {
				return nil
			}
			if err := k.Load(confmap.Provider(values, DefaultDelimiter), nil); err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to load literal values").
					WithTextCode("MAP_LOAD_FAILED").
					WithMetadata(map[string]any{
						"values_count": len(values),
					})
			}
			return nil
		},
	}
}

// DefaultStructTag is the struct tag Struct reads long option names
// from.
var DefaultStructTag = "opt"

// Struct returns a source reading option values from the tagged fields
// of a struct, using tag when given and DefaultStructTag otherwise.
func Struct(v any, tag string, order ...int) Source {
	if tag == "" {
		tag = DefaultStructTag
	}

	return &loader{
		sourceType: SourceTypeStruct,
		order:      getOrder(PriorityStruct, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			if v == nil {
				return errors.New("struct cannot be nil", errors.CategoryBadInput).
					WithTextCode("NIL_STRUCT")
			}
			if err := k.Load(structs.Provider(v, tag), nil); err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to load values from struct").
					WithTextCode("STRUCT_LOAD_FAILED")
			}
			return nil
		},
	}
}
