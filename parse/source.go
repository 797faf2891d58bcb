package parse

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/v2"
)

// SourceType identifies the kind of input a source reads.
type SourceType string

const (
	SourceTypeMap    SourceType = "map"
	SourceTypeStruct SourceType = "struct"
	SourceTypeFile   SourceType = "file"
	SourceTypeEnv    SourceType = "env"
	SourceTypeArgs   SourceType = "args"
	SourceTypeFlags  SourceType = "pflag"
	SourceTypeExpand SourceType = "expand"
)

func (s SourceType) String() string {
	return string(s)
}

func (s SourceType) validate() error {
	switch s {
	case SourceTypeMap, SourceTypeStruct, SourceTypeFile, SourceTypeEnv, SourceTypeArgs, SourceTypeFlags, SourceTypeExpand:
		return nil
	default:
		return errors.New("invalid source type", errors.CategoryValidation).
			WithTextCode("INVALID_SOURCE_TYPE").
			WithMetadata(map[string]any{
				"source_type": string(s),
				"valid_types": []string{
					string(SourceTypeMap),
					string(SourceTypeStruct),
					string(SourceTypeFile),
					string(SourceTypeEnv),
					string(SourceTypeArgs),
					string(SourceTypeFlags),
					string(SourceTypeExpand),
				},
			})
	}
}

// Source supplies raw option values. Sources are merged by priority into
// one koanf view before the registry distributes it; the declared specs
// are handed to Load so a source can restrict itself to recognized
// names.
type Source interface {
	Type() SourceType
	Priority() int
	Validate() error
	Load(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error
}

// Priority orders sources; higher loads later and wins on conflicts.
type Priority int

// WithOffset nudges a base priority, so two sources of the same kind can
// be ordered relative to each other.
func (p Priority) WithOffset(offset int) Priority {
	return Priority(int(p) + offset)
}

var (
	PriorityMap    Priority = 0
	PriorityStruct Priority = 10
	PriorityFile   Priority = 20
	PriorityEnv    Priority = 30
	PriorityArgs   Priority = 40
)

type loader struct {
	order      int
	sourceType SourceType
	load       func(context.Context, *koanf.Koanf, []options.Spec) error
}

func (l *loader) Priority() int {
	return l.order
}

func (l *loader) Type() SourceType {
	return l.sourceType
}

func (l *loader) Validate() error {
	return l.sourceType.validate()
}

func (l *loader) Load(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
	return l.load(ctx, k, specs)
}

func getOrder(defaultOrder Priority, orders ...int) int {
	if len(orders) > 0 {
		return orders[0]
	}
	return int(defaultOrder)
}
