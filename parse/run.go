package parse

import (
	"context"
	"sort"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/v2"
)

var DefaultDelimiter = "."

// Run merges the given sources by priority into one raw key-to-value
// view and hands it to the registry, which sets the specified value of
// every matching option and validates the result. Core registry errors
// (unrecognized keys, conversion failures, validation failures) are
// surfaced unchanged.
func Run(ctx context.Context, r *options.Registry, sources ...Source) error {
	specs := r.Specs()
	k := koanf.New(DefaultDelimiter)

	for i, src := range sources {
		if err := src.Validate(); err != nil {
			return errors.Wrap(err, errors.CategoryValidation, "invalid option source type").
				WithTextCode("INVALID_SOURCE_TYPE").
				WithMetadata(map[string]any{
					"source_type":  string(src.Type()),
					"source_index": i,
				})
		}
	}

	ordered := make([]Source, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	for i, src := range ordered {
		if err := src.Load(ctx, k, specs); err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to load option values from source").
				WithTextCode("SOURCE_LOAD_FAILED").
				WithMetadata(map[string]any{
					"source_type":   string(src.Type()),
					"source_index":  i,
					"total_sources": len(ordered),
				})
		}
	}

	return r.Parse(k.All())
}

// RunArgs parses the command line and, when configFile is non-empty, the
// config file as well. Command line values take priority over the file
// with no warning on conflicts.
func RunArgs(ctx context.Context, r *options.Registry, argv []string, configFile string) error {
	sources := []Source{Args(argv)}
	if configFile != "" {
		sources = append(sources, File(configFile))
	}
	return Run(ctx, r, sources...)
}
