package parse

import (
	"context"
	"io"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Args returns a source that tokenizes command line arguments against
// the declared option names. Switch options become boolean flags that
// accept both the bare form and an explicit value; everything else is
// read as text and converted by the registry. Only flags actually
// present in argv produce values, so defaults stay with the options.
// Unrecognized flags fail the load.
func Args(argv []string, order ...int) Source {
	return &loader{
		sourceType: SourceTypeArgs,
		order:      getOrder(PriorityArgs, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			fs := pflag.NewFlagSet("options", pflag.ContinueOnError)
			fs.SortFlags = false
			fs.SetOutput(io.Discard)
			fs.Usage = func() {}

			for _, s := range specs {
				short := ""
				if s.Short != 0 {
					short = string(s.Short)
				}
				if s.Switch {
					fs.BoolP(s.Long, short, false, s.Description)
				} else {
					fs.StringP(s.Long, short, "", s.Description)
				}
			}

			if err := fs.Parse(argv); err != nil {
				return errors.Wrap(err, errors.CategoryBadInput, "failed to parse command line arguments").
					WithTextCode("ARGS_PARSE_FAILED").
					WithMetadata(map[string]any{
						"argv_count": len(argv),
					})
			}

			values := map[string]any{}
			fs.Visit(func(f *pflag.Flag) {
				values[f.Name] = f.Value.String()
			})
			if len(values) == 0 {
				return nil
			}

			if err := k.Load(confmap.Provider(values, DefaultDelimiter), nil); err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to merge command line values").
					WithTextCode("ARGS_MERGE_FAILED")
			}
			return nil
		},
	}
}

// Flags returns a source reading a caller-owned pflag.FlagSet. Unlike
// Args, flag defaults are applied for flags never set on the command
// line; use it when the flag set is the single source of truth.
func Flags(fs *pflag.FlagSet, order ...int) Source {
	return &loader{
		sourceType: SourceTypeFlags,
		order:      getOrder(PriorityArgs, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			if fs == nil {
				return errors.New("flagset cannot be nil", errors.CategoryBadInput).
					WithTextCode("NIL_FLAGSET")
			}
			if err := k.Load(posflag.Provider(fs, DefaultDelimiter, k), nil); err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to load values from posix flags").
					WithTextCode("FLAGS_LOAD_FAILED")
			}
			return nil
		},
	}
}
