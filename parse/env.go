package parse

import (
	"context"
	"os"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/sjson"
)

// Env returns a source reading option values from environment variables
// carrying the given prefix. The variable name is mapped onto the long
// option name by stripping the prefix, lowercasing, and turning single
// underscores into dashes:
//
//	APP_N_ELECTRONS=5  ->  n-electrons
//
// Variables that do not map onto a declared long name are ignored, so a
// shared process environment does not fail the parse.
func Env(prefix string, order ...int) Source {
	return &loader{
		sourceType: SourceTypeEnv,
		order:      getOrder(PriorityEnv, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			declared := map[string]bool{}
			for _, s := range specs {
				declared[s.Long] = true
			}

			// collect matches as a JSON document so value typing stays
			// consistent with the file sources
			out := "{}"
			for _, pair := range os.Environ() {
				if !strings.HasPrefix(pair, prefix) {
					continue
				}
				key, value, ok := strings.Cut(pair[len(prefix):], "=")
				if !ok {
					continue
				}
				name := strings.ReplaceAll(strings.ToLower(key), "_", "-")
				if !declared[name] {
					continue
				}
				var err error
				if out, err = sjson.Set(out, escapeKey(name), value); err != nil {
					return errors.Wrap(err, errors.CategoryOperation, "failed to collect environment variable").
						WithTextCode("ENV_COLLECT_FAILED").
						WithMetadata(map[string]any{
							"variable": prefix + key,
						})
				}
			}

			values, err := json.Parser().Unmarshal([]byte(out))
			if err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to decode environment values").
					WithTextCode("ENV_DECODE_FAILED")
			}
			if len(values) == 0 {
				return nil
			}

			if err := k.Load(confmap.Provider(values, DefaultDelimiter), nil); err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to merge environment values").
					WithTextCode("ENV_MERGE_FAILED")
			}
			return nil
		},
	}
}

// escapeKey keeps dots in option names literal sjson path components.
func escapeKey(name string) string {
	return strings.ReplaceAll(name, ".", `\.`)
}
