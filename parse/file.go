package parse

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-optreg/options"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileType names a supported config file format.
type FileType string

const (
	FileTypeYAML FileType = "yaml"
	FileTypeTOML FileType = "toml"
	FileTypeJSON FileType = "json"
)

func (f FileType) String() string {
	return string(f)
}

func (f FileType) Valid() error {
	switch f {
	case FileTypeJSON, FileTypeYAML, FileTypeTOML:
		return nil
	default:
		return errors.New("invalid option file type", errors.CategoryValidation).
			WithTextCode("INVALID_FILE_TYPE").
			WithMetadata(map[string]any{
				"file_type": string(f),
				"valid_types": []string{
					string(FileTypeJSON),
					string(FileTypeYAML),
					string(FileTypeTOML),
				},
			})
	}
}

func (f FileType) Parser() koanf.Parser {
	switch f {
	case FileTypeJSON:
		return json.Parser()
	case FileTypeTOML:
		return toml.Parser()
	case FileTypeYAML:
		return yaml.Parser()
	default:
		panic(fmt.Errorf("invalid option file type: %s", f))
	}
}

func inferFileType(path string, defaultFileType ...FileType) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FileTypeTOML
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	}

	if len(defaultFileType) > 0 {
		return defaultFileType[0]
	}

	return FileTypeJSON
}

// File returns a source reading option values from a json, yaml, or toml
// file, inferred from the extension. Keys are the long option names.
func File(path string, order ...int) Source {
	filetype := inferFileType(path)

	return &loader{
		sourceType: SourceTypeFile,
		order:      getOrder(PriorityFile, order...),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			if err := k.Load(file.Provider(path), filetype.Parser()); err != nil {
				return errors.Wrap(err, errors.CategoryOperation, "failed to load option file").
					WithTextCode("FILE_LOAD_FAILED").
					WithMetadata(map[string]any{
						"filepath":  path,
						"file_type": string(filetype),
					})
			}
			return nil
		},
	}
}

// ErrorFilter reports whether a source load error should be ignored.
type ErrorFilter func(err error) bool

// DefaultErrorFilter ignores absent files but surfaces everything else,
// unless a specific allow list is given.
func DefaultErrorFilter(allowedErrors ...error) ErrorFilter {
	return func(err error) bool {
		if err == nil {
			return false
		}

		if len(allowedErrors) == 0 {
			return os.IsNotExist(err) || goerrors.Is(err, syscall.ENOENT)
		}

		for _, allowed := range allowedErrors {
			if goerrors.Is(err, allowed) {
				return true
			}
		}

		return false
	}
}

// Optional wraps a source so that some load errors, by default a missing
// file, are ignored.
func Optional(src Source, errIgnoreFuncs ...ErrorFilter) Source {
	errIgnore := DefaultErrorFilter()
	if len(errIgnoreFuncs) > 0 {
		errIgnore = errIgnoreFuncs[0]
	}

	return &loader{
		sourceType: src.Type(),
		order:      src.Priority(),
		load: func(ctx context.Context, k *koanf.Koanf, specs []options.Spec) error {
			if err := src.Load(ctx, k, specs); !errIgnore(err) {
				return err
			}
			return nil
		},
	}
}
