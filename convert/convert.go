package convert

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchellh/copystructure"
)

var (
	// ErrConversion wraps failures turning a raw parsed value into a typed one.
	ErrConversion = errors.New("convert: value conversion failed")
	// ErrClone wraps failures deep-copying a typed value.
	ErrClone = errors.New("convert: value clone failed")
)

// To converts a raw value, typically a string or a decoded scalar coming
// out of an argument or config source, into V. Conversion is weakly typed:
// "5" converts to int(5), "true" and "1" to bool, and so on. Custom types
// are supported through the default hook set (duration strings, types
// implementing encoding.TextUnmarshaler).
func To[V any](raw any) (V, error) {
	var out V

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(DefaultHooks()...),
	})
	if err != nil {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	if err := decoder.Decode(raw); err != nil {
		var zero V
		return zero, fmt.Errorf("%w: cannot convert %v (%T) to %T: %v", ErrConversion, raw, raw, out, err)
	}

	return out, nil
}

// DefaultHooks returns the decode hooks applied by To.
func DefaultHooks() []mapstructure.DecodeHookFunc {
	return []mapstructure.DecodeHookFunc{
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	}
}

// Clone returns a deep copy of value. Values holding maps, slices, or
// pointers come back fully independent of the original.
func Clone[T any](value T) (T, error) {
	var zero T
	cloned, err := copystructure.Copy(value)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrClone, err)
	}
	casted, ok := cloned.(T)
	if !ok {
		return zero, fmt.Errorf("%w: cloned value %T does not match target type", ErrClone, cloned)
	}
	return casted, nil
}
