package parse

import (
	"context"
	"testing"

	"github.com/goliatone/go-optreg/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type optDataDir struct{ options.Base[string] }

func (o *optDataDir) Name() string { return "data-dir" }

type optOutFile struct{ options.Base[string] }

func (o *optOutFile) Name() string { return "out-file" }

func TestExpandReference(t *testing.T) {
	r := options.New().MustDeclare(
		options.Of[optDataDir](),
		options.Of[optOutFile](),
	)

	err := Run(context.Background(), r,
		Map(map[string]any{
			"data-dir": "/data/run1",
			"out-file": "${data-dir}/out.dat",
		}),
		Expand(),
	)
	require.NoError(t, err)

	out, err := options.GetValue[optOutFile, string](r)
	require.NoError(t, err)
	assert.Equal(t, "/data/run1/out.dat", out)
}

func TestExpandWholeValueKeepsType(t *testing.T) {
	r := options.New().MustDeclare(
		options.Of[optNElectrons](),
		options.Of[optInFile](),
	)

	err := Run(context.Background(), r,
		Map(map[string]any{
			"n-electrons": 8,
			"in-file":     "${n-electrons}",
		}),
		Expand(),
	)
	require.NoError(t, err)

	in, err := options.GetValue[optInFile, string](r)
	require.NoError(t, err)
	assert.Equal(t, "8", in)
}

func TestExpandUnknownReferenceUntouched(t *testing.T) {
	r := options.New().MustDeclare(options.Of[optInFile]())

	err := Run(context.Background(), r,
		Map(map[string]any{"in-file": "${nowhere}/x.dat"}),
		Expand(),
	)
	require.NoError(t, err)

	in, err := options.GetValue[optInFile, string](r)
	require.NoError(t, err)
	assert.Equal(t, "${nowhere}/x.dat", in)
}
