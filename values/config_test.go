package values_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewenila/helmvalues/values"
)

func TestConfigRegisterFlags(t *testing.T) {
	t.Parallel()

	cfg := values.NewConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse([]string{
		"--output", "out.yaml",
		"--format", "json",
		"--schema", "values.schema.json",
		"--set", "replicas=3",
		"--set", "image.tag=1.2.3",
	}))

	assert.Equal(t, "out.yaml", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "values.schema.json", cfg.Schema)
	assert.Equal(t, []string{"replicas=3", "image.tag=1.2.3"}, cfg.Set)
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := values.NewConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	require.NoError(t, flags.Parse(nil))

	assert.Equal(t, "-", cfg.Output)
	assert.Equal(t, values.FormatYAML, cfg.Format)
	assert.Empty(t, cfg.Schema)
	assert.Empty(t, cfg.Set)
}

func TestConfigValidateFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format  string
		wantErr bool
	}{
		"yaml":    {format: values.FormatYAML},
		"json":    {format: values.FormatJSON},
		"unknown": {format: "toml", wantErr: true},
		"empty":   {format: "", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := values.NewConfig()
			cfg.Format = tc.format

			err := cfg.ValidateFormat()

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, values.ErrInvalidOption)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := values.NewConfig()
	cfg.Set = []string{
		"replicas=3",
		"image.tag=1.2.3",
		"debug=true",
		"note=null",
		"ratio=0.5",
		"name=plain text",
	}

	p := values.New(map[string]any{})
	require.NoError(t, cfg.ApplyOverrides(p))

	want := map[string]any{
		"replicas": int64(3),
		"image":    map[string]any{"tag": "1.2.3"},
		"debug":    true,
		"note":     nil,
		"ratio":    0.5,
		"name":     "plain text",
	}
	assert.True(t, values.Equal(want, p.UserValues()), "got %#v", p.UserValues())
}

func TestConfigApplyOverridesMalformed(t *testing.T) {
	t.Parallel()

	tcs := map[string][]string{
		"missing separator": {"replicas"},
		"empty path":        {"=3"},
		"blank path":        {"  =3"},
	}

	for name, set := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := values.NewConfig()
			cfg.Set = set

			err := cfg.ApplyOverrides(values.New(map[string]any{}))
			require.Error(t, err)
			assert.ErrorIs(t, err, values.ErrInvalidOption)
		})
	}
}
