package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"OLLAMA_MODEL", "OLLAMA_REVIEW_MODEL", "OLLAMA_ENDPOINT", "COMMITGEN_MAX_BYTES", "COMMITGEN_TIMEOUT", "COMMITGEN_BODY"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return home
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("model", defaultModel, "")
	fs.String("endpoint", defaultEndpoint, "")
	fs.Int("max-bytes", defaultMaxBytes, "")
	fs.String("timeout", defaultTimeout.String(), "")
	fs.Bool("body", false, "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	opts, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, defaultModel, opts.Model)
	assert.Equal(t, defaultModel, opts.ReviewModel)
	assert.Equal(t, defaultEndpoint, opts.Endpoint)
	assert.Equal(t, defaultMaxBytes, opts.MaxBytes)
	assert.Equal(t, defaultTimeout, opts.Timeout)
	assert.False(t, opts.Body)
	assert.Equal(t, filepath.Join(home, ".config", "go-commitsuggest", "rules.yaml"), opts.RulesFile)
	assert.NoError(t, opts.Validate())
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("OLLAMA_MODEL", "llama3")
	t.Setenv("OLLAMA_ENDPOINT", "http://gpu:11434")
	t.Setenv("COMMITGEN_MAX_BYTES", "1000")
	t.Setenv("COMMITGEN_TIMEOUT", "90")
	t.Setenv("COMMITGEN_BODY", "true")

	opts, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "llama3", opts.Model)
	assert.Equal(t, "llama3", opts.ReviewModel)
	assert.Equal(t, "http://gpu:11434", opts.Endpoint)
	assert.Equal(t, 1000, opts.MaxBytes)
	assert.Equal(t, 90*time.Second, opts.Timeout)
	assert.True(t, opts.Body)
}

func TestLoadConfigFileAndFlagPrecedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: from-file\nreview_model: reviewer\ntimeout: 2m\nmax_bytes: 500\n"), 0o644))

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--model", "from-flag", "--body"}))

	opts, err := Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", opts.Model)
	assert.Equal(t, "reviewer", opts.ReviewModel)
	assert.Equal(t, 2*time.Minute, opts.Timeout)
	assert.Equal(t, 500, opts.MaxBytes)
	assert.True(t, opts.Body)
	assert.Equal(t, path, opts.ConfigFile)
}

func TestLoadBadInputs(t *testing.T) {
	isolate(t)

	_, err := Load(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("COMMITGEN_TIMEOUT", "soon")
	_, err = Load(nil, "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Options{Model: "m", Endpoint: "http://localhost:11434", MaxBytes: 1, Timeout: time.Second}

	tests := []struct {
		name   string
		mutate func(*Options)
		errMsg string
	}{
		{"valid", func(*Options) {}, ""},
		{"missing model", func(o *Options) { o.Model = " " }, "model is required"},
		{"bad endpoint", func(o *Options) { o.Endpoint = "localhost" }, "invalid endpoint"},
		{"zero bytes", func(o *Options) { o.MaxBytes = 0 }, "max bytes"},
		{"zero timeout", func(o *Options) { o.Timeout = 0 }, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
