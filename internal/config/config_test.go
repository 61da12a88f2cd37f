package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	assert := require.New(t)

	cfg, err := Load("", t.TempDir())
	assert.NoError(err)
	assert.Equal(Default(), cfg)
	assert.Equal(runtime.NumCPU(), cfg.WorkerLimit())
	assert.Equal(logrus.InfoLevel, cfg.Level())
}

func TestLoad_File(t *testing.T) {
	assert := require.New(t)

	dir := t.TempDir()
	path := writeFile(t, dir, `
notation = "postfix"
color = "never"
group = ","
workers = 3
history = "history.db"
log_level = "debug"
`)

	cfg, err := Load(path, "")
	assert.NoError(err)
	assert.Equal(Config{
		Notation: NotationPostfix,
		Color:    ColorNever,
		Group:    ",",
		Workers:  3,
		History:  "history.db",
		LogLevel: "debug",
		Path:     path,
	}, cfg)
	assert.Equal(3, cfg.WorkerLimit())
	assert.Equal(logrus.DebugLevel, cfg.Level())
}

func TestLoad_FindsParentFile(t *testing.T) {
	assert := require.New(t)

	root := t.TempDir()
	path := writeFile(t, root, `notation = "postfix"`)
	nested := filepath.Join(root, "a", "b")
	assert.NoError(os.MkdirAll(nested, 0o755))

	cfg, err := Load("", nested)
	assert.NoError(err)
	assert.Equal(NotationPostfix, cfg.Notation)
	assert.Equal(path, cfg.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	assert := require.New(t)

	path := writeFile(t, t.TempDir(), `
notation = "postfix"
workers = 3
`)
	t.Setenv("BIGCALC_NOTATION", "INFIX")
	t.Setenv("BIGCALC_WORKERS", "8")
	t.Setenv("BIGCALC_GROUP", "_")

	cfg, err := Load(path, "")
	assert.NoError(err)
	assert.Equal(NotationInfix, cfg.Notation)
	assert.Equal(int64(8), cfg.Workers)
	assert.Equal("_", cfg.Group)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file string
		env  map[string]string
	}{
		"bad toml": {
			file: `notation = `,
		},
		"unknown key": {
			file: `precision = 10`,
		},
		"bad notation": {
			file: `notation = "prefix"`,
		},
		"bad color": {
			file: `color = "sometimes"`,
		},
		"negative workers": {
			file: `workers = -1`,
		},
		"digit group": {
			file: `group = "0"`,
		},
		"bad level": {
			file: `log_level = "loud"`,
		},
		"bad env": {
			file: ``,
			env:  map[string]string{"BIGCALC_WORKERS": "many"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeFile(t, t.TempDir(), tt.file)
			_, err := Load(path, "")
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), "")
	require.Error(t, err)
}
