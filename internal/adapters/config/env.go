package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/zerr"
)

// expander resolves ${VAR} references. The process environment wins over
// values read from the .env file.
type expander struct {
	lookup func(string) (string, bool)
	dotenv map[string]string
}

func (l *Loader) newExpander(configDir string) (*expander, error) {
	envPath := filepath.Join(configDir, domain.EnvFileName)

	data, err := l.FS.ReadFile(envPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &expander{lookup: l.LookupEnv}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileReadFailed.Error()), "path", envPath)
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEnvFileReadFailed.Error()), "path", envPath)
	}

	return &expander{lookup: l.LookupEnv, dotenv: values}, nil
}

func (e *expander) expand(s string) string {
	return os.Expand(s, func(key string) string {
		if e.lookup != nil {
			if v, ok := e.lookup(key); ok {
				return v
			}
		}
		return e.dotenv[key]
	})
}

func (e *expander) expandAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = e.expand(v)
	}
	return out
}
