package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bundle/internal/adapters/logger"
	"go.trai.ch/bundle/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "single standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr single error",
			err:          zerr.New("zerr error"),
			wantMessages: []string{"zerr error"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name:         "zerr wrapped chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root cause"), "middle layer"), "outer layer"),
			wantMessages: []string{"outer layer", "middle layer", "root cause"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "zerr with metadata",
			err:          zerr.With(zerr.With(zerr.New("base error"), "key1", "value1"), "key2", 42),
			wantMessages: []string{"base error"},
			wantMetadata: []map[string]any{{"key1": "value1", "key2": 42}},
		},
		{
			name:         "metadata on a standard error folds into it",
			err:          zerr.With(errors.New("exit status 2"), "exit_code", 2),
			wantMessages: []string{"exit status 2"},
			wantMetadata: []map[string]any{{"exit_code": 2}},
		},
		{
			name:         "joined errors keep both branches",
			err:          errors.Join(domain.ErrBuildFailed, zerr.Wrap(errors.New("disk full"), "write failed")),
			wantMessages: []string{"build failed", "write failed", "disk full"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name:         "nil error handling",
			err:          nil,
			wantMessages: nil,
			wantMetadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			var messages []string
			var metadata []map[string]any
			for _, e := range entries {
				messages = append(messages, e.Message())
				metadata = append(metadata, e.Metadata())
			}

			assert.Equal(t, tt.wantMessages, messages)
			assert.Equal(t, tt.wantMetadata, metadata)
		})
	}
}

func TestFormatErrorEntries_SortsMetadata(t *testing.T) {
	err := zerr.With(zerr.With(zerr.New("copy failed"), "src", "./a"), "dst", "./b")

	got := logger.FormatErrorEntries(logger.CollectErrorEntries(err))

	assert.Equal(t, "Error: copy failed\n       dst: ./b\n       src: ./a", got)
}

func TestFormatErrorEntries_MultilineCause(t *testing.T) {
	err := zerr.Wrap(errors.New("line one\nline two"), "outer")

	got := logger.FormatErrorEntries(logger.CollectErrorEntries(err))

	assert.Equal(t, "Error: outer\n\n  Caused by:\n    → line one\n      line two", got)
}
