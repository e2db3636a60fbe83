package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partituras/internal/domain"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"missing id", domain.ErrMissingID, ExitBadRequest},
		{"not found", fmt.Errorf("score 9: %w", domain.ErrNotFound), ExitNotFound},
		{"coded", withCode(ExitConfigError, errors.New("bad config")), ExitConfigError},
		{"coded wrapping not found", withCode(ExitBadRequest, domain.ErrNotFound), ExitBadRequest},
		{"other", errors.New("boom"), ExitError},
		{"dimension mismatch", domain.ErrDimensionMismatch, ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestWithCodeKeepsCause(t *testing.T) {
	err := withCode(ExitNotFound, domain.ErrNotFound)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Nil(t, withCode(ExitError, nil))
}

func TestOutputError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := outputError(&stdout, &stderr, false, fmt.Errorf("score 7: %w", domain.ErrNotFound))
	assert.Equal(t, ExitNotFound, code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, ExitNotFound, resp.Code)
	assert.Contains(t, resp.Error, "score not found")
	assert.Empty(t, stderr.String())

	stdout.Reset()
	code = outputError(&stdout, &stderr, true, domain.ErrMissingID)
	assert.Equal(t, ExitBadRequest, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "missing id")
}
