package cmdutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opmodel/topology/internal/errdetail"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil error is success", nil, ExitSuccess},
		{"config sentinel", errdetail.ErrConfig, ExitConfig},
		{"wrapped config sentinel", fmt.Errorf("loading: %w", errdetail.ErrConfig), ExitConfig},
		{"internal sentinel", errdetail.ErrInternal, ExitSoftware},
		{"unrecognized error falls back to software", errors.New("boom"), ExitSoftware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 64, ExitUsage)
	assert.Equal(t, 70, ExitSoftware)
	assert.Equal(t, 78, ExitConfig)
}
