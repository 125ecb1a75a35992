package lda

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError_MessageIncludesReason(t *testing.T) {
	err := &ConfigurationError{Reason: "decay out of range"}
	assert.Contains(t, err.Error(), "decay out of range")
}

func TestCorpusMutatedError_MessageIncludesBothCounts(t *testing.T) {
	err := &CorpusMutatedError{Reported: 10, Actual: 7}
	assert.Contains(t, err.Error(), "10")
	assert.Contains(t, err.Error(), "7")
}

func TestDispatcherError_UnwrapReturnsWrappedCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &DispatcherError{Op: "PutJob", Err: cause}
	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}
