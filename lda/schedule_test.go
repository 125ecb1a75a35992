package lda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRho_DecreasesAsUpdatesAccumulate(t *testing.T) {
	r1 := rho(1.0, 0.5, 0)
	r2 := rho(1.0, 0.5, 10)
	assert.Greater(t, r1, r2)
}

func TestRho_AtZeroUpdates_EqualsOffsetToNegativeDecay(t *testing.T) {
	got := rho(2.0, 0.7, 0)
	assert.InDelta(t, 0.6156, got, 1e-3) // 2.0^-0.7
}

func TestRho_HigherDecay_FallsFasterForTheSameUpdates(t *testing.T) {
	slow := rho(1.0, 0.51, 100)
	fast := rho(1.0, 0.99, 100)
	assert.Greater(t, slow, fast)
}
