package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBenefit_InfiniteBeatsAnyFinite(t *testing.T) {
	assert.True(t, Infinite().GreaterThan(Finite(1e18)))
	assert.True(t, Infinite().GreaterThan(Finite(-1e18)))
}

func TestBenefit_TwoInfinitesAreEqual(t *testing.T) {
	assert.Equal(t, 0, Infinite().Compare(Infinite()))
}

func TestBenefit_FinitesCompareByValue(t *testing.T) {
	assert.Equal(t, -1, Finite(1).Compare(Finite(2)))
	assert.Equal(t, 1, Finite(2).Compare(Finite(1)))
	assert.Equal(t, 0, Finite(2).Compare(Finite(2)))
}

// TestBenefit_CompareIsAntisymmetric verifies compare(a,b) = -compare(b,a).
func TestBenefit_CompareIsAntisymmetric(t *testing.T) {
	pairs := []struct{ a, b Benefit }{
		{Finite(1), Finite(2)},
		{Finite(5), Finite(5)},
		{Infinite(), Finite(100)},
		{Infinite(), Infinite()},
	}
	for _, p := range pairs {
		assert.Equal(t, -p.a.Compare(p.b), p.b.Compare(p.a))
	}
}
