package combo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"combobox/internal/domain"
)

func TestRegistryTwoPhaseSwap(t *testing.T) {
	r := newRegistry()
	a := &domain.Item{Label: "a"}
	b := &domain.Item{Label: "b"}

	r.begin()
	r.register(a, 0)
	// The pass is not committed yet: readers still see the old pass
	_, ok := r.lookup(0)
	assert.False(t, ok, "A half-built pass must not be observable")

	r.register(b, 1)
	r.swap()

	got, ok := r.lookup(0)
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 2, r.size())

	// Next pass starts empty
	r.begin()
	r.swap()
	assert.Equal(t, 0, r.size())
}

func TestRegistryAppendsWhenIndexOmitted(t *testing.T) {
	r := newRegistry()
	r.begin()
	assert.Equal(t, 0, r.register(&domain.Item{Label: "a"}, -1))
	assert.Equal(t, 1, r.register(&domain.Item{Label: "b"}, -1))
	r.swap()
	assert.Equal(t, 2, r.size())
}

func TestRegistryItemCountOverride(t *testing.T) {
	r := newRegistry()

	r.begin()
	r.register(&domain.Item{Label: "a"}, 0)
	r.setItemCount(50)
	r.swap()
	assert.Equal(t, 50, r.effectiveCount(), "Recorded count wins over registry size")

	// A pass that records no count falls back to registry size
	r.begin()
	r.register(&domain.Item{Label: "a"}, 0)
	r.swap()
	assert.Equal(t, 1, r.effectiveCount())
}
