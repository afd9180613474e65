package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name               string
		upstream           []string
		expectedCategories []string
		expectedDistances  []int
	}{
		{
			name:               "display names",
			upstream:           []string{"Maratona", "Meia-Maratona"},
			expectedCategories: []string{"marathon", "half-marathon"},
			expectedDistances:  []int{42195, 21097},
		},
		{
			name:               "slug form",
			upstream:           []string{"event_type-corrida-10-km", "event_type-trail"},
			expectedCategories: []string{"10k", "trail"},
			expectedDistances:  []int{10000},
		},
		{
			name:               "trail variants collapse",
			upstream:           []string{"T-Trail Curto", "T-Trail Ultra", "Skyrunning"},
			expectedCategories: []string{"trail"},
			expectedDistances:  nil,
		},
		{
			name:               "unknown term falls back to run",
			upstream:           []string{"Corrida do Futuro Desconhecida"},
			expectedCategories: []string{"run"},
			expectedDistances:  nil,
		},
		{
			name:               "walk and kids",
			upstream:           []string{"Caminhada", "T-Kids"},
			expectedCategories: []string{"walk", "kids"},
			expectedDistances:  nil,
		},
		{
			name:               "saint silvester accent and slug",
			upstream:           []string{"São Silvestre", "event_type-sao-silvestre"},
			expectedCategories: []string{"saint-silvester"},
			expectedDistances:  nil,
		},
		{
			name:               "empty input",
			upstream:           nil,
			expectedCategories: nil,
			expectedDistances:  nil,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			categories, dists := Canonicalize(tc.upstream)

			assert.Equal(t, tc.expectedCategories, categories)
			assert.Equal(t, tc.expectedDistances, dists)
		})
	}
}

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, Known("Maratona"))
	assert.True(t, Known("event_type-corta-mato"))
	assert.True(t, Known("  caminhada  "))
	assert.False(t, Known("triatlo"))
}
