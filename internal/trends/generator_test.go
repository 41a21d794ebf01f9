package trends

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SeriesShape(t *testing.T) {
	g := New(rand.NewSource(1))
	points := g.Generate(12000)

	require.Len(t, points, 45)

	// Dates ascend in 2-day steps, ending near today
	prev, err := time.Parse("2006-01-02", points[0].Date)
	require.NoError(t, err)
	for _, p := range points[1:] {
		d, err := time.Parse("2006-01-02", p.Date)
		require.NoError(t, err)
		assert.Equal(t, 48*time.Hour, d.Sub(prev))
		prev = d
	}

	last, _ := time.Parse("2006-01-02", points[44].Date)
	assert.WithinDuration(t, time.Now(), last, 72*time.Hour)
}

func TestGenerate_VolumeBounds(t *testing.T) {
	g := New(rand.NewSource(7))
	base := 20000
	floor := int(math.Floor(float64(base) * 0.1))
	ceiling := int(math.Floor(float64(base) * 2.5))

	for _, p := range g.Generate(base) {
		assert.GreaterOrEqual(t, p.SearchVolume, floor)
		assert.LessOrEqual(t, p.SearchVolume, ceiling)
	}
}

func TestGenerate_EngagementBounds(t *testing.T) {
	g := New(rand.NewSource(42))

	for _, base := range []int{500, 12000, 80000} {
		for _, p := range g.Generate(base) {
			assert.GreaterOrEqual(t, p.Engagement, 1.0)
			assert.LessOrEqual(t, p.Engagement, 15.0)
			// One decimal place
			assert.InDelta(t, p.Engagement, math.Floor(p.Engagement*10)/10, 1e-9)
		}
	}
}

func TestGenerate_EngagementTiers(t *testing.T) {
	g := New(rand.NewSource(3))

	// Tier base +/- 2 of noise
	for _, p := range g.Generate(80000) {
		assert.InDelta(t, 2.5, p.Engagement, 2.01)
	}
	for _, p := range g.Generate(20000) {
		assert.InDelta(t, 4.5, p.Engagement, 2.01)
	}
	for _, p := range g.Generate(2000) {
		assert.InDelta(t, 7.5, p.Engagement, 2.01)
	}
}

func TestGenerate_MentionsAtLeastOne(t *testing.T) {
	g := New(rand.NewSource(9))

	// Tiny niches floor out at 1 mention
	for _, p := range g.Generate(100) {
		assert.GreaterOrEqual(t, p.Mentions, 1)
	}
}

func TestGenerate_SeededSourceIsDeterministic(t *testing.T) {
	a := New(rand.NewSource(99)).Generate(15000)
	b := New(rand.NewSource(99)).Generate(15000)
	assert.Equal(t, a, b)
}

func TestGenerate_UnseededCallsDiffer(t *testing.T) {
	g := New(nil)
	a := g.Generate(15000)
	b := g.Generate(15000)

	// Same shape, different values
	require.Len(t, a, len(b))
	same := true
	for i := range a {
		if a[i].SearchVolume != b[i].SearchVolume {
			same = false
			break
		}
	}
	assert.False(t, same, "two unseeded series should not be identical")
}
