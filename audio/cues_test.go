package audio

import (
	"math"
	"testing"
	"time"

	"github.com/plus3/thingbox/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, e game.Event) (total int, peak float64) {
	t.Helper()
	s := Cue(e, 1)
	require.NotNil(t, s, e.Kind.String())

	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			assert.Equal(t, smp[0], smp[1])
			peak = math.Max(peak, math.Abs(smp[0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestCueLengths(t *testing.T) {
	cases := map[game.EventKind]time.Duration{
		game.EventPickup:   150 * time.Millisecond,
		game.EventSlash:    180 * time.Millisecond,
		game.EventSlashHit: 120 * time.Millisecond,
		game.EventImpact:   100 * time.Millisecond,
	}
	for kind, d := range cases {
		n, peak := drain(t, game.Event{Kind: kind, Speed: 2})
		assert.InDelta(t, sampleRate.N(d), n, 2, kind.String())
		assert.Greater(t, peak, 0.0, kind.String())
		assert.LessOrEqual(t, peak, 1.0, kind.String())
	}
}

func TestImpactLouderWhenFaster(t *testing.T) {
	_, slow := drain(t, game.Event{Kind: game.EventImpact, Speed: 0.5})
	_, fast := drain(t, game.Event{Kind: game.EventImpact, Speed: 10})
	assert.Greater(t, fast, slow)
}

func TestUnknownEventHasNoCue(t *testing.T) {
	assert.Nil(t, Cue(game.Event{Kind: game.EventKind(42)}, 1))
}

func TestDisabledNotifyIsNoop(t *testing.T) {
	c := New(2, nil)
	assert.Equal(t, 1.0, c.volume)
	assert.False(t, c.Enabled())

	c.Notify(game.Event{Kind: game.EventPickup})
	assert.Equal(t, 0, c.mixer.Len())

	c.Close()
	assert.False(t, c.Enabled())
}
