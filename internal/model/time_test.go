package model

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseTimeOfDay(t *testing.T) {
	parsed, err := ParseTimeOfDay("07:30:15")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(7, 30, 15), parsed)
	assert.Equal(t, "07:30:15", parsed.String())

	parsed, err = ParseTimeOfDay("24:00:00")
	require.NoError(t, err)
	assert.Equal(t, EndOfDay, parsed)

	for _, invalid := range []string{"", "7am", "25:00:00", "07:61:00", "-1:00:00", "07:00:99"} {
		_, err := ParseTimeOfDay(invalid)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestTimeOfDayUnmarshalYAML(t *testing.T) {
	var window struct {
		Begin TimeOfDay `yaml:"begin"`
		End   TimeOfDay `yaml:"end"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("begin: \"07:00:00\"\nend: \"08:00:00\"\n"), &window))
	assert.Equal(t, NewTimeOfDay(7, 0, 0), window.Begin)
	assert.Equal(t, NewTimeOfDay(8, 0, 0), window.End)

	err := yaml.Unmarshal([]byte("begin: \"late\"\n"), &window)
	assert.Error(t, err)
}

func TestRandomTimeBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	begin := NewTimeOfDay(7, 0, 0)
	end := NewTimeOfDay(8, 0, 0)

	for i := 0; i < 1000; i++ {
		got, err := RandomTime(rng, begin, end, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, begin)
		assert.LessOrEqual(t, got, end)
	}
}

func TestRandomTimeStep(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	begin := NewTimeOfDay(19, 0, 0)
	end := NewTimeOfDay(21, 0, 0)
	step := 10 * time.Minute

	seen := map[TimeOfDay]bool{}
	for i := 0; i < 1000; i++ {
		got, err := RandomTime(rng, begin, end, step)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got, begin)
		require.LessOrEqual(t, got, end)
		require.Zero(t, int(got-begin)%600, "%s is not on the 10-minute grid", got)
		seen[got] = true
	}
	// 13 grid points in [19:00, 21:00]; both ends must be reachable.
	assert.True(t, seen[begin])
	assert.True(t, seen[end])
	assert.Len(t, seen, 13)
}

func TestRandomTimeDegenerateRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	at := NewTimeOfDay(12, 0, 0)

	got, err := RandomTime(rng, at, at, 0)
	require.NoError(t, err)
	assert.Equal(t, at, got)

	// A step larger than the span can only yield begin.
	got, err = RandomTime(rng, at, at+30, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, at, got)
}

func TestRandomTimeErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	_, err := RandomTime(rng, NewTimeOfDay(8, 0, 0), NewTimeOfDay(7, 0, 0), 0)
	assert.ErrorIs(t, err, ErrTimeOrder)

	_, err = RandomTime(rng, -1, NewTimeOfDay(7, 0, 0), 0)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = RandomTime(rng, NewTimeOfDay(7, 0, 0), EndOfDay+1, 0)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = RandomTime(rng, NewTimeOfDay(7, 0, 0), NewTimeOfDay(8, 0, 0), -time.Minute)
	assert.ErrorIs(t, err, ErrBadStep)

	_, err = RandomTime(rng, NewTimeOfDay(7, 0, 0), NewTimeOfDay(8, 0, 0), 500*time.Millisecond)
	assert.ErrorIs(t, err, ErrBadStep)
}
