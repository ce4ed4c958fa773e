package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordPlaythrough plays a short game where the autopilot starts, the player
// takes over and drops a few layers and then restarts.
func recordPlaythrough(seed int64) Playthrough {
	p := NewPlaythrough(seed, true, DefaultParams())
	w := NewWorldFromPlaythrough(p)
	defer w.Destroy()

	timeMs := 0.0
	for i := range 1500 {
		timeMs += frameMs
		input := PlayerInput{TimeMs: timeMs}
		switch {
		case i == 400:
			input.Action = true
		case i > 400 && i%90 == 0:
			input.Action = true
		case i == 1300:
			input.Restart = true
		case i == 1351:
			input.ToggleAutopilot = true
		}
		w.Step(input)
		p.History = append(p.History, input)
	}
	return p
}

func TestPlaythrough_SerializeDeserialize(t *testing.T) {
	p := recordPlaythrough(5)
	p.ReleaseVersion = 3

	p2, err := DeserializePlaythrough(p.Serialize())
	require.NoError(t, err)
	assert.Equal(t, p, p2)
}

func TestPlaythrough_DeserializeGarbage(t *testing.T) {
	_, err := DeserializePlaythrough([]byte("not a playthrough"))
	assert.Error(t, err)

	// Valid compression, truncated content.
	p := recordPlaythrough(5)
	raw, err := Unzip(p.Serialize())
	require.NoError(t, err)
	_, err = DeserializePlaythrough(Zip(raw[:len(raw)/2]))
	assert.Error(t, err)
}

func TestPlaythrough_DeserializeWrongVersion(t *testing.T) {
	p := recordPlaythrough(5)
	p.InputVersion = InputVersion + 1
	_, err := DeserializePlaythrough(p.Serialize())
	assert.ErrorContains(t, err, "InputVersion")
}

func TestPlaythrough_Clone(t *testing.T) {
	p := recordPlaythrough(5)
	c := p.Clone()
	assert.Equal(t, p, *c)

	c.History[0].Action = !c.History[0].Action
	assert.NotEqual(t, p.History[0], c.History[0])
}

func TestPlaythrough_Ids(t *testing.T) {
	p1 := NewPlaythrough(1, false, DefaultParams())
	p2 := NewPlaythrough(1, false, DefaultParams())
	assert.NotEqual(t, p1.Id, p2.Id)
}

func TestRegressionId_Deterministic(t *testing.T) {
	p := recordPlaythrough(5)
	id := RegressionId(&p)
	assert.Len(t, id, 64)

	// Does replaying the same inputs produce the same World at every step?
	assert.Equal(t, id, RegressionId(&p))

	// Does a deserialized copy replay the same way?
	p2, err := DeserializePlaythrough(p.Serialize())
	require.NoError(t, err)
	assert.Equal(t, id, RegressionId(&p2))

	// Does a different seed produce a different game?
	p3 := recordPlaythrough(6)
	assert.NotEqual(t, id, RegressionId(&p3))

	// Does a missing input produce a different game?
	p4 := p.Clone()
	p4.History[400].Action = false
	assert.NotEqual(t, id, RegressionId(p4))
}

func TestRegressionId_ReplayMatchesRecording(t *testing.T) {
	p := recordPlaythrough(9)

	w1 := NewWorldFromPlaythrough(p)
	defer w1.Destroy()
	for _, input := range p.History {
		w1.Step(input)
	}

	w2 := NewWorldFromPlaythrough(p)
	defer w2.Destroy()
	for _, input := range p.History {
		w2.Step(input)
	}

	assert.Equal(t, w1.StateBytes(), w2.StateBytes())
	assert.Equal(t, w1.SimTimeMs, w2.SimTimeMs)
}

// Playthrough with 1500 frames, part autopilot and part player.
func BenchmarkPlaythrough(b *testing.B) {
	p := recordPlaythrough(5)
	for b.Loop() {
		w := NewWorldFromPlaythrough(p)
		for i := range len(p.History) {
			w.Step(p.History[i])
		}
		w.Destroy()
	}
}

func BenchmarkRegressionId(b *testing.B) {
	p := recordPlaythrough(5)
	for b.Loop() {
		RegressionId(&p)
	}
}
