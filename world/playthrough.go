package world

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// InputVersion is the version of the byte representation of the Playthrough
// structure. If serializing a Playthrough produces different bytes after a
// change, InputVersion must change as well.
const InputVersion = 1

// Playthrough represents all the input sent to a World during a run of the
// game. Given this input and a compatible simulation, the same World comes
// out in the end.
type Playthrough struct {
	InputVersion      int64
	SimulationVersion int64
	ReleaseVersion    int64
	Id                uuid.UUID
	Seed              int64
	// StartAutopilot is true if the World was started with the autopilot
	// playing, which is what the home screen does.
	StartAutopilot bool
	Params         Params
	History        []PlayerInput
}

func NewPlaythrough(seed int64, startAutopilot bool, params Params) (p Playthrough) {
	p.InputVersion = InputVersion
	p.SimulationVersion = SimulationVersion
	p.Id = uuid.New()
	p.Seed = seed
	p.StartAutopilot = startAutopilot
	p.Params = params
	return
}

func (p *Playthrough) Serialize() []byte {
	buf := new(bytes.Buffer)
	Serialize(buf, p.InputVersion)
	Serialize(buf, p.SimulationVersion)
	Serialize(buf, p.ReleaseVersion)
	Serialize(buf, p.Id)
	Serialize(buf, p.Seed)
	Serialize(buf, p.StartAutopilot)
	Serialize(buf, p.Params)
	SerializeSlice(buf, p.History)
	return Zip(buf.Bytes())
}

func (p *Playthrough) Clone() *Playthrough {
	clone := *p
	clone.History = slices.Clone(p.History)
	return &clone
}

func DeserializePlaythrough(data []byte) (p Playthrough, err error) {
	raw, err := Unzip(data)
	if err != nil {
		return p, err
	}

	d := &decoder{r: bytes.NewReader(raw)}
	d.read(&p.InputVersion)
	if d.err == nil && p.InputVersion != InputVersion {
		return p, fmt.Errorf("can't deserialize this playthrough - we are at "+
			"InputVersion %d and playthrough was generated with InputVersion "+
			"%d", InputVersion, p.InputVersion)
	}
	d.read(&p.SimulationVersion)
	d.read(&p.ReleaseVersion)
	d.read(&p.Id)
	d.read(&p.Seed)
	d.read(&p.StartAutopilot)
	d.read(&p.Params)
	readSlice(d, &p.History)
	if d.err != nil {
		return p, fmt.Errorf("deserialize playthrough: %w", d.err)
	}
	return p, nil
}

// NewWorldFromPlaythrough creates the World in which the playthrough was
// recorded, before any of its inputs were applied.
func NewWorldFromPlaythrough(p Playthrough) *World {
	if p.SimulationVersion != SimulationVersion {
		Check(fmt.Errorf("can't replay this playthrough - we are at "+
			"SimulationVersion %d and playthrough was generated with "+
			"SimulationVersion %d", SimulationVersion, p.SimulationVersion))
	}
	w := NewWorld(p.Seed, p.Params, nil)
	w.Start(p.StartAutopilot)
	return w
}
