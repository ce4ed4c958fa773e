package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/marisvali/tower/sound"
	"go.uber.org/zap"
)

// Sounds plays the effects of the game. Failing to produce a sound is logged
// and turns sound off, the game goes on without it.
type Sounds struct {
	ctx      *audio.Context
	volume   float64
	chimes   map[int64][]byte
	players  []*audio.Player
	log      *zap.Logger
	disabled bool
}

func NewSounds(volume float64, log *zap.Logger) (s Sounds) {
	s.ctx = audio.CurrentContext()
	if s.ctx == nil {
		s.ctx = audio.NewContext(int(sound.SampleRate))
	}
	s.volume = volume
	s.chimes = map[int64][]byte{}
	s.log = log
	return
}

// SetVolume changes the volume of the sounds played from now on.
func (s *Sounds) SetVolume(volume float64) {
	if volume == s.volume {
		return
	}
	s.volume = volume
	clear(s.chimes)
}

// PlayChime plays the sound of a perfect placement for a combo.
func (s *Sounds) PlayChime(combo int64) {
	if s.disabled || s.ctx == nil {
		return
	}

	combo = min(combo, sound.MaxChimeCombo)
	pcm, ok := s.chimes[combo]
	if !ok {
		var err error
		pcm, err = sound.Chime(combo, s.volume)
		if err != nil {
			s.log.Warn("sound disabled", zap.Error(err))
			s.disabled = true
			return
		}
		s.chimes[combo] = pcm
	}

	// Keep the players that are still playing referenced until they finish.
	n := 0
	for _, p := range s.players {
		if p.IsPlaying() {
			s.players[n] = p
			n++
		}
	}
	clear(s.players[n:])
	s.players = s.players[:n]

	p := s.ctx.NewPlayerFromBytes(pcm)
	p.Play()
	s.players = append(s.players, p)
}
