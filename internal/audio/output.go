package audio

import (
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// output is the mixer the engine mounts streams on.
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// speakerOutput drives the process-wide beep speaker, which may only be
// initialised once.
type speakerOutput struct {
	once sync.Once
	err  error
}

var defaultSpeaker = &speakerOutput{}

func (s *speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	s.once.Do(func() {
		s.err = speaker.Init(rate, bufferSize)
	})
	return s.err
}

func (s *speakerOutput) Play(st beep.Streamer) { speaker.Play(st) }
func (s *speakerOutput) Lock()                 { speaker.Lock() }
func (s *speakerOutput) Unlock()               { speaker.Unlock() }
