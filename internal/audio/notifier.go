package audio

import "github.com/gopxl/beep/v2"

// endNotifier sits between the Ctrl and the decoded stream. When the stream
// runs out it pads the chunk with silence, rewinds, pauses the Ctrl and
// reports the end. It runs on the speaker goroutine with the speaker lock
// held, so onEnd is dispatched on its own goroutine.
type endNotifier struct {
	seeker beep.StreamSeeker
	// chain builds the stream played from seeker. A resampler keeps state
	// across its source, so it is rebuilt after every rewind.
	chain func(beep.StreamSeeker) beep.Streamer
	src   beep.Streamer
	ctrl  *beep.Ctrl
	onEnd func()
}

func newEndNotifier(seeker beep.StreamSeeker, chain func(beep.StreamSeeker) beep.Streamer, onEnd func()) *endNotifier {
	if chain == nil {
		chain = func(s beep.StreamSeeker) beep.Streamer { return s }
	}
	return &endNotifier{seeker: seeker, chain: chain, src: chain(seeker), onEnd: onEnd}
}

func (e *endNotifier) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	if ok && n == len(samples) {
		return n, true
	}
	if n < 0 {
		n = 0
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	_ = e.seeker.Seek(0)
	e.src = e.chain(e.seeker)
	if e.ctrl != nil {
		e.ctrl.Paused = true
	}
	if e.onEnd != nil {
		go e.onEnd()
	}
	return len(samples), true
}

func (e *endNotifier) Err() error {
	return e.src.Err()
}
