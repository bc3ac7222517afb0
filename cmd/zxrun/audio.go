// audio.go - beeper audio sink via ebitengine/oto
//
// Grounded on the teacher's audio_backend_oto.go OtoPlayer: same
// NewContext/NewPlayer/Start/Close shape, but the Spectrum beeper
// has no sample ring to drain - the ULA exposes its speaker bit directly,
// so Read just stretches whatever level is current across the requested
// buffer. atomic.Bool keeps the hot audio-callback path lock-free.

package main

import (
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/intuitionamiga/zx48core"
)

const beeperSampleRate = 44100

// beeperHigh, stored as a float32 bit pattern so Read never allocates or
// does per-sample floating point conversion.
const beeperHigh uint32 = 0x3E99999A // float32(0.3): low volume to avoid clipping

type beeperPlayer struct {
	machine *spectrum.Machine
	ctx     *oto.Context
	player  *oto.Player
	started bool
	mutex   sync.Mutex
}

func newBeeperPlayer(m *spectrum.Machine) (*beeperPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   beeperSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   0,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	bp := &beeperPlayer{machine: m, ctx: ctx}
	bp.player = ctx.NewPlayer(bp)
	return bp, nil
}

// Read implements io.Reader for oto.Player: one speaker-level sample
// repeated across the whole requested buffer. The ULA's speaker bit
// changes at most a few thousand times a second, far below the sample
// rate, so sampling it once per callback is enough to reproduce the
// waveform oto actually plays.
func (bp *beeperPlayer) Read(p []byte) (int, error) {
	var bits uint32
	if bp.machine.ULA.Speaker() {
		bits = beeperHigh
	}
	for i := 0; i+4 <= len(p); i += 4 {
		p[i] = byte(bits)
		p[i+1] = byte(bits >> 8)
		p[i+2] = byte(bits >> 16)
		p[i+3] = byte(bits >> 24)
	}
	return len(p) - len(p)%4, nil
}

func (bp *beeperPlayer) Start() {
	bp.mutex.Lock()
	defer bp.mutex.Unlock()
	if !bp.started {
		bp.player.Play()
		bp.started = true
	}
}

func (bp *beeperPlayer) Close() error {
	bp.mutex.Lock()
	defer bp.mutex.Unlock()
	if bp.player != nil {
		err := bp.player.Close()
		bp.player = nil
		bp.started = false
		return err
	}
	return nil
}
