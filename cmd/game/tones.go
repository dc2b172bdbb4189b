package main

import (
	"encoding/binary"
	"math"

	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/1siamBot/promethium/engine/audio"
)

const sampleRate = 44100

// tone is a short synthesized cue: a frequency sweep with a decay.
type tone struct {
	from, to float64 // Hz
	dur      float64 // seconds
	noise    float64 // 0..1 share of white noise
}

var tones = map[audio.SoundID]tone{
	audio.SndAttack:    {from: 900, to: 500, dur: 0.06, noise: 0.3},
	audio.SndExplosion: {from: 120, to: 40, dur: 0.45, noise: 0.8},
	audio.SndSelect:    {from: 660, to: 660, dur: 0.05},
	audio.SndMove:      {from: 520, to: 700, dur: 0.07},
	audio.SndBuild:     {from: 300, to: 300, dur: 0.12, noise: 0.2},
	audio.SndComplete:  {from: 440, to: 880, dur: 0.25},
	audio.SndProduced:  {from: 550, to: 740, dur: 0.15},
	audio.SndDeposit:   {from: 1200, to: 1500, dur: 0.05},
	audio.SndDepleted:  {from: 700, to: 200, dur: 0.3},
	audio.SndVictory:   {from: 440, to: 1320, dur: 1.2},
	audio.SndDefeat:    {from: 440, to: 110, dur: 1.2},
	audio.SndClick:     {from: 1000, to: 1000, dur: 0.02},
}

// tonePlayer plays synthesized cues through ebiten's audio context.
type tonePlayer struct {
	ctx  *ebaudio.Context
	pcm  map[audio.SoundID][]byte
	live []*ebaudio.Player
}

func newTonePlayer() *tonePlayer {
	p := &tonePlayer{
		ctx: ebaudio.NewContext(sampleRate),
		pcm: make(map[audio.SoundID][]byte, len(tones)),
	}
	for _, id := range audio.Sounds {
		if t, ok := tones[id]; ok {
			p.pcm[id] = synth(t, uint32(len(id)))
		}
	}
	return p
}

func (p *tonePlayer) Play(id audio.SoundID, volume float64) {
	buf, ok := p.pcm[id]
	if !ok {
		return
	}
	// drop finished players
	live := p.live[:0]
	for _, pl := range p.live {
		if pl.IsPlaying() {
			live = append(live, pl)
		}
	}
	p.live = live

	pl := p.ctx.NewPlayerFromBytes(buf)
	pl.SetVolume(volume)
	pl.Play()
	p.live = append(p.live, pl)
}

// synth renders t as 16-bit little-endian stereo PCM.
func synth(t tone, seed uint32) []byte {
	n := int(t.dur * sampleRate)
	out := make([]byte, 4*n)
	phase := 0.0
	rng := seed*2654435761 + 1
	for i := range n {
		k := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*k
		phase += 2 * math.Pi * freq / sampleRate
		// xorshift keeps the noise reproducible
		rng ^= rng << 13
		rng ^= rng >> 17
		rng ^= rng << 5
		noise := float64(rng)/math.MaxUint32*2 - 1
		v := (1-t.noise)*math.Sin(phase) + t.noise*noise
		v *= (1 - k) * 0.4
		s := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[4*i:], uint16(s))
		binary.LittleEndian.PutUint16(out[4*i+2:], uint16(s))
	}
	return out
}
