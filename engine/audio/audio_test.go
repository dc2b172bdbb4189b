package audio

import (
	"math"
	"testing"

	"github.com/1siamBot/promethium/engine/core"
	"github.com/1siamBot/promethium/engine/game"
)

type played struct {
	id  SoundID
	vol float64
}

type recorder struct{ got []played }

func (r *recorder) Play(id SoundID, vol float64) { r.got = append(r.got, played{id, vol}) }

func TestVolumeFallsOffWithDistance(t *testing.T) {
	rec := &recorder{}
	am := NewAudioManager(rec)
	am.SFXVolume = 1
	am.SetCameraPos(0, 0)

	am.PlaySFX(SndAttack, 0, 0)
	am.PlaySFX(SndAttack, 15, 0)
	am.PlaySFX(SndAttack, 30, 0)

	if len(rec.got) != 2 {
		t.Fatalf("played %d sounds, want 2 (out of range is silent)", len(rec.got))
	}
	if rec.got[0].vol != 1 {
		t.Errorf("at listener vol = %v, want 1", rec.got[0].vol)
	}
	if math.Abs(rec.got[1].vol-0.5) > 1e-9 {
		t.Errorf("half range vol = %v, want 0.5", rec.got[1].vol)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	am := NewAudioManager(nil)
	for _, c := range []struct{ in, want float64 }{{-1, 0}, {2, 1}, {0.3, 0.3}, {math.NaN(), 0}} {
		am.SetVolume(c.in)
		if am.MasterVolume != c.want {
			t.Errorf("SetVolume(%v) = %v, want %v", c.in, am.MasterVolume, c.want)
		}
	}
}

func TestCueFor(t *testing.T) {
	cases := []struct {
		name       string
		ev         core.Event
		want       SoundID
		positional bool
	}{
		{"shot", core.Event{Type: core.EvtUnitAttacked, Payload: game.ShotEvent{At: core.Pos(3, 4)}}, SndAttack, true},
		{"death", core.Event{Type: core.EvtUnitDied, Payload: game.UnitEvent{}}, SndExplosion, true},
		{"produced", core.Event{Type: core.EvtUnitProduced, Payload: game.UnitEvent{Faction: core.FactionPlayer}}, SndProduced, false},
		{"placed", core.Event{Type: core.EvtBuildingPlaced, Payload: game.BuildingEvent{}}, SndBuild, true},
		{"built", core.Event{Type: core.EvtBuildingConstructed, Payload: game.BuildingEvent{}}, SndComplete, false},
		{"razed", core.Event{Type: core.EvtBuildingDestroyed, Payload: game.BuildingEvent{}}, SndExplosion, true},
		{"depleted", core.Event{Type: core.EvtNodeDepleted, Payload: game.NodeEvent{}}, SndDepleted, true},
		{"deposit", core.Event{Type: core.EvtResourceDeposited, Payload: game.DepositEvent{}}, SndDeposit, false},
		{"win", core.Event{Type: core.EvtGameEnded, Payload: game.EndEvent{Result: core.ResultWin}}, SndVictory, false},
		{"lose", core.Event{Type: core.EvtGameEnded, Payload: game.EndEvent{Result: core.ResultLose}}, SndDefeat, false},
	}
	for _, c := range cases {
		cue, ok := CueFor(c.ev)
		if !ok || cue.Sound != c.want || cue.Positional != c.positional {
			t.Errorf("%s: cue = %+v ok=%v, want %s positional=%v", c.name, cue, ok, c.want, c.positional)
		}
	}

	enemyBuilt := core.Event{Type: core.EvtUnitProduced, Payload: game.UnitEvent{Faction: core.FactionEnemy}}
	if _, ok := CueFor(enemyBuilt); ok {
		t.Error("enemy production should be silent")
	}
	if _, ok := CueFor(core.Event{Type: core.EvtUnitDied}); ok {
		t.Error("payload-less event produced a cue")
	}
}

func TestOneCuePerTick(t *testing.T) {
	rec := &recorder{}
	am := NewAudioManager(rec)
	bus := core.NewEventBus()
	am.Attach(bus)

	shot := func(tick uint64) core.Event {
		return core.Event{Type: core.EvtUnitAttacked, Tick: tick, Payload: game.ShotEvent{At: core.Pos(1, 1)}}
	}
	bus.Emit(shot(1))
	bus.Emit(shot(1))
	bus.Emit(core.Event{Type: core.EvtResourceDeposited, Tick: 1, Payload: game.DepositEvent{}})
	bus.Dispatch()
	bus.Emit(shot(2))
	bus.Dispatch()

	var ids []SoundID
	for _, p := range rec.got {
		ids = append(ids, p.id)
	}
	if len(ids) != 3 || ids[0] != SndAttack || ids[1] != SndDeposit || ids[2] != SndAttack {
		t.Fatalf("played %v", ids)
	}
}

func TestMuted(t *testing.T) {
	rec := &recorder{}
	am := NewAudioManager(rec)
	am.Muted = true
	am.PlayUI(SndClick)
	am.PlaySFX(SndAttack, 0, 0)
	if len(rec.got) != 0 {
		t.Fatalf("muted manager played %d sounds", len(rec.got))
	}
}
