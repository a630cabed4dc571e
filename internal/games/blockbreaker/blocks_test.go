package blockbreaker

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestBlockTableDistribution(t *testing.T) {
	table := DefaultBlockTable()
	rng := core.NewRNG(42)

	const draws = 10000
	counts := make(map[string]int)
	for range draws {
		counts[table.Draw(rng).Name]++
	}

	want := map[string]float64{"red": 0.1, "blue": 0.3, "green": 0.6}
	for name, p := range want {
		got := float64(counts[name]) / draws
		if math.Abs(got-p) > 0.02 {
			t.Errorf("%s: frequency %.3f, want %.2f", name, got, p)
		}
	}
}

func TestBlockTableDefaults(t *testing.T) {
	table := DefaultBlockTable()
	if table.Len() != 3 {
		t.Fatalf("expected 3 types, got %d", table.Len())
	}

	tests := []struct {
		name     string
		duration time.Duration
		value    int
		color    core.Color
	}{
		{"red", 5 * time.Second, 10, core.ColorRed},
		{"blue", 10 * time.Second, 5, core.ColorBlue},
		{"green", 15 * time.Second, 3, core.ColorGreen},
	}
	for _, tt := range tests {
		typ := table.Lookup(tt.name)
		if typ == nil {
			t.Fatalf("type %q missing", tt.name)
		}
		if typ.Duration != tt.duration || typ.Value != tt.value || typ.Color != tt.color {
			t.Errorf("%s: got %+v", tt.name, *typ)
		}
	}

	if table.Lookup("purple") != nil {
		t.Error("Lookup of unknown type should return nil")
	}
}

func TestBlockTableNormalisesWeights(t *testing.T) {
	table := NewBlockTable([]config.BlockTypeConfig{
		{Name: "a", Color: "red", DurationMS: 1000, Value: 1, Weight: 3},
		{Name: "b", Color: "blue", DurationMS: 1000, Value: 1, Weight: 1},
	})
	rng := core.NewRNG(7)

	a := 0
	for range 4000 {
		if table.Draw(rng).Name == "a" {
			a++
		}
	}
	if got := float64(a) / 4000; math.Abs(got-0.75) > 0.03 {
		t.Errorf("weight 3:1 gave frequency %.3f for a", got)
	}
}

func TestBlockTableEmpty(t *testing.T) {
	table := NewBlockTable(nil)
	if table.Draw(core.NewRNG(1)) != nil {
		t.Error("empty table should draw nil")
	}
}

func TestBlockLifetime(t *testing.T) {
	typ := DefaultBlockTable().Lookup("blue")
	b := NewBlock(core.Pos(5, 5), typ, epoch)

	if got := b.Alpha(epoch); got != 1 {
		t.Errorf("fresh block alpha: got %v, want 1", got)
	}

	half := epoch.Add(5 * time.Second)
	if got := b.Alpha(half); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half-life alpha: got %v, want 0.5", got)
	}

	if b.Expired(epoch.Add(10*time.Second - time.Millisecond)) {
		t.Error("block expired before its lifetime ran out")
	}

	end := epoch.Add(10 * time.Second)
	if !b.Expired(end) {
		t.Error("block should expire when remaining reaches zero")
	}
	if got := b.Alpha(end); got != 0 {
		t.Errorf("alpha at zero remaining: got %v, want 0", got)
	}

	after := epoch.Add(11 * time.Second)
	if !b.Expired(after) {
		t.Error("block should stay expired once remaining is negative")
	}
	if got := b.Alpha(after); got != 0 {
		t.Errorf("alpha after expiry: got %v, want 0", got)
	}
}

func TestBlockPauseFreezesLifetime(t *testing.T) {
	typ := DefaultBlockTable().Lookup("blue")
	b := NewBlock(core.Pos(5, 5), typ, epoch)

	pauseAt := epoch.Add(time.Second)
	b.Pause(pauseAt)

	for _, d := range []time.Duration{0, time.Second, 5 * time.Second, time.Minute} {
		if got := b.Remaining(pauseAt.Add(d)); got != 9*time.Second {
			t.Errorf("paused %v: remaining %v, want 9s", d, got)
		}
	}

	// A second Pause keeps the original start
	b.Pause(pauseAt.Add(30 * time.Second))

	resumeAt := pauseAt.Add(time.Minute)
	b.Resume(resumeAt)
	if got := b.PausedFor(resumeAt); got != time.Minute {
		t.Errorf("PausedFor: got %v, want 1m", got)
	}
	if got := b.Remaining(resumeAt.Add(time.Second)); got != 8*time.Second {
		t.Errorf("after resume: remaining %v, want 8s", got)
	}
}

func TestBlockPrunedWhenLifetimeReachesZero(t *testing.T) {
	g, clock := newTestGame(t)
	red := g.table.Lookup("red")

	g.blocks = []*Block{NewBlock(core.Pos(5, 5), red, clock.Now())}
	g.setPaused(false, clock.Now())
	clock.Advance(red.Duration)

	g.expireBlocks(clock.Now())
	g.pruneBlocks()

	if len(g.blocks) != 0 {
		t.Errorf("block with zero lifetime left should be gone, have %d", len(g.blocks))
	}
}
