package blockbreaker

import (
	"time"

	"github.com/vovakirdan/block-breaker/internal/config"
	"github.com/vovakirdan/block-breaker/internal/core"
)

// BlockType is an immutable block category.
type BlockType struct {
	Name     string
	Color    core.Color
	Duration time.Duration // Lifetime while the game is running
	Value    int           // Points awarded when struck
}

// BlockTable is the fixed set of block types and their spawn weights.
// It is built once per round and shared read-only by all blocks.
type BlockTable struct {
	types      []BlockType
	thresholds []float64 // Cumulative probabilities, last is 1
}

// NewBlockTable builds a table from configuration.
// Weights are normalised so that they need not sum to one.
func NewBlockTable(cfgs []config.BlockTypeConfig) *BlockTable {
	t := &BlockTable{
		types:      make([]BlockType, 0, len(cfgs)),
		thresholds: make([]float64, 0, len(cfgs)),
	}

	total := 0.0
	for _, c := range cfgs {
		total += c.Weight
	}
	if total <= 0 {
		total = 1
	}

	acc := 0.0
	for _, c := range cfgs {
		color, _ := core.ParseColor(c.Color)
		t.types = append(t.types, BlockType{
			Name:     c.Name,
			Color:    color,
			Duration: time.Duration(c.DurationMS) * time.Millisecond,
			Value:    c.Value,
		})
		acc += c.Weight / total
		t.thresholds = append(t.thresholds, acc)
	}
	if n := len(t.thresholds); n > 0 {
		t.thresholds[n-1] = 1
	}
	return t
}

// DefaultBlockTable returns the red/blue/green table.
func DefaultBlockTable() *BlockTable {
	return NewBlockTable(config.DefaultBlockBreakerConfig().Blocks.Types)
}

// Len returns the number of block types.
func (t *BlockTable) Len() int {
	return len(t.types)
}

// Lookup returns the type with the given name, or nil.
func (t *BlockTable) Lookup(name string) *BlockType {
	for i := range t.types {
		if t.types[i].Name == name {
			return &t.types[i]
		}
	}
	return nil
}

// Draw picks a block type using one uniform draw against the cumulative
// thresholds: with the default table, < 0.1 is red, < 0.4 blue, else green.
func (t *BlockTable) Draw(rng *core.RNG) *BlockType {
	if len(t.types) == 0 {
		return nil
	}
	r := rng.Float64()
	for i, threshold := range t.thresholds {
		if r < threshold {
			return &t.types[i]
		}
	}
	return &t.types[len(t.types)-1]
}

// Block is a destructible, timed block.
// Lifetime decay is frozen while the game is paused.
type Block struct {
	Pos     core.GridPosition
	Created time.Time
	Type    *BlockType
	Broken  bool

	pausedAt    time.Time     // Zero while running
	pausedTotal time.Duration // Completed pauses
}

// NewBlock creates a block at pos created at now.
func NewBlock(pos core.GridPosition, typ *BlockType, now time.Time) *Block {
	return &Block{
		Pos:     pos,
		Created: now,
		Type:    typ,
	}
}

// Pause starts a paused interval. Calling it twice keeps the first start.
func (b *Block) Pause(now time.Time) {
	if b.pausedAt.IsZero() {
		b.pausedAt = now
	}
}

// Resume ends the current paused interval.
func (b *Block) Resume(now time.Time) {
	if b.pausedAt.IsZero() {
		return
	}
	b.pausedTotal += now.Sub(b.pausedAt)
	b.pausedAt = time.Time{}
}

// PausedFor returns the total time the block has spent paused.
func (b *Block) PausedFor(now time.Time) time.Duration {
	total := b.pausedTotal
	if !b.pausedAt.IsZero() {
		total += now.Sub(b.pausedAt)
	}
	return total
}

// Age returns how long the block has existed while the game was running.
func (b *Block) Age(now time.Time) time.Duration {
	return now.Sub(b.Created) - b.PausedFor(now)
}

// Remaining returns the lifetime left: duration - (elapsed - paused).
func (b *Block) Remaining(now time.Time) time.Duration {
	return b.Type.Duration - b.Age(now)
}

// Alpha returns the block's opacity in [0, 1], fading as its lifetime runs out.
func (b *Block) Alpha(now time.Time) float64 {
	if b.Type.Duration <= 0 {
		return 0
	}
	return core.ClampF(float64(b.Remaining(now))/float64(b.Type.Duration), 0, 1)
}

// Expired reports whether the block's lifetime has run out.
func (b *Block) Expired(now time.Time) bool {
	return b.Remaining(now) <= 0
}
