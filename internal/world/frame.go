package world

import "github.com/cespare/xxhash/v2"

// Frame labels for the generation milestones.
const (
	LabelCellularAutomata = "Cellular Automata Map"
	LabelPrefabPlaced     = "Found a place for the prefab"
)

// Frame is an immutable snapshot of a grid at one point in generation.
type Frame[A any] struct {
	label  string
	width  int
	height int
	tiles  []Tile[A]
}

// Label returns the frame's description.
func (f Frame[A]) Label() string {
	return f.label
}

// Width returns the width of the captured grid.
func (f Frame[A]) Width() int {
	return f.width
}

// Height returns the height of the captured grid.
func (f Frame[A]) Height() int {
	return f.height
}

// Tiles returns a copy of the captured tiles in row-major order.
func (f Frame[A]) Tiles() []Tile[A] {
	out := make([]Tile[A], len(f.tiles))
	copy(out, f.tiles)
	return out
}

// At returns the tile at (x, y), or false if outside the frame.
func (f Frame[A]) At(x, y int) (Tile[A], bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		var zero Tile[A]
		return zero, false
	}
	return f.tiles[y*f.width+x], true
}

// Fingerprint hashes the frame's kind layout. Display attributes are not
// included, so the same map rendered with different palettes hashes equally.
func (f Frame[A]) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, len(f.tiles))
	for _, t := range f.tiles {
		buf = append(buf, byte(t.Kind))
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

// Recorder collects frames in capture order.
type Recorder[A any] struct {
	frames []Frame[A]
}

// NewRecorder creates an empty recorder.
func NewRecorder[A any]() *Recorder[A] {
	return &Recorder[A]{}
}

// Capture snapshots the grid under the given label. Later changes to the grid
// do not affect the captured frame.
func (r *Recorder[A]) Capture(g *Grid[A], label string) Frame[A] {
	f := Frame[A]{
		label:  label,
		width:  g.Width,
		height: g.Height,
		tiles:  g.Tiles(),
	}
	r.frames = append(r.frames, f)
	return f
}

// Frames returns the captured frames in order.
func (r *Recorder[A]) Frames() []Frame[A] {
	out := make([]Frame[A], len(r.frames))
	copy(out, r.frames)
	return out
}
