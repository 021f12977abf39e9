// Package window holds saved window placements and fits them back onto the
// monitors that are available at restore time.
package window

// State is the persisted show state of a window.
type State string

const (
	StateNormal    State = "normal"
	StateMaximized State = "maximized"
	StateMinimized State = "minimized"
)

// ParseState returns the State named s.
func ParseState(s string) (State, bool) {
	switch State(s) {
	case StateNormal, StateMaximized, StateMinimized:
		return State(s), true
	}
	return "", false
}

// Rect is a rectangle in virtual-screen coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// IntersectionArea returns the area shared by r and o.
func (r Rect) IntersectionArea(o Rect) int64 {
	w := min(r.Right(), o.Right()) - max(r.X, o.X)
	h := min(r.Bottom(), o.Bottom()) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return int64(w) * int64(h)
}

// Placement is a saved window position.
type Placement struct {
	State  State
	Bounds Rect
	// DPI is the monitor DPI the bounds were recorded at, when known.
	DPI *uint32
}

// Clamped returns p with width and height of at least 1.
func (p Placement) Clamped() Placement {
	p.Bounds.Width = max(p.Bounds.Width, 1)
	p.Bounds.Height = max(p.Bounds.Height, 1)
	return p
}

// WorkArea is the usable part of one monitor.
type WorkArea struct {
	Rect
	Primary bool
}

// WorkAreaSource lists the usable monitor work areas.
type WorkAreaSource interface {
	WorkAreas() []WorkArea
}

// StaticWorkAreas is a fixed WorkAreaSource.
type StaticWorkAreas []WorkArea

// WorkAreas implements WorkAreaSource.
func (s StaticWorkAreas) WorkAreas() []WorkArea { return s }
