package window

// Normalizer fits placements onto the work areas reported by its source.
type Normalizer struct {
	source WorkAreaSource
}

// NewNormalizer creates a Normalizer backed by source.
func NewNormalizer(source WorkAreaSource) *Normalizer {
	return &Normalizer{source: source}
}

// Normalize fits saved onto the current monitors at currentDPI.
func (n *Normalizer) Normalize(saved Placement, currentDPI uint32) Placement {
	var areas []WorkArea
	if n.source != nil {
		areas = n.source.WorkAreas()
	}
	return NormalizeWindowPlacement(saved, currentDPI, areas)
}

// NormalizeWindowPlacement clamps the size to at least 1x1, rescales it when
// it was recorded at a different DPI, and keeps it where it was if it fits
// inside a work area. Otherwise the work area with the largest overlap (the
// primary one when nothing overlaps) is chosen and the window is shrunk and
// moved to lie entirely within it.
func NormalizeWindowPlacement(saved Placement, currentDPI uint32, areas []WorkArea) Placement {
	p := saved.Clamped()

	if p.DPI != nil && *p.DPI > 0 && currentDPI > 0 && *p.DPI != currentDPI {
		p.Bounds.Width = scale(p.Bounds.Width, currentDPI, *p.DPI)
		p.Bounds.Height = scale(p.Bounds.Height, currentDPI, *p.DPI)
		p = p.Clamped()
	}
	if currentDPI > 0 {
		dpi := currentDPI
		p.DPI = &dpi
	}

	if len(areas) == 0 {
		return p
	}

	desired := p.Bounds
	for _, a := range areas {
		if a.Contains(desired) {
			return p
		}
	}

	target := bestArea(desired, areas)
	p.Bounds = fitInto(desired, target.Rect)
	return p
}

// scale multiplies v by num/den, rounding half away from zero.
func scale(v int, num, den uint32) int {
	n := int64(v) * int64(num)
	d := int64(den)
	if n >= 0 {
		return int((n + d/2) / d)
	}
	return int((n - d/2) / d)
}

func bestArea(desired Rect, areas []WorkArea) WorkArea {
	best := -1
	var bestArea int64
	for i, a := range areas {
		overlap := a.IntersectionArea(desired)
		if overlap > bestArea {
			best, bestArea = i, overlap
		}
	}
	if best >= 0 {
		return areas[best]
	}
	for _, a := range areas {
		if a.Primary {
			return a
		}
	}
	return areas[0]
}

func fitInto(r, area Rect) Rect {
	r.Width = max(min(r.Width, area.Width), 1)
	r.Height = max(min(r.Height, area.Height), 1)

	if r.X < area.X {
		r.X = area.X
	}
	if r.Right() > area.Right() {
		r.X = area.Right() - r.Width
	}
	if r.Y < area.Y {
		r.Y = area.Y
	}
	if r.Bottom() > area.Bottom() {
		r.Y = area.Bottom() - r.Height
	}
	return r
}
