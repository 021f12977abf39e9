package config

import (
	"maps"
	"slices"

	"github.com/dshills/twinpane/internal/jsonvalue"
	"github.com/dshills/twinpane/internal/window"
)

func (p *sectionParser) parseWindows(obj jsonvalue.Value) map[string]window.Placement {
	out := make(map[string]window.Placement, obj.Len())
	for _, m := range obj.Members() {
		if m.Key == "" || m.Value.Kind() != jsonvalue.Object {
			p.logger.Warn("ignoring window placement", "window", m.Key)
			continue
		}
		out[m.Key] = parsePlacement(m.Value)
	}
	return out
}

func parsePlacement(obj jsonvalue.Value) window.Placement {
	pl := window.Placement{State: window.StateNormal}
	if s, ok := fieldString(obj, "state"); ok {
		if st, ok := window.ParseState(s); ok {
			pl.State = st
		}
	}
	set(&pl.Bounds.X)(fieldInt(obj, "x"))
	set(&pl.Bounds.Y)(fieldInt(obj, "y"))
	set(&pl.Bounds.Width)(fieldInt(obj, "width"))
	set(&pl.Bounds.Height)(fieldInt(obj, "height"))
	if dpi, ok := fieldUint32(obj, "dpi", 0, 0xFFFF); ok && dpi > 0 {
		pl.DPI = &dpi
	}
	return pl.Clamped()
}

func marshalWindows(windows map[string]window.Placement) (jsonvalue.Value, bool) {
	if len(windows) == 0 {
		return jsonvalue.Value{}, false
	}
	o := jsonvalue.NewObjectBuilder()
	for _, id := range slices.Sorted(maps.Keys(windows)) {
		o.Set(id, placementValue(windows[id]))
	}
	return o.Build(), true
}

func placementValue(pl window.Placement) jsonvalue.Value {
	pl = pl.Clamped()
	o := jsonvalue.NewObjectBuilder()
	if pl.State != "" {
		emitString(o, "state", pl.State, window.StateNormal)
	}
	o.Set("x", jsonvalue.IntValue(int64(pl.Bounds.X)))
	o.Set("y", jsonvalue.IntValue(int64(pl.Bounds.Y)))
	o.Set("width", jsonvalue.IntValue(int64(pl.Bounds.Width)))
	o.Set("height", jsonvalue.IntValue(int64(pl.Bounds.Height)))
	if pl.DPI != nil && *pl.DPI > 0 {
		o.Set("dpi", jsonvalue.UintValue(uint64(*pl.DPI)))
	}
	return o.Build()
}
