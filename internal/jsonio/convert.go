package jsonio

import (
	"sort"

	"github.com/metrostudio/core/internal/model"
)

// ToProject converts the wire document into the core's working model.
// It performs shape translation only (array-of-ids to set, nested point
// to model.Point); semantic checks (dangling references, duplicate ids)
// are Project.Validate's job, run by the caller after this.
func (d *Document) ToProject() *model.Project {
	stations := make([]model.Station, len(d.Stations))
	for i, s := range d.Stations {
		st := model.Station{
			ID:      s.ID,
			Names:   s.Names,
			Lng:     s.Lng,
			Lat:     s.Lat,
			LineIDs: toSet(s.LineIDs),
		}
		if s.DisplayPos != nil {
			st.DisplayPos = model.Point{X: s.DisplayPos.X, Y: s.DisplayPos.Y}
		}
		stations[i] = st
	}

	edges := make([]model.Edge, len(d.Edges))
	for i, e := range d.Edges {
		waypoints := make([]model.Point, len(e.Waypoints))
		for j, p := range e.Waypoints {
			waypoints[j] = model.Point{X: p.Lng, Y: p.Lat}
		}
		edges[i] = model.Edge{
			ID:            e.ID,
			FromID:        e.FromID,
			ToID:          e.ToID,
			Waypoints:     waypoints,
			LengthMeters:  e.LengthMeters,
			SharedByLines: toSet(e.SharedByLines),
		}
	}

	lines := make([]model.Line, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = model.Line{
			ID:      l.ID,
			Names:   l.Names,
			Color:   l.Color,
			Status:  model.LineStatus(l.Status),
			Style:   l.Style,
			IsLoop:  l.IsLoop,
			EdgeIDs: append([]string(nil), l.EdgeIDs...),
		}
	}

	return &model.Project{
		ID:       d.ID,
		Name:     d.Name,
		Region:   d.Region,
		Stations: stations,
		Edges:    edges,
		Lines:    lines,
		Config:   d.LayoutConfig,
		Meta:     toModelLayoutMeta(d.LayoutMeta),
	}
}

// ApplyLayout writes an optimizer result back into the document in
// place: station display positions and layoutMeta are overwritten,
// every other field (region, regionBoundary, timelineEvents, meta,
// project identity) is left untouched, which is what makes a
// decode-optimize-encode cycle lossless for everything the core itself
// does not compute.
func (d *Document) ApplyLayout(stations []model.Station, meta model.LayoutMeta) {
	byID := make(map[string]model.Station, len(stations))
	for _, s := range stations {
		byID[s.ID] = s
	}
	for i := range d.Stations {
		s, ok := byID[d.Stations[i].ID]
		if !ok {
			continue
		}
		d.Stations[i].DisplayPos = &displayPosDoc{X: s.DisplayPos.X, Y: s.DisplayPos.Y}
	}
	d.LayoutMeta = fromModelLayoutMeta(meta)
}

// NewDocument builds a fresh Document from a core Project, for callers
// that construct a project programmatically (e.g. generated test data)
// rather than importing one.
func NewDocument(p *model.Project) *Document {
	stations := make([]stationDoc, len(p.Stations))
	for i, s := range p.Stations {
		sd := stationDoc{
			ID:      s.ID,
			Names:   s.Names,
			Lng:     s.Lng,
			Lat:     s.Lat,
			LineIDs: fromSet(s.LineIDs),
		}
		if s.DisplayPos != (model.Point{}) {
			sd.DisplayPos = &displayPosDoc{X: s.DisplayPos.X, Y: s.DisplayPos.Y}
		}
		stations[i] = sd
	}

	edges := make([]edgeDoc, len(p.Edges))
	for i, e := range p.Edges {
		waypoints := make([]pointDoc, len(e.Waypoints))
		for j, pt := range e.Waypoints {
			waypoints[j] = pointDoc{Lng: pt.X, Lat: pt.Y}
		}
		edges[i] = edgeDoc{
			ID:            e.ID,
			FromID:        e.FromID,
			ToID:          e.ToID,
			Waypoints:     waypoints,
			LengthMeters:  e.LengthMeters,
			SharedByLines: fromSet(e.SharedByLines),
		}
	}

	lines := make([]lineDoc, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = lineDoc{
			ID:      l.ID,
			Names:   l.Names,
			Color:   l.Color,
			Status:  string(l.Status),
			Style:   l.Style,
			IsLoop:  l.IsLoop,
			EdgeIDs: append([]string(nil), l.EdgeIDs...),
		}
	}

	return &Document{
		ProjectVersion: ProjectVersion,
		ID:             p.ID,
		Name:           p.Name,
		Region:         p.Region,
		Stations:       stations,
		Edges:          edges,
		Lines:          lines,
		LayoutConfig:   p.Config,
		LayoutMeta:     fromModelLayoutMeta(p.Meta),
	}
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func fromSet(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func toModelLayoutMeta(m layoutMetaDoc) model.LayoutMeta {
	labels := make(map[string]model.LabelPlacement, len(m.StationLabels))
	for id, l := range m.StationLabels {
		labels[id] = model.LabelPlacement{DX: l.DX, DY: l.DY, Anchor: model.LabelAnchor(l.Anchor)}
	}
	directions := make(map[string]int, len(m.EdgeDirections))
	for id, dir := range m.EdgeDirections {
		directions[id] = dir
	}
	return model.LayoutMeta{StationLabels: labels, EdgeDirections: directions}
}

func fromModelLayoutMeta(m model.LayoutMeta) layoutMetaDoc {
	labels := make(map[string]labelDoc, len(m.StationLabels))
	for id, l := range m.StationLabels {
		labels[id] = labelDoc{DX: l.DX, DY: l.DY, Anchor: string(l.Anchor)}
	}
	directions := make(map[string]int, len(m.EdgeDirections))
	for id, dir := range m.EdgeDirections {
		directions[id] = dir
	}
	return layoutMetaDoc{StationLabels: labels, EdgeDirections: directions}
}
