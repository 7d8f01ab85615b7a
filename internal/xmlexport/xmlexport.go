// Package xmlexport renders a line's branch topology analysis (spec
// §6.4) as XML. No library in the pack touches XML at all — the
// teacher's own structured-document writer (pkg/export/graph_snapshot.go)
// builds SVG by hand over an io.Writer rather than through a marshal
// step, because SVG's attribute set is large and loosely typed. This
// shape is small, fixed, and order-sensitive (RightBranch before Trunk
// before BranchInterval before LeftBranch), so encoding/xml's
// struct-tag marshaling is a better fit than hand-written string
// building: it gets correct attribute escaping and element ordering for
// free, which is exactly what testable property 10 (XML round-trip
// integrity) needs.
package xmlexport

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/metrostudio/core/internal/model"
)

type stationRef struct {
	ID string `xml:"id,attr"`
}

func stationRefs(ids []string) []stationRef {
	if len(ids) == 0 {
		return nil
	}
	out := make([]stationRef, len(ids))
	for i, id := range ids {
		out[i] = stationRef{ID: id}
	}
	return out
}

type branchRef struct {
	AttachTo string `xml:"attachTo,attr"`
}

type branchInterval struct {
	FromStation string `xml:"fromStation,attr"`
	ToStation   string `xml:"toStation,attr"`
}

type midBranch struct {
	AttachTo string       `xml:"attachTo,attr"`
	Stations []stationRef `xml:"Station"`
}

type trunk struct {
	Stations []stationRef `xml:"Station"`
}

type loop struct {
	Stations []stationRef `xml:"Station"`
}

type invalidComponent struct {
	Reason string `xml:"reason,attr"`
}

// metroLine is one connected component of a line, shaped per spec §6.4:
// an optional RightBranch (the component's left open-end branch —
// the naming is the spec's, not a typo), a Trunk or a Loop, zero or
// more BranchInterval elements, any MidBranch hanging branches, and an
// optional LeftBranch (the right open-end branch).
type metroLine struct {
	XMLName xml.Name `xml:"MetroLine"`

	ID     string `xml:"id,attr"`
	NameZh string `xml:"nameZh,attr"`
	NameEn string `xml:"nameEn,attr"`
	Color  string `xml:"color,attr"`

	Invalid *invalidComponent `xml:"InvalidComponent,omitempty"`

	RightBranch *branchRef       `xml:"RightBranch,omitempty"`
	Trunk       *trunk           `xml:"Trunk,omitempty"`
	Loop        *loop            `xml:"Loop,omitempty"`
	Intervals   []branchInterval `xml:"BranchInterval,omitempty"`
	MidBranches []midBranch      `xml:"MidBranch,omitempty"`
	LeftBranch  *branchRef       `xml:"LeftBranch,omitempty"`
}

type metroLineComponents struct {
	XMLName xml.Name    `xml:"MetroLineComponents"`
	Lines   []metroLine `xml:"MetroLine"`
}

// Export renders every connected component of a line's branch topology
// analysis as XML. A single component is written as a bare <MetroLine>
// root; two or more are wrapped in <MetroLineComponents>, per spec
// §6.4. A component with Valid=false (spec §7's TopologyUnsupported or
// DegenerateInput) is still emitted, as <InvalidComponent reason="...">,
// so one bad component never drops its siblings from the output.
func Export(line model.Line, results []model.BranchTopologyResult) ([]byte, error) {
	components := make([]metroLine, len(results))
	for i, r := range results {
		components[i] = toMetroLine(line, r)
	}

	var body any
	if len(components) == 1 {
		body = components[0]
	} else {
		body = metroLineComponents{Lines: components}
	}

	out, err := xml.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("xmlexport: marshal %s: %w", line.ID, err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(out)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func toMetroLine(line model.Line, r model.BranchTopologyResult) metroLine {
	ml := metroLine{
		ID:     line.ID,
		NameZh: line.Names.Primary,
		NameEn: line.Names.Secondary,
		Color:  line.Color,
	}

	if !r.Valid {
		ml.Invalid = &invalidComponent{Reason: r.Reason}
		return ml
	}

	if r.IsLoop {
		ml.Loop = &loop{Stations: stationRefs(r.TrunkStationIDs)}
		return ml
	}

	ml.Trunk = &trunk{Stations: stationRefs(r.TrunkStationIDs)}

	for _, iv := range r.Intervals {
		switch {
		case iv.FromIndex == model.LeftOpenIndex:
			ml.RightBranch = &branchRef{AttachTo: iv.ToStationID}
		case iv.ToIndex == model.RightOpenIndex:
			ml.LeftBranch = &branchRef{AttachTo: iv.FromStationID}
		default:
			ml.Intervals = append(ml.Intervals, branchInterval{
				FromStation: iv.FromStationID,
				ToStation:   iv.ToStationID,
			})
		}
	}

	for _, mb := range r.MidBranches {
		ml.MidBranches = append(ml.MidBranches, midBranch{
			AttachTo: mb.AttachToStationID,
			Stations: stationRefs(mb.StationIDs),
		})
	}

	return ml
}
