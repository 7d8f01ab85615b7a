package xmlexport_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/metrostudio/core/internal/model"
	"github.com/metrostudio/core/internal/xmlexport"
)

func sampleLine() model.Line {
	return model.Line{
		ID:      "L1",
		Names:   model.Names{Primary: "一号线", Secondary: "Line 1"},
		Color:   "#ff0000",
		EdgeIDs: []string{"e1", "e2", "e3"},
	}
}

func TestExportSingleComponentIsBareMetroLine(t *testing.T) {
	line := sampleLine()
	result := model.BranchTopologyResult{
		Valid:           true,
		TrunkStationIDs: []string{"A", "B", "C"},
		TrunkEdgeIDs:    []string{"e1", "e2"},
		Intervals: []model.Interval{
			{FromIndex: 1, ToIndex: 2, FromStationID: "B", ToStationID: "C", StationIDs: []string{"F"}},
		},
	}

	out, err := xmlexport.Export(line, []model.BranchTopologyResult{result})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var doc struct {
		XMLName xml.Name `xml:"MetroLine"`
		ID      string   `xml:"id,attr"`
		NameZh  string   `xml:"nameZh,attr"`
		NameEn  string   `xml:"nameEn,attr"`
		Color   string   `xml:"color,attr"`
		Trunk   struct {
			Stations []struct {
				ID string `xml:"id,attr"`
			} `xml:"Station"`
		} `xml:"Trunk"`
		Intervals []struct {
			FromStation string `xml:"fromStation,attr"`
			ToStation   string `xml:"toStation,attr"`
		} `xml:"BranchInterval"`
	}
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("re-parsing exported XML: %v\n%s", err, out)
	}
	if doc.ID != "L1" || doc.NameZh != "一号线" || doc.NameEn != "Line 1" || doc.Color != "#ff0000" {
		t.Fatalf("unexpected attributes: %+v", doc)
	}
	if len(doc.Trunk.Stations) != 3 {
		t.Fatalf("expected 3 trunk stations, got %d", len(doc.Trunk.Stations))
	}
	if len(doc.Intervals) != 1 || doc.Intervals[0].FromStation != "B" || doc.Intervals[0].ToStation != "C" {
		t.Fatalf("expected one closed interval B->C, got %+v", doc.Intervals)
	}
}

func TestExportMultipleComponentsAreWrapped(t *testing.T) {
	line := sampleLine()
	results := []model.BranchTopologyResult{
		{Valid: true, TrunkStationIDs: []string{"A", "B"}},
		{Valid: true, TrunkStationIDs: []string{"X", "Y"}},
	}
	out, err := xmlexport.Export(line, results)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), "<MetroLineComponents>") {
		t.Fatalf("expected wrapper element for multiple components, got:\n%s", out)
	}
	if strings.Count(string(out), "<MetroLine ") != 2 {
		t.Fatalf("expected two MetroLine children, got:\n%s", out)
	}
}

func TestExportLeftOpenIntervalBecomesRightBranch(t *testing.T) {
	line := sampleLine()
	result := model.BranchTopologyResult{
		Valid:           true,
		TrunkStationIDs: []string{"B", "C"},
		Intervals: []model.Interval{
			{FromIndex: model.LeftOpenIndex, ToIndex: 0, ToStationID: "B", StationIDs: []string{"D"}},
		},
	}
	out, err := xmlexport.Export(line, []model.BranchTopologyResult{result})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), `<RightBranch attachTo="B">`) {
		t.Fatalf("expected left open-end interval to render as RightBranch, got:\n%s", out)
	}
}

func TestExportRightOpenIntervalBecomesLeftBranch(t *testing.T) {
	line := sampleLine()
	result := model.BranchTopologyResult{
		Valid:           true,
		TrunkStationIDs: []string{"A", "B"},
		Intervals: []model.Interval{
			{FromIndex: 0, ToIndex: model.RightOpenIndex, FromStationID: "B", StationIDs: []string{"D"}},
		},
	}
	out, err := xmlexport.Export(line, []model.BranchTopologyResult{result})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), `<LeftBranch attachTo="B">`) {
		t.Fatalf("expected right open-end interval to render as LeftBranch, got:\n%s", out)
	}
}

func TestExportLoopComponent(t *testing.T) {
	line := sampleLine()
	result := model.BranchTopologyResult{
		Valid:           true,
		IsLoop:          true,
		TrunkStationIDs: []string{"A", "B", "C", "D"},
	}
	out, err := xmlexport.Export(line, []model.BranchTopologyResult{result})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), "<Loop>") {
		t.Fatalf("expected Loop element, got:\n%s", out)
	}
	if strings.Contains(string(out), "<Trunk>") {
		t.Fatalf("loop component should not also emit Trunk, got:\n%s", out)
	}
}

func TestExportInvalidComponentIsFlaggedNotOmitted(t *testing.T) {
	line := sampleLine()
	results := []model.BranchTopologyResult{
		model.Invalid("ambiguous spur geometry at station X"),
		{Valid: true, TrunkStationIDs: []string{"A", "B"}},
	}
	out, err := xmlexport.Export(line, results)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(out), `<InvalidComponent reason="ambiguous spur geometry at station X">`) {
		t.Fatalf("expected invalid component to be surfaced with its reason, got:\n%s", out)
	}
	if !strings.Contains(string(out), "<Trunk>") {
		t.Fatalf("expected the valid sibling component to still be emitted, got:\n%s", out)
	}
}

func TestExportEscapesSpecialCharacters(t *testing.T) {
	line := sampleLine()
	line.Names.Primary = `<A & "B"> 'C'`
	out, err := xmlexport.Export(line, []model.BranchTopologyResult{{Valid: true, TrunkStationIDs: []string{"A", "B"}}})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(string(out), `<A & "B">`) {
		t.Fatalf("expected special characters to be escaped, got:\n%s", out)
	}
	var doc struct {
		NameZh string `xml:"nameZh,attr"`
	}
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("re-parsing exported XML: %v\n%s", err, out)
	}
	if doc.NameZh != line.Names.Primary {
		t.Fatalf("expected escaped name to round-trip back to original, got %q", doc.NameZh)
	}
}
