// Package jsonio implements the spec §6.3 project exchange format: a
// JSON document the enclosing application reads, hands to the
// optimizer/analyzer, and writes back. Decoding is strict (unknown
// fields rejected) and round-tripping is lossless — fields the core
// never interprets (regionBoundary, timelineEvents, meta) pass through
// as raw JSON rather than being dropped.
package jsonio

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/metrostudio/core/internal/model"
)

// ProjectVersion is the only value this package currently writes and
// accepts for the document's projectVersion field.
const ProjectVersion = "1.0.0"

// Document is the on-the-wire shape of spec §6.3. Fields the core
// algorithms never read (RegionBoundary, TimelineEvents, Meta) are kept
// as raw JSON so a decode-modify-encode cycle never loses information
// the importer set, even though nothing in this module parses them.
type Document struct {
	ProjectVersion string             `json:"projectVersion"`
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Region         string             `json:"region,omitempty"`
	RegionBoundary json.RawMessage    `json:"regionBoundary,omitempty"`
	Stations       []stationDoc       `json:"stations"`
	Edges          []edgeDoc          `json:"edges"`
	Lines          []lineDoc          `json:"lines"`
	LayoutConfig   model.LayoutConfig `json:"layoutConfig"`
	LayoutMeta     layoutMetaDoc      `json:"layoutMeta"`
	TimelineEvents json.RawMessage    `json:"timelineEvents,omitempty"`
	Meta           json.RawMessage    `json:"meta,omitempty"`
}

type pointDoc struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

type displayPosDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type stationDoc struct {
	ID         string         `json:"id"`
	Names      model.Names    `json:"names"`
	Lng        float64        `json:"lng"`
	Lat        float64        `json:"lat"`
	LineIDs    []string       `json:"lineIds"`
	DisplayPos *displayPosDoc `json:"displayPos,omitempty"`
}

type edgeDoc struct {
	ID            string     `json:"id"`
	FromID        string     `json:"fromId"`
	ToID          string     `json:"toId"`
	Waypoints     []pointDoc `json:"waypoints,omitempty"`
	LengthMeters  float64    `json:"lengthMeters"`
	SharedByLines []string   `json:"sharedByLineIds"`
}

type lineDoc struct {
	ID      string      `json:"id"`
	Names   model.Names `json:"names"`
	Color   string      `json:"color"`
	Status  string      `json:"status"`
	Style   string      `json:"style,omitempty"`
	IsLoop  bool        `json:"isLoop,omitempty"`
	EdgeIDs []string    `json:"edgeIds"`
}

type labelDoc struct {
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Anchor string  `json:"anchor"`
}

type layoutMetaDoc struct {
	StationLabels  map[string]labelDoc `json:"stationLabels,omitempty"`
	EdgeDirections map[string]int      `json:"edgeDirections,omitempty"`
}

// Decode strictly parses one Document from r: unknown top-level fields
// are rejected rather than silently ignored, per the exchange format's
// requirement that the importer's data survives unaltered.
func Decode(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonio: decode project: %w", err)
	}
	return &doc, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(b []byte) (*Document, error) {
	return Decode(bytes.NewReader(b))
}

// Encode writes doc to w as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("jsonio: encode project: %w", err)
	}
	return nil
}

// EncodeBytes is Encode into an in-memory buffer.
func EncodeBytes(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
