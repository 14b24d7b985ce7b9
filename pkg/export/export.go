package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/fcblocks/pkg/blocks"
	"github.com/matzehuels/fcblocks/pkg/level"
)

// Table is the exported form of a converted document.
type Table struct {
	LevelID     string      `json:"level_id,omitempty" yaml:"level_id,omitempty"`
	LevelNumber string      `json:"level_number,omitempty" yaml:"level_number,omitempty"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Start       *level.Area `json:"start,omitempty" yaml:"start,omitempty"`
	End         *level.Area `json:"end,omitempty" yaml:"end,omitempty"`
	Blocks      []Record    `json:"blocks" yaml:"blocks"`
}

// Record is one engine block with numeric fields decoded.
type Record struct {
	Type     string  `json:"type" yaml:"type"`
	TypeID   int     `json:"type_id" yaml:"type_id"`
	Origin   string  `json:"origin" yaml:"origin"`
	Index    int     `json:"index" yaml:"index"`
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	Width    float64 `json:"width" yaml:"width"`
	Height   float64 `json:"height" yaml:"height"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
	Joints   [2]int  `json:"joints" yaml:"joints,flow"`
}

// NewTable builds a Table from converted blocks. doc may be nil.
func NewTable(doc *level.Document, bs []blocks.Block) (*Table, error) {
	t := &Table{Blocks: make([]Record, 0, len(bs))}
	if doc != nil {
		t.LevelID = doc.LevelID
		t.LevelNumber = doc.LevelNumber
		t.Name = doc.Name
		t.Start = doc.Start
		t.End = doc.End
	}
	for _, b := range bs {
		r, err := newRecord(b)
		if err != nil {
			return nil, fmt.Errorf("%s block %d: %w", b.Origin, b.Index, err)
		}
		t.Blocks = append(t.Blocks, r)
	}
	return t, nil
}

func newRecord(b blocks.Block) (Record, error) {
	r := Record{
		Type:   b.Type.String(),
		TypeID: b.Type.ID(),
		Origin: string(b.Origin),
		Index:  b.Index,
		ID:     b.ID,
	}
	nums := []struct {
		name string
		text string
		dst  *float64
	}{
		{"position.x", b.X, &r.X},
		{"position.y", b.Y, &r.Y},
		{"width", b.Width, &r.Width},
		{"height", b.Height, &r.Height},
		{"rotation", b.Rotation, &r.Rotation},
	}
	for _, n := range nums {
		v, err := blocks.ParseNumber(n.name, n.text)
		if err != nil {
			return Record{}, err
		}
		*n.dst = v
	}
	for i, j := range b.Joints {
		v, err := strconv.Atoi(j)
		if err != nil {
			return Record{}, fmt.Errorf("joint %d: %w", i, err)
		}
		r.Joints[i] = v
	}
	return r, nil
}

// WriteJSON encodes t as indented JSON.
func WriteJSON(t *Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteYAML encodes t as YAML.
func WriteYAML(t *Table, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
