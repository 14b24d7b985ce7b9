package level

import (
	"bytes"
	"encoding/xml"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/fcblocks/pkg/blocks"
	"github.com/matzehuels/fcblocks/pkg/errors"
)

// Document is a decoded level or design.
type Document struct {
	LevelID     string `json:"level_id,omitempty" yaml:"level_id,omitempty"`
	LevelNumber string `json:"level_number,omitempty" yaml:"level_number,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`

	// LevelBlocks are placed by the level author, PlayerBlocks by the
	// player. Both keep document order.
	LevelBlocks  []blocks.RawBlock `json:"level_blocks" yaml:"level_blocks"`
	PlayerBlocks []blocks.RawBlock `json:"player_blocks" yaml:"player_blocks"`

	// Start is the build area and End the goal area.
	Start *Area `json:"start,omitempty" yaml:"start,omitempty"`
	End   *Area `json:"end,omitempty" yaml:"end,omitempty"`

	TickCount  string `json:"tick_count,omitempty" yaml:"tick_count,omitempty"`
	PieceCount string `json:"piece_count,omitempty" yaml:"piece_count,omitempty"`
}

// Area is an axis-aligned region of the level.
type Area struct {
	X      string `json:"x" yaml:"x"`
	Y      string `json:"y" yaml:"y"`
	Width  string `json:"width" yaml:"width"`
	Height string `json:"height" yaml:"height"`
}

// BlockCount returns the number of blocks in both groups.
func (d *Document) BlockCount() int {
	return len(d.LevelBlocks) + len(d.PlayerBlocks)
}

// IsDesign reports whether the document carries player blocks.
func (d *Document) IsDesign() bool {
	return len(d.PlayerBlocks) > 0
}

// Parse decodes a retrieveLevel or level document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "document is empty")
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "retrieveLevel":
			return decodeRetrieve(dec, start)
		case "level":
			return decodeLevelRoot(dec, start)
		default:
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unexpected root element <%s>", start.Name.Local)
		}
	}
}

// ParseBytes decodes a document held in memory.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

type retrieveElem struct {
	LevelID     string     `xml:"levelId"`
	LevelNumber string     `xml:"levelNumber"`
	Name        string     `xml:"name"`
	Level       *levelElem `xml:"level"`
}

type levelElem struct {
	LevelBlocks  blockList `xml:"levelBlocks"`
	PlayerBlocks blockList `xml:"playerBlocks"`
	Start        *areaElem `xml:"start"`
	End          *areaElem `xml:"end"`
	TickCount    string    `xml:"tickCount"`
	PieceCount   string    `xml:"pieceCount"`
}

func decodeRetrieve(dec *xml.Decoder, start xml.StartElement) (*Document, error) {
	var root retrieveElem
	if err := dec.DecodeElement(&root, &start); err != nil {
		return nil, wrapDecodeErr(err)
	}
	if root.Level == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "retrieveLevel has no <level> element")
	}
	doc, err := root.Level.document()
	if err != nil {
		return nil, err
	}
	doc.LevelID = strings.TrimSpace(root.LevelID)
	doc.LevelNumber = strings.TrimSpace(root.LevelNumber)
	doc.Name = strings.TrimSpace(root.Name)
	return doc, nil
}

func decodeLevelRoot(dec *xml.Decoder, start xml.StartElement) (*Document, error) {
	var lvl levelElem
	if err := dec.DecodeElement(&lvl, &start); err != nil {
		return nil, wrapDecodeErr(err)
	}
	return lvl.document()
}

func (l *levelElem) document() (*Document, error) {
	doc := &Document{
		TickCount:  strings.TrimSpace(l.TickCount),
		PieceCount: strings.TrimSpace(l.PieceCount),
	}
	var err error
	if doc.LevelBlocks, err = l.LevelBlocks.raw("levelBlocks"); err != nil {
		return nil, err
	}
	if doc.PlayerBlocks, err = l.PlayerBlocks.raw("playerBlocks"); err != nil {
		return nil, err
	}
	if doc.Start, err = l.Start.area("start"); err != nil {
		return nil, err
	}
	if doc.End, err = l.End.area("end"); err != nil {
		return nil, err
	}
	return doc, nil
}

// wrapDecodeErr keeps coded errors raised inside UnmarshalXML intact.
func wrapDecodeErr(err error) error {
	var coded *errors.Error
	if stderrors.As(err, &coded) {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
}

// blockElem mirrors one block element. Pointers distinguish missing fields
// from empty ones.
type blockElem struct {
	tag       string
	ID        string    `xml:"id,attr"`
	Rotation  *string   `xml:"rotation"`
	Position  *posElem  `xml:"position"`
	Width     *string   `xml:"width"`
	Height    *string   `xml:"height"`
	GoalBlock *string   `xml:"goalBlock"`
	Joints    *jointSet `xml:"joints"`
}

type posElem struct {
	X *string `xml:"x"`
	Y *string `xml:"y"`
}

type jointSet struct {
	JointedTo []string `xml:"jointedTo"`
}

type areaElem struct {
	Position *posElem `xml:"position"`
	Width    *string  `xml:"width"`
	Height   *string  `xml:"height"`
}

// blockList decodes a group whose children are named by block tag.
type blockList []blockElem

func (l *blockList) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := blockElem{tag: t.Name.Local}
			if err := d.DecodeElement(&el, &t); err != nil {
				return err
			}
			*l = append(*l, el)
		case xml.EndElement:
			return nil
		}
	}
}

func (l blockList) raw(group string) ([]blocks.RawBlock, error) {
	out := make([]blocks.RawBlock, 0, len(l))
	for i, el := range l {
		rb, err := el.raw()
		if err != nil {
			return nil, fmt.Errorf("%s[%d] (%s): %w", group, i, el.tag, err)
		}
		out = append(out, rb)
	}
	return out, nil
}

func (el blockElem) raw() (blocks.RawBlock, error) {
	var f fields
	rb := blocks.RawBlock{
		Tag:       el.tag,
		ID:        strings.TrimSpace(el.ID),
		Rotation:  f.need("rotation", el.Rotation),
		Width:     f.need("width", el.Width),
		Height:    f.need("height", el.Height),
		GoalBlock: f.need("goalBlock", el.GoalBlock),
	}
	if el.Position == nil {
		f.missing("position")
	} else {
		rb.X = f.need("position.x", el.Position.X)
		rb.Y = f.need("position.y", el.Position.Y)
	}
	if el.Joints != nil {
		for _, j := range el.Joints.JointedTo {
			rb.Joints = append(rb.Joints, strings.TrimSpace(j))
		}
	}
	return rb, f.err
}

func (a *areaElem) area(name string) (*Area, error) {
	if a == nil {
		return nil, nil
	}
	var f fields
	out := &Area{
		Width:  f.need(name+".width", a.Width),
		Height: f.need(name+".height", a.Height),
	}
	if a.Position == nil {
		f.missing(name + ".position")
	} else {
		out.X = f.need(name+".position.x", a.Position.X)
		out.Y = f.need(name+".position.y", a.Position.Y)
	}
	if f.err != nil {
		return nil, f.err
	}
	return out, nil
}

// fields collects the first missing required field.
type fields struct{ err error }

func (f *fields) need(name string, v *string) string {
	if v == nil {
		f.missing(name)
		return ""
	}
	return strings.TrimSpace(*v)
}

func (f *fields) missing(name string) {
	if f.err == nil {
		f.err = errors.New(errors.ErrCodeMalformedField, "missing <%s>", name)
	}
}
