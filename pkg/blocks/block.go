package blocks

import (
	"math"
	"regexp"
	"strconv"

	"github.com/matzehuels/fcblocks/pkg/errors"
)

// NoJoint fills a joint slot that has no target.
const NoJoint = "-1"

// MaxJoints is the number of joint slots in an engine block.
const MaxJoints = 2

// RawBlock is one block as read from a document. Numeric fields hold the
// source text; they are validated by [Normalize] and never reformatted.
type RawBlock struct {
	Tag       string   `json:"tag" yaml:"tag"`
	ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
	Rotation  string   `json:"rotation" yaml:"rotation"`
	X         string   `json:"x" yaml:"x"`
	Y         string   `json:"y" yaml:"y"`
	Width     string   `json:"width" yaml:"width"`
	Height    string   `json:"height" yaml:"height"`
	GoalBlock string   `json:"goal_block" yaml:"goal_block"`
	Joints    []string `json:"joints,omitempty" yaml:"joints,omitempty"`
}

// Block is the fixed-shape engine record built from a RawBlock.
// Values are copied from the source text verbatim.
type Block struct {
	Type     SimType
	X        string
	Y        string
	Width    string
	Height   string
	Rotation string
	Joints   [MaxJoints]string

	// Origin and Index locate the block in its source group.
	Origin Origin
	Index  int
	// ID is the optional id attribute of the source element.
	ID string
	// Dropped counts joints discarded beyond MaxJoints.
	Dropped int
}

// HasJoint reports whether slot i holds a target.
func (b Block) HasJoint(i int) bool {
	return i >= 0 && i < MaxJoints && b.Joints[i] != NoJoint
}

// ResolveJoints packs joint targets into the two engine slots in source
// order. Empty slots hold NoJoint; entries past the second are counted in
// dropped and otherwise ignored.
func ResolveJoints(joints []string) (j0, j1 string, dropped int) {
	j0, j1 = NoJoint, NoJoint
	if len(joints) > 0 {
		j0 = joints[0]
	}
	if len(joints) > 1 {
		j1 = joints[1]
	}
	if len(joints) > MaxJoints {
		dropped = len(joints) - MaxJoints
	}
	return j0, j1, dropped
}

// decimalRe accepts plain decimal numbers. Hex floats, Inf and NaN parse with
// strconv but would not survive the engine's C compiler.
var decimalRe = regexp.MustCompile(`^[-+]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][-+]?[0-9]+)?$`)

// ParseNumber validates numeric source text and returns its value.
func ParseNumber(field, text string) (float64, error) {
	if !decimalRe.MatchString(text) {
		return 0, errors.New(errors.ErrCodeMalformedField, "%s: %q is not a number", field, text)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeMalformedField, "%s: %q is out of range", field, text)
	}
	return v, nil
}

// ParseGoal decodes the goalBlock flag, which must be "true" or "false".
func ParseGoal(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.New(errors.ErrCodeMalformedField, "goalBlock: %q is not true or false", text)
}

func parseJoint(text string) error {
	if _, err := strconv.ParseInt(text, 10, 32); err != nil {
		return errors.New(errors.ErrCodeMalformedField, "jointedTo: %q is not an integer", text)
	}
	return nil
}

// Normalize validates raw and builds its engine record. Origin and Index are
// left for the caller to fill.
func Normalize(raw RawBlock) (Block, error) {
	// The tag is checked before any field, so an unsupported piece is
	// reported as such even when its geometry is damaged too.
	if !KnownTag(raw.Tag) {
		return Block{}, unknownTag(raw.Tag)
	}
	goal, err := ParseGoal(raw.GoalBlock)
	if err != nil {
		return Block{}, err
	}
	typ, err := Classify(raw.Tag, goal)
	if err != nil {
		return Block{}, err
	}

	fields := []struct{ name, text string }{
		{"rotation", raw.Rotation},
		{"position.x", raw.X},
		{"position.y", raw.Y},
		{"width", raw.Width},
		{"height", raw.Height},
	}
	for _, f := range fields {
		if _, err := ParseNumber(f.name, f.text); err != nil {
			return Block{}, err
		}
	}

	// Only the joints that reach the output are validated.
	j0, j1, dropped := ResolveJoints(raw.Joints)
	for _, j := range [...]string{j0, j1} {
		if j == NoJoint {
			continue
		}
		if err := parseJoint(j); err != nil {
			return Block{}, err
		}
	}

	return Block{
		Type:     typ,
		X:        raw.X,
		Y:        raw.Y,
		Width:    raw.Width,
		Height:   raw.Height,
		Rotation: raw.Rotation,
		Joints:   [MaxJoints]string{j0, j1},
		ID:       raw.ID,
		Dropped:  dropped,
	}, nil
}
