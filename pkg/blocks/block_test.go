package blocks

import (
	"testing"

	"github.com/matzehuels/fcblocks/pkg/errors"
)

func rect(joints ...string) RawBlock {
	return RawBlock{
		Tag:       TagStaticRectangle,
		Rotation:  "0",
		X:         "10",
		Y:         "20",
		Width:     "5",
		Height:    "5",
		GoalBlock: "false",
		Joints:    joints,
	}
}

func TestResolveJoints(t *testing.T) {
	tests := []struct {
		name        string
		joints      []string
		j0, j1      string
		wantDropped int
	}{
		{"none", nil, NoJoint, NoJoint, 0},
		{"empty", []string{}, NoJoint, NoJoint, 0},
		{"one", []string{"3"}, "3", NoJoint, 0},
		{"two", []string{"3", "7"}, "3", "7", 0},
		{"three", []string{"3", "7", "9"}, "3", "7", 1},
		{"five", []string{"1", "2", "3", "4", "5"}, "1", "2", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j0, j1, dropped := ResolveJoints(tt.joints)
			if j0 != tt.j0 || j1 != tt.j1 {
				t.Errorf("ResolveJoints(%v) = %q, %q; want %q, %q", tt.joints, j0, j1, tt.j0, tt.j1)
			}
			if dropped != tt.wantDropped {
				t.Errorf("dropped = %d, want %d", dropped, tt.wantDropped)
			}
		})
	}
}

func TestNormalizeVerbatim(t *testing.T) {
	raw := RawBlock{
		Tag:       TagHollowRod,
		Rotation:  "1.5707963267948966",
		X:         "-12.50",
		Y:         "3e2",
		Width:     "100.0",
		Height:    "4",
		GoalBlock: "false",
		Joints:    []string{"12"},
	}

	b, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if b.Type != Rod {
		t.Errorf("Type = %v, want ROD", b.Type)
	}
	if b.X != "-12.50" || b.Y != "3e2" || b.Width != "100.0" || b.Height != "4" || b.Rotation != "1.5707963267948966" {
		t.Errorf("geometry not carried verbatim: %+v", b)
	}
	if b.Joints != [MaxJoints]string{"12", NoJoint} {
		t.Errorf("Joints = %v", b.Joints)
	}
	if !b.HasJoint(0) || b.HasJoint(1) || b.HasJoint(2) {
		t.Error("HasJoint mismatch")
	}
}

func TestNormalizeGoalWheel(t *testing.T) {
	raw := rect("3")
	raw.Tag = TagNoSpinWheel
	raw.GoalBlock = "true"

	b, err := Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if b.Type != GoalCircle {
		t.Errorf("Type = %v, want GOAL_CIRCLE", b.Type)
	}
	if b.Joints[0] != "3" || b.Joints[1] != NoJoint {
		t.Errorf("Joints = %v, want [3 -1]", b.Joints)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawBlock)
	}{
		{"empty x", func(r *RawBlock) { r.X = "" }},
		{"word y", func(r *RawBlock) { r.Y = "abc" }},
		{"nan width", func(r *RawBlock) { r.Width = "NaN" }},
		{"inf height", func(r *RawBlock) { r.Height = "Inf" }},
		{"hex rotation", func(r *RawBlock) { r.Rotation = "0x1p-2" }},
		{"overflow", func(r *RawBlock) { r.X = "1e999" }},
		{"goal flag", func(r *RawBlock) { r.GoalBlock = "yes" }},
		{"goal case", func(r *RawBlock) { r.GoalBlock = "True" }},
		{"joint text", func(r *RawBlock) { r.Joints = []string{"a"} }},
		{"joint float", func(r *RawBlock) { r.Joints = []string{"1", "2.5"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rect()
			tt.mutate(&raw)
			_, err := Normalize(raw)
			if !errors.Is(err, errors.ErrCodeMalformedField) {
				t.Errorf("Normalize error = %v, want MALFORMED_FIELD", err)
			}
		})
	}
}

func TestNormalizeIgnoresDroppedJoints(t *testing.T) {
	// The third joint never reaches the output, so it is not validated.
	b, err := Normalize(rect("1", "2", "junk"))
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if b.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", b.Dropped)
	}
}

func TestNormalizeUnknownTag(t *testing.T) {
	raw := rect()
	raw.Tag = "Balloon"
	if _, err := Normalize(raw); !errors.Is(err, errors.ErrCodeUnknownBlockType) {
		t.Errorf("Normalize error = %v, want UNKNOWN_BLOCK_TYPE", err)
	}
}

func TestNormalizeReportsTagBeforeFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawBlock)
	}{
		{"bad geometry", func(r *RawBlock) { r.X = "abc"; r.Width = "" }},
		{"bad goal flag", func(r *RawBlock) { r.GoalBlock = "yes" }},
		{"goal flag set", func(r *RawBlock) { r.GoalBlock = "true"; r.Height = "NaN" }},
		{"bad joint", func(r *RawBlock) { r.Joints = []string{"x"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := rect()
			raw.Tag = "Balloon"
			tt.mutate(&raw)
			_, err := Normalize(raw)
			if !errors.Is(err, errors.ErrCodeUnknownBlockType) {
				t.Errorf("Normalize error = %v, want UNKNOWN_BLOCK_TYPE", err)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"-1.25", -1.25, false},
		{"+3", 3, false},
		{".5", 0.5, false},
		{"5.", 5, false},
		{"1E3", 1000, false},
		{" 1", 0, true},
		{"1,5", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseNumber("x", tt.text)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
