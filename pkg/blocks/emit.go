package blocks

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/fcblocks/pkg/errors"
)

// Header and Footer wrap the emitted block lines.
const (
	Header = "struct fcsim_block blocks[] = {\n"
	Footer = "};\n"
)

// JointWarning describes a block whose extra joints were dropped.
type JointWarning struct {
	Origin  Origin
	Index   int
	Tag     string
	Joints  int
	Dropped int
}

// Options configures Build and emission.
type Options struct {
	// Prefix is prepended to type identifiers in C output, e.g. "FCSIM_".
	Prefix string

	// Warn, if set, is called for each block that has more than MaxJoints
	// joints. It does not change the output.
	Warn func(JointWarning)
}

// Build normalizes the player blocks followed by the level blocks, each in
// source order. The first failing block aborts the build and no blocks are
// returned.
func Build(player, level []RawBlock, opts Options) ([]Block, error) {
	out := make([]Block, 0, len(player)+len(level))
	groups := []struct {
		origin Origin
		raw    []RawBlock
	}{
		{OriginPlayer, player},
		{OriginLevel, level},
	}
	for _, g := range groups {
		for i, raw := range g.raw {
			b, err := Normalize(raw)
			if err != nil {
				return nil, fmt.Errorf("%s block %d (%s): %w", g.origin, i, raw.Tag, err)
			}
			b.Origin = g.origin
			b.Index = i
			if b.Dropped > 0 && opts.Warn != nil {
				opts.Warn(JointWarning{
					Origin:  g.origin,
					Index:   i,
					Tag:     raw.Tag,
					Joints:  len(raw.Joints),
					Dropped: b.Dropped,
				})
			}
			out = append(out, b)
		}
	}
	return out, nil
}

// FormatLine renders one block as a line of the C array, without the
// trailing newline.
func FormatLine(b Block, prefix string) string {
	return fmt.Sprintf("\t{ %s%s, %s, %s, %s, %s, %s, { %s, %s } },",
		prefix, b.Type, b.X, b.Y, b.Width, b.Height, b.Rotation, b.Joints[0], b.Joints[1])
}

// WriteC writes the complete array literal for bs to w.
func WriteC(w io.Writer, bs []Block, opts Options) error {
	if err := errors.ValidatePrefix(opts.Prefix); err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(Header)
	for _, b := range bs {
		sb.WriteString(FormatLine(b, opts.Prefix))
		sb.WriteByte('\n')
	}
	sb.WriteString(Footer)
	_, err := io.WriteString(w, sb.String())
	return err
}

// Emit builds both groups and returns the array literal. On error the
// returned string is empty.
func Emit(player, level []RawBlock, opts Options) (string, error) {
	bs, err := Build(player, level, opts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := WriteC(&sb, bs, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
