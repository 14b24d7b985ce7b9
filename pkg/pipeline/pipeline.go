// Package pipeline provides the conversion pipeline for fcblocks.
//
// The pipeline has four stages:
//
//  1. Load: fetch the document from the level service, or take it as given
//  2. Parse: decode the XML into a [level.Document]
//  3. Build: classify and normalize player blocks, then level blocks
//  4. Render: produce the requested artifact (C array, JSON, YAML, DOT, SVG)
//
// Every stage fails fast. An error at any stage leaves [Result.Output]
// unset, so callers never see a partial array.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    ID:     1234,
//	    Mode:   source.ModeDesign,
//	    Format: pipeline.FormatC,
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Output)
package pipeline

import (
	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/source"
)

// Output formats.
const (
	FormatC    = "c"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = map[string]bool{
	FormatC:    true,
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Options configures a pipeline run.
type Options struct {
	// ID and Mode select a remote document. They are ignored when Document
	// is set.
	ID   int
	Mode source.Mode

	// Document is raw XML supplied by the caller (file or stdin).
	Document []byte

	Format   string // output format, FormatC if empty
	Prefix   string // type identifier prefix for FormatC
	Refresh  bool   // bypass the document cache
	Detailed bool   // detailed labels for FormatDOT and FormatSVG

	// QuietJoints stops extra-joint warnings from being logged. They are
	// still collected in Result.Warnings.
	QuietJoints bool
}

// Local reports whether the document is supplied by the caller.
func (o *Options) Local() bool { return o.Document != nil }

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: c, json, yaml, dot, svg)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = FormatC
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidatePrefix(o.Prefix); err != nil {
		return err
	}
	if o.Local() {
		return nil
	}
	if o.Mode == "" {
		o.Mode = source.ModeDesign
	}
	if _, err := source.ParseMode(string(o.Mode)); err != nil {
		return err
	}
	return errors.ValidateID(o.ID)
}
