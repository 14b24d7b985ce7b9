package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fcblocks/pkg/blocks"
	"github.com/matzehuels/fcblocks/pkg/errors"
	"github.com/matzehuels/fcblocks/pkg/export"
	"github.com/matzehuels/fcblocks/pkg/level"
	"github.com/matzehuels/fcblocks/pkg/observability"
	"github.com/matzehuels/fcblocks/pkg/render/jointgraph"
	"github.com/matzehuels/fcblocks/pkg/source"
)

// Fetcher retrieves raw documents. [source.Client] implements it.
type Fetcher interface {
	Fetch(ctx context.Context, id int, mode source.Mode, refresh bool) ([]byte, bool, error)
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Document *level.Document
	Blocks   []blocks.Block
	Output   []byte

	// Warnings lists blocks whose extra joints were dropped.
	Warnings []blocks.JointWarning
	// Cached is true when the document came from the cache.
	Cached bool
	Stats  Stats
}

// Stats records per-stage timings.
type Stats struct {
	LoadTime    time.Duration
	ConvertTime time.Duration
	RenderTime  time.Duration
	BlockCount  int
}

// Runner executes the pipeline. It holds no per-run state and may be
// shared between goroutines if its Fetcher allows it.
type Runner struct {
	Source Fetcher
	Logger *log.Logger
}

// NewRunner creates a runner. src may be nil when only local documents
// are converted.
func NewRunner(src Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Logger: logger}
}

// Execute runs load, parse, build and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	data, cached, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	res.Cached = cached
	res.Stats.LoadTime = time.Since(loadStart)
	r.Logger.Debug("loaded document", "bytes", len(data), "cached", cached, "duration", res.Stats.LoadTime)

	// Stages 2 and 3: Parse and Build
	convertStart := time.Now()
	doc, bs, warnings, err := r.Convert(ctx, data, opts)
	observability.Pipeline().OnConvertComplete(ctx, len(bs), time.Since(convertStart), err)
	if err != nil {
		return nil, err
	}
	res.Document = doc
	res.Blocks = bs
	res.Warnings = warnings
	res.Stats.ConvertTime = time.Since(convertStart)
	res.Stats.BlockCount = len(bs)

	r.Logger.Info("converted blocks",
		"design", doc.IsDesign(),
		"player", len(doc.PlayerBlocks),
		"level", len(doc.LevelBlocks),
		"duration", res.Stats.ConvertTime)

	// Stage 4: Render
	renderStart := time.Now()
	out, err := Render(doc, bs, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Output = out
	res.Stats.RenderTime = time.Since(renderStart)

	return res, nil
}

// Load returns the raw document: opts.Document when set, otherwise a fetch
// through the runner's Source.
func (r *Runner) Load(ctx context.Context, opts Options) ([]byte, bool, error) {
	if opts.Local() {
		return opts.Document, false, nil
	}
	if r.Source == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "no document source configured")
	}
	r.Logger.Info("fetching", "mode", opts.Mode, "id", opts.ID)
	return r.Source.Fetch(ctx, opts.ID, opts.Mode, opts.Refresh)
}

// Convert parses data and builds the engine block list. Blocks with more
// than two joints are logged and reported through the pipeline hooks.
func (r *Runner) Convert(ctx context.Context, data []byte, opts Options) (*level.Document, []blocks.Block, []blocks.JointWarning, error) {
	doc, err := level.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse: %w", err)
	}

	var warnings []blocks.JointWarning
	bopts := blocks.Options{
		Prefix: opts.Prefix,
		Warn: func(w blocks.JointWarning) {
			warnings = append(warnings, w)
			observability.Pipeline().OnJointsDropped(ctx, string(w.Origin), w.Index, w.Dropped)
			if opts.QuietJoints {
				return
			}
			r.Logger.Warn("dropping extra joints",
				"origin", w.Origin,
				"index", w.Index,
				"tag", w.Tag,
				"joints", w.Joints,
				"dropped", w.Dropped)
		},
	}
	bs, err := blocks.Build(doc.PlayerBlocks, doc.LevelBlocks, bopts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build: %w", err)
	}
	return doc, bs, warnings, nil
}

// Render produces the artifact for opts.Format. The returned bytes are
// complete or nil.
func Render(doc *level.Document, bs []blocks.Block, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case FormatC, "":
		if err := blocks.WriteC(&buf, bs, blocks.Options{Prefix: opts.Prefix}); err != nil {
			return nil, err
		}
	case FormatJSON, FormatYAML:
		tbl, err := export.NewTable(doc, bs)
		if err != nil {
			return nil, err
		}
		write := export.WriteJSON
		if opts.Format == FormatYAML {
			write = export.WriteYAML
		}
		if err := write(tbl, &buf); err != nil {
			return nil, err
		}
	case FormatDOT:
		buf.WriteString(jointgraph.ToDOT(bs, jointgraph.Options{Detailed: opts.Detailed}))
	case FormatSVG:
		return jointgraph.RenderSVG(jointgraph.ToDOT(bs, jointgraph.Options{Detailed: opts.Detailed}))
	default:
		return nil, ValidateFormat(opts.Format)
	}
	return buf.Bytes(), nil
}
