package cli

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/erdiagram/pkg/cache"
	"github.com/matzehuels/erdiagram/pkg/errors"
	pkgio "github.com/matzehuels/erdiagram/pkg/io"
	"github.com/matzehuels/erdiagram/pkg/model"
	"github.com/matzehuels/erdiagram/pkg/render/nodelink"
	"github.com/matzehuels/erdiagram/pkg/render/raster"
)

// Output formats.
const (
	formatPNG  = "png"
	formatSVG  = "svg"
	formatDOT  = "dot"
	formatJSON = "json"
)

var validFormats = []string{formatPNG, formatSVG, formatDOT, formatJSON}

// isText reports whether format can go to the clipboard.
func isText(format string) bool { return format != formatPNG }

func contentType(format string) string {
	switch format {
	case formatPNG:
		return "image/png"
	case formatSVG:
		return "image/svg+xml"
	case formatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}

func validateFormat(format string) error {
	if !slices.Contains(validFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want one of %v)", format, validFormats)
	}
	return nil
}

// maxScale bounds the PNG scale factor accepted by export and serve.
const maxScale = 8

func validateScale(scale float64) error {
	if scale <= 0 || scale > maxScale {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale %g (want 0 < scale <= %d)", scale, maxScale)
	}
	return nil
}

// renderOptions are the settings that change a rendered artifact.
type renderOptions struct {
	scale    float64
	padding  float64
	detailed bool
}

// artifacts renders diagrams and keeps the results in a cache keyed by
// the diagram document and the options.
type artifacts struct {
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
}

func newArtifacts(c cache.Cache, ttl time.Duration, logger *log.Logger) *artifacts {
	return &artifacts{cache: c, keyer: cache.NewDefaultKeyer(), ttl: ttl, logger: logger}
}

// render returns d in format and whether it came from the cache.
func (a *artifacts) render(ctx context.Context, d model.Diagram, format string, opts renderOptions) ([]byte, bool, error) {
	if err := validateFormat(format); err != nil {
		return nil, false, err
	}
	doc, err := pkgio.Marshal(d)
	if err != nil {
		return nil, false, err
	}
	if format == formatJSON {
		return doc, false, nil
	}

	key := a.keyer.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{
		Format:  format,
		Scale:   opts.scale,
		Padding: opts.padding,
	})
	if data, ok, err := a.cache.Get(ctx, key); err != nil {
		a.logger.Warn("cache read failed", "err", err)
	} else if ok {
		a.logger.Debug("artifact cache hit", "format", format)
		return data, true, nil
	}

	prog := newProgress(a.logger)
	data, err := renderFormat(d, format, opts)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	prog.done("rendered artifact", "format", format, "bytes", len(data))

	if err := a.cache.Set(ctx, key, data, a.ttl); err != nil {
		a.logger.Warn("cache write failed", "err", err)
	}
	return data, false, nil
}

func renderFormat(d model.Diagram, format string, opts renderOptions) ([]byte, error) {
	switch format {
	case formatPNG:
		return raster.RenderPNG(d, raster.Options{Scale: opts.scale, Padding: opts.padding})
	case formatSVG:
		return nodelink.RenderSVG(nodelink.ToDOT(d, nodelink.Options{Detailed: opts.detailed}))
	default:
		return []byte(nodelink.ToDOT(d, nodelink.Options{Detailed: opts.detailed, Notes: true})), nil
	}
}
