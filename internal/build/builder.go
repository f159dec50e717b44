package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/vango-dev/hashview/internal/config"
)

// Result contains the build output.
type Result struct {
	// Duration is how long the build took.
	Duration time.Duration

	// Page is the parsed page.
	Page *Page

	// HTML is the path of the written page, empty with NoOutput.
	HTML string

	// Outputs lists every file written, the HTML page last.
	Outputs []string

	// Inputs lists every file the build read.
	Inputs []string

	// Manifest maps each output to its SHA256.
	Manifest map[string]string
}

// Options configures the builder. Zero fields fall back to the config.
type Options struct {
	// Lang is the lang file path.
	Lang string

	// Collapse concatenates styles and scripts into single files.
	Collapse bool

	// DepFile is the make dependency file to write.
	DepFile string

	// DepTarget is the target named in DepFile. Defaults to the HTML path.
	DepTarget string

	// NoOutput parses the page (and writes DepFile) without writing outputs.
	NoOutput bool

	Logger  *slog.Logger
	Metrics *Metrics

	// OnProgress is called with progress updates.
	OnProgress func(step string)
}

// Builder builds the page named by a config.
type Builder struct {
	page    string
	options Options
	logger  *slog.Logger
}

// New creates a new builder.
func New(cfg *config.Config, options Options) *Builder {
	if options.Lang == "" {
		options.Lang = cfg.LangPath()
	}
	if !options.Collapse && cfg.Page.Collapse {
		options.Collapse = true
	}
	if options.DepFile == "" {
		options.DepFile = cfg.DepFilePath()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		page:    cfg.PagePath(),
		options: options,
		logger:  logger.With("component", "build"),
	}
}

// Build parses the page and writes its outputs.
func (b *Builder) Build(ctx context.Context) (result *Result, err error) {
	start := time.Now()
	result = &Result{Manifest: make(map[string]string)}
	defer func() {
		sources := 0
		if result != nil && result.Page != nil {
			sources = len(result.Page.Sources())
		}
		b.options.Metrics.observe(err, sources, start)
		if err != nil {
			b.logger.Error("build failed", "page", b.page, "error", err)
		}
	}()

	var lang Lang
	if b.options.Lang != "" {
		b.progress("Reading lang file...")
		var files []string
		lang, files, err = LoadLang(b.options.Lang)
		if err != nil {
			return nil, err
		}
		result.Inputs = append(result.Inputs, files...)
	}

	b.progress("Parsing page...")
	page, err := ParsePage(ctx, b.page, lang)
	if err != nil {
		return nil, err
	}
	page.Inputs = append(result.Inputs, page.Inputs...)
	result.Page = page
	result.Inputs = append(slices.Clone(page.Inputs), page.Sources()...)

	if b.options.DepFile != "" {
		b.progress("Writing dependency file...")
		data := page.DepFile(b.options.DepTarget, b.options.DepFile, b.options.Collapse)
		if err = writeFile(b.options.DepFile, data); err != nil {
			return nil, err
		}
	}

	if b.options.NoOutput {
		result.Duration = time.Since(start)
		return result, nil
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	if b.options.Collapse {
		b.progress("Collapsing styles and scripts...")
		written, cerr := page.Collapse()
		if cerr != nil {
			return nil, cerr
		}
		result.Outputs = append(result.Outputs, written...)
	}

	b.progress("Writing page...")
	data, err := page.Render()
	if err != nil {
		return nil, err
	}
	result.HTML = page.HTMLPath()
	if err = writeFile(result.HTML, data); err != nil {
		return nil, err
	}
	result.Outputs = append(result.Outputs, result.HTML)

	for _, out := range result.Outputs {
		if sum, herr := hashFile(out); herr == nil {
			result.Manifest[out] = sum
		}
	}

	result.Duration = time.Since(start)
	b.logger.Info("page built",
		"html", result.HTML,
		"templates", len(page.Templates),
		"styles", len(page.Styles),
		"scripts", len(page.Scripts),
		"duration", result.Duration)
	return result, nil
}

// Page returns the page file path.
func (b *Builder) Page() string {
	return b.page
}

func (b *Builder) progress(step string) {
	if b.options.OnProgress != nil {
		b.options.OnProgress(step)
	}
	b.logger.Debug(step)
}

// hashFile returns the SHA256 hash of a file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
