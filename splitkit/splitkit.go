package splitkit

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/sokinpui/splitkit/cli"
	"github.com/sokinpui/splitkit/internal/fs"
	"github.com/sokinpui/splitkit/internal/model"
	"github.com/sokinpui/splitkit/internal/parser"
	"github.com/sokinpui/splitkit/internal/source"
	"github.com/sokinpui/splitkit/internal/tiles"
	"github.com/sokinpui/splitkit/internal/ui"
)

// ProgressUpdate is a callback function to report progress.
type ProgressUpdate func(current, total int)

// App runs the tile splitter and the listing extractor.
type App struct {
	progressCallback ProgressUpdate
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

func (e *DetailedError) Unwrap() error {
	return e.Err
}

// New creates a new App instance.
func New() *App {
	return &App{}
}

// SetProgressCallback sets a function to be called for progress updates.
func (a *App) SetProgressCallback(cb ProgressUpdate) {
	a.progressCallback = cb
}

// SplitImage cuts cfg.Input into tiles written to cfg.OutputDir.
func (a *App) SplitImage(cfg *cli.TileConfig) (summary model.Summary, err error) {
	defer recoverPanic(&err)

	opts := tiles.Options{Size: cfg.Size}
	if a.progressCallback != nil {
		opts.Progress = a.progressCallback
	}

	written, err := tiles.Split(cfg.Input, cfg.OutputDir, opts)
	for _, t := range written {
		summary.Created = append(summary.Created, t.Path)
	}
	if err != nil {
		a.relativizeSummaryPaths(&summary)
		return summary, err
	}

	ui.Info("Wrote %d tile(s) of %dpx", len(written), tileSize(cfg.Size))
	summary.Message = fmt.Sprintf("Tiles have been saved to %s", cfg.OutputDir)
	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

func tileSize(size int) int {
	if size == 0 {
		return tiles.DefaultSize
	}
	return size
}

// Extract reads the listing named by cfg and writes one file per marker.
func (a *App) Extract(cfg *cli.ExtractConfig) (summary model.Summary, err error) {
	defer recoverPanic(&err)

	sourceProvider := source.New(cfg.Input, cfg.Clipboard)
	if err := sourceProvider.Check(); err != nil {
		return model.Summary{}, err
	}

	content, err := sourceProvider.GetContent()
	if err != nil {
		return model.Summary{}, err
	}
	if content == "" {
		return model.Summary{Message: "Source is empty. Nothing to process."}, nil
	}

	var blocks []model.FileBlock
	if cfg.Markdown {
		blocks, err = parser.ParseMarkdownListing([]byte(content), cfg.Listing)
		if err != nil {
			return model.Summary{}, fmt.Errorf("failed to parse markdown: %w", err)
		}
	} else {
		blocks = parser.ParseListing(content, cfg.Listing)
	}
	if len(blocks) == 0 {
		return model.Summary{Message: "No file markers found. Nothing to do."}, nil
	}

	summary, err = a.writeBlocks(blocks, fs.NewPathResolver(cfg.OutputDir), cfg.Parents)
	if err != nil {
		return summary, err
	}
	summary.Message = "File extraction and update complete."
	return summary, nil
}

// writeBlocks writes every block in order, stopping at the first failure.
// A later block with the same path overwrites an earlier one.
func (a *App) writeBlocks(blocks []model.FileBlock, resolver *fs.PathResolver, parents bool) (model.Summary, error) {
	var summary model.Summary
	total := len(blocks)
	if a.progressCallback != nil {
		a.progressCallback(0, total)
	}

	for i, block := range blocks {
		path := resolver.Resolve(block.Path)
		action := fs.FileAction(path)

		if err := fs.WriteFile(path, []byte(strings.Join(block.Content, "")), parents); err != nil {
			summary.Failed = append(summary.Failed, path)
			a.relativizeSummaryPaths(&summary)
			return summary, fmt.Errorf("failed to write %s: %w", path, err)
		}

		if action == fs.ActionCreate {
			ui.Success("Created: %s", path)
			summary.Created = append(summary.Created, path)
		} else {
			ui.Success("Updated: %s", path)
			summary.Modified = append(summary.Modified, path)
		}
		if a.progressCallback != nil {
			a.progressCallback(i+1, total)
		}
	}

	a.relativizeSummaryPaths(&summary)
	return summary, nil
}

// recoverPanic turns a panic into a DetailedError carrying the stack.
func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = &DetailedError{
			Err:   fmt.Errorf("internal panic: %v", r),
			Stack: debug.Stack(),
		}
	}
}

// relativizeSummaryPaths converts absolute file paths in a summary to be
// relative to the current working directory for cleaner display.
func (a *App) relativizeSummaryPaths(summary *model.Summary) {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	makeRelative := func(paths []string) []string {
		if len(paths) == 0 {
			return nil
		}
		relPaths := make([]string, len(paths))
		for i, p := range paths {
			if !filepath.IsAbs(p) {
				relPaths[i] = p
				continue
			}
			rel, err := filepath.Rel(wd, p)
			if err != nil {
				relPaths[i] = p // Fallback to absolute path
			} else {
				relPaths[i] = rel
			}
		}
		return relPaths
	}

	summary.Created = makeRelative(summary.Created)
	summary.Modified = makeRelative(summary.Modified)
	summary.Failed = makeRelative(summary.Failed)
}
