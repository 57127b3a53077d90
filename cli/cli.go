package cli

import (
	"errors"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/pflag"

	"github.com/sokinpui/splitkit/internal/parser"
	"github.com/sokinpui/splitkit/internal/tiles"
)

// DefaultListingInput is the file extract reads when no input is given.
const DefaultListingInput = "input.txt"

// ErrUsage is returned when positional arguments are missing or extra. The
// usage text has already been printed when it is returned.
var ErrUsage = errors.New("invalid usage")

// TileConfig holds the tilesplit command-line values.
type TileConfig struct {
	Input     string
	OutputDir string
	Size      int
	TUI       bool
}

// Validate checks that both paths are present.
func (c TileConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.Size, validation.Min(0)),
	)
}

// ExtractConfig holds the extract command-line values.
type ExtractConfig struct {
	Input     string
	OutputDir string
	Clipboard bool
	Markdown  bool
	Parents   bool
	TUI       bool
	Listing   parser.ListingOptions
}

// Validate checks the marker settings.
func (c ExtractConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Input, validation.Required),
		validation.Field(&c.Listing),
	)
}

// DefaultExtractConfig returns the settings used when no flags are given.
func DefaultExtractConfig() *ExtractConfig {
	return &ExtractConfig{
		Input:   DefaultListingInput,
		Listing: parser.DefaultListingOptions(),
	}
}

// ParseTileFlags parses the tilesplit arguments (without the program name).
func ParseTileFlags(args []string, out io.Writer) (*TileConfig, error) {
	cfg := &TileConfig{}
	flags := pflag.NewFlagSet("tilesplit", pflag.ContinueOnError)
	flags.SetOutput(out)

	flags.IntVarP(&cfg.Size, "size", "s", tiles.DefaultSize, "Tile edge length in pixels.")
	flags.BoolVar(&cfg.TUI, "tui", false, "Show a spinner while splitting and a summary when done.")

	flags.Usage = func() {
		fmt.Fprintln(out, "Usage: tilesplit [flags] <input_file> <output_folder>")
		fmt.Fprintln(out, "\nSplit an image into square PNG tiles named tile_<col>_<row>.png.")
		fmt.Fprintln(out, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return nil, ErrUsage
	}
	cfg.Input = flags.Arg(0)
	cfg.OutputDir = flags.Arg(1)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseExtractFlags parses the extract arguments (without the program name).
func ParseExtractFlags(args []string, out io.Writer) (*ExtractConfig, error) {
	cfg := DefaultExtractConfig()
	flags := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	flags.SetOutput(out)

	flags.StringVarP(&cfg.OutputDir, "dir", "C", "", "Directory extracted files are written to (default: current directory).")
	flags.BoolVarP(&cfg.Clipboard, "clipboard", "c", false, "Read the listing from the clipboard instead of a file.")
	flags.BoolVarP(&cfg.Markdown, "markdown", "m", false, "Only scan fenced code blocks of a markdown input.")
	flags.BoolVarP(&cfg.Parents, "parents", "p", false, "Create missing parent directories of extracted files.")
	flags.BoolVar(&cfg.TUI, "tui", false, "Show a spinner while extracting and a summary when done.")
	flags.StringVar(&cfg.Listing.Prefix, "prefix", parser.DefaultPrefix, "Comment token that opens a marker line.")
	flags.StringVar(&cfg.Listing.Suffix, "suffix", parser.DefaultSuffix, "Extension a marker line must end with.")
	flags.StringVar(&cfg.Listing.Header, "header", parser.DefaultHeader, "Line written at the top of every extracted file.")

	flags.Usage = func() {
		fmt.Fprintln(out, "Usage: extract [flags] [input]")
		fmt.Fprintf(out, "\nSplit a concatenated listing into files. Reads %s by default, '-' for stdin.\n", DefaultListingInput)
		fmt.Fprintln(out, "\nExample: extract -C out listing.txt")
		fmt.Fprintln(out, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	switch flags.NArg() {
	case 0:
	case 1:
		cfg.Input = flags.Arg(0)
	default:
		flags.Usage()
		return nil, ErrUsage
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
