package splitkit

import (
	"github.com/sokinpui/splitkit/internal/fs"
	"github.com/sokinpui/splitkit/internal/parser"
)

// Config for using the listing extractor as a library.
type Config struct {
	// Directory extracted files are written to. Empty means the working directory.
	Dir string
	// Create missing parent directories of extracted files.
	Parents bool
	// Marker prefix, e.g. "//". Empty uses the default.
	Prefix string
	// Marker suffix, e.g. ".go". Empty uses the default.
	Suffix string
	// First line of every extracted file. Empty uses the default.
	Header string
}

// Apply parses the given listing and writes one file per marker line.
// It returns a summary of the operations in a map.
func Apply(content string, config Config) (map[string][]string, error) {
	opts := parser.DefaultListingOptions()
	if config.Prefix != "" {
		opts.Prefix = config.Prefix
	}
	if config.Suffix != "" {
		opts.Suffix = config.Suffix
	}
	if config.Header != "" {
		opts.Header = config.Header
	}

	app := New()
	blocks := parser.ParseListing(content, opts)
	summary, err := app.writeBlocks(blocks, fs.NewPathResolver(config.Dir), config.Parents)
	if err != nil {
		return nil, err
	}

	result := map[string][]string{
		"Created":  summary.Created,
		"Modified": summary.Modified,
		"Failed":   summary.Failed,
	}

	return result, nil
}
