package parser

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sokinpui/splitkit/internal/model"
)

const (
	DefaultPrefix = "//"
	DefaultSuffix = ".go"
	DefaultHeader = "package main"
)

// ListingOptions controls how marker lines are recognised and what every
// extracted file starts with.
type ListingOptions struct {
	// Prefix is the comment token that opens a marker, e.g. "//".
	// It must be followed by a single space on the marker line.
	Prefix string
	// Suffix is the file extension a marker line must end with.
	Suffix string
	// Header is written as the first line of every extracted file.
	Header string
}

// DefaultListingOptions matches Go listings: "// path/to/file.go".
func DefaultListingOptions() ListingOptions {
	return ListingOptions{
		Prefix: DefaultPrefix,
		Suffix: DefaultSuffix,
		Header: DefaultHeader,
	}
}

// Validate requires a marker prefix and suffix. An empty suffix would turn
// every prefixed comment into a marker.
func (o ListingOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Prefix, validation.Required),
		validation.Field(&o.Suffix, validation.Required),
	)
}

// MarkerPath reports the filename named by line if it is a marker line.
func (o ListingOptions) MarkerPath(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	lead := o.Prefix + " "
	if !strings.HasPrefix(trimmed, lead) || !strings.HasSuffix(trimmed, o.Suffix) {
		return "", false
	}
	return trimmed[len(lead):], true
}

// ParseListing splits a concatenated listing into file blocks. Every block
// starts with the header line followed by the lines between its marker and
// the next marker, terminators included. Lines before the first marker are
// dropped.
func ParseListing(content string, opts ListingOptions) []model.FileBlock {
	var blocks []model.FileBlock
	var current *model.FileBlock

	flush := func() {
		if current != nil {
			blocks = append(blocks, *current)
		}
		current = nil
	}

	for _, line := range SplitLines(content) {
		if path, ok := opts.MarkerPath(line); ok {
			flush()
			current = &model.FileBlock{
				Path:    path,
				Content: []string{opts.Header + "\n"},
			}
			continue
		}
		if current != nil {
			current.Content = append(current.Content, line)
		}
	}
	flush()

	return blocks
}

// ParseMarkdownListing runs ParseListing over the concatenated contents of
// the fenced code blocks in a markdown document. Prose between the fences is
// ignored.
func ParseMarkdownListing(source []byte, opts ListingOptions) ([]model.FileBlock, error) {
	codeBlocks, err := ExtractCodeBlocks(source)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, cb := range codeBlocks {
		b.WriteString(cb.Content)
	}
	return ParseListing(b.String(), opts), nil
}

// SplitLines splits s after every "\n", keeping the terminator on each line.
// A final line without a newline is kept as is.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
