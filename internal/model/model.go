package model

// FileBlock is the content collected under one marker line of a listing.
type FileBlock struct {
	Path    string
	Content []string // Lines keep their original terminators.
}

// Tile is a single written tile of a split image.
type Tile struct {
	Col  int
	Row  int
	Path string
}

// Summary holds the results of an operation for display.
type Summary struct {
	Created  []string
	Modified []string
	Failed   []string
	Message  string
}
