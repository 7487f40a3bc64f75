package domain

import "path/filepath"

// Asset is a file in flight through a pipeline.
type Asset struct {
	// Path is the absolute source path the asset was read from.
	Path string
	// Base is the output file name, relative to the task's output directory.
	Base string
	// Output is a requested output name applied by the rename stage.
	Output string
	// Contents holds the current bytes of the asset.
	Contents []byte
	// SourceMap is the current source map, if one is being tracked.
	SourceMap []byte
	// TrackMap is set when a source map has been requested for this asset.
	TrackMap bool
	// LinkMap is set when the source map must be written as a sibling file.
	LinkMap bool
	// Extra holds companion files written next to the asset.
	Extra []Asset
}

// Input is a resolved source file.
type Input struct {
	// Path is the absolute file path.
	Path string
	// Rel is Path relative to the static base of the pattern that matched it.
	// Outputs keep this layout below the task's output directory.
	Rel string
}

// NewAsset returns an asset for path whose output name is the source base name.
func NewAsset(path string, contents []byte) *Asset {
	return &Asset{
		Path:     path,
		Base:     filepath.Base(path),
		Contents: contents,
	}
}

// SetExt replaces the extension of the output name.
func (a *Asset) SetExt(ext string) {
	a.Base = a.Base[:len(a.Base)-len(filepath.Ext(a.Base))] + ext
}

// Report summarizes one task run.
type Report struct {
	Task    string
	RunID   string
	Written []string
	Skipped []string
	Failed  []error
}

// OK reports whether every input of the run succeeded.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}
