package types

// ImportChange records what the import check did to a source unit
type ImportChange string

const (
	ImportUnchanged ImportChange = ""
	// ImportExtended means useEffect was appended to an existing react import
	ImportExtended ImportChange = "extended"
	// ImportAdded means a new react import statement was inserted
	ImportAdded ImportChange = "added"
)

// HookInjection represents one effect-call statement inserted into a function body
type HookInjection struct {
	Function  string   `json:"function"`
	Line      int      `json:"line"`
	Variables []string `json:"variables"`
	// Index is the position of the new statement in the function body
	Index int `json:"index"`
}

// SkippedCandidate is an annotated component or hook that could not take a hook
type SkippedCandidate struct {
	Function string `json:"function"`
	Line     int    `json:"line"`
	Reason   string `json:"reason"`
}

// FileResult is the outcome of transforming one source unit
type FileResult struct {
	Path       string             `json:"path"`
	OutputPath string             `json:"output_path,omitempty"`
	Dialect    string             `json:"dialect,omitempty"`
	Injections []HookInjection    `json:"injections,omitempty"`
	Skipped    []SkippedCandidate `json:"skipped,omitempty"`
	Import     ImportChange       `json:"import,omitempty"`
	Modified   bool               `json:"modified"`
	Written    bool               `json:"written"`
	Cached     bool               `json:"cached,omitempty"`
	Err        error              `json:"-"`
}

// MergeImport keeps the most significant import change seen so far
func (r *FileResult) MergeImport(change ImportChange) {
	switch {
	case change == ImportAdded:
		r.Import = ImportAdded
	case change == ImportExtended && r.Import == ImportUnchanged:
		r.Import = ImportExtended
	}
}
