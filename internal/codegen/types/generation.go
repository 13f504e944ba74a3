package types

import "time"

// GenerationRequest contains parameters for a transform run
type GenerationRequest struct {
	// Paths are files or directories to transform
	Paths []string `json:"paths"`
	// OutputDirectory mirrors each input root; ignored when InPlace is set
	OutputDirectory string `json:"output_directory,omitempty"`
	InPlace         bool   `json:"in_place,omitempty"`
	DryRun          bool   `json:"dry_run,omitempty"`
	// Print writes the regenerated source of modified files to the output stream
	Print bool `json:"print,omitempty"`
	// Diff writes a unified diff of modified files to the output stream
	Diff bool `json:"diff,omitempty"`
}

// RunResult aggregates the results of a transform run
type RunResult struct {
	Files    []*FileResult `json:"files"`
	Duration time.Duration `json:"duration"`
}

// Injections returns the total number of hooks inserted
func (r *RunResult) Injections() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Injections)
	}
	return n
}

// Modified returns the files that changed
func (r *RunResult) Modified() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Modified {
			out = append(out, f)
		}
	}
	return out
}

// Failed returns the files that could not be transformed
func (r *RunResult) Failed() []*FileResult {
	var out []*FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}
