package injector

import (
	"github.com/getlawrence/hooklog/internal/annotation"
	"github.com/getlawrence/hooklog/internal/codegen/types"
	"github.com/getlawrence/hooklog/internal/jsast"
	"github.com/getlawrence/hooklog/internal/logger"
)

const (
	// EffectFunction is the effect-registration hook every injected statement calls
	EffectFunction = "useEffect"
	// EffectModule is the module EffectFunction is imported from
	EffectModule = "react"
)

// Options configures a CodeInjector
type Options struct {
	// Production disables the transform; Inject becomes a no-op.
	Production bool
	Logger     logger.Logger
}

// CodeInjector inserts useEffect logging hooks into annotated components and hooks
type CodeInjector struct {
	production bool
	log        logger.Logger
}

// NewCodeInjector creates an injector. The production flag is fixed for the
// injector's lifetime.
func NewCodeInjector(opts Options) *CodeInjector {
	log := opts.Logger
	if log == nil {
		log = logger.Nop{}
	}
	return &CodeInjector{production: opts.Production, log: log}
}

// Production reports whether the injector was built in production mode
func (ci *CodeInjector) Production() bool { return ci.production }

// Inject rewrites file in place and reports what it changed. Malformed
// annotations and ineligible declarations are skipped silently.
func (ci *CodeInjector) Inject(file *jsast.File) *types.FileResult {
	result := &types.FileResult{Path: file.Path, Dialect: string(file.Dialect)}
	if ci.production {
		ci.log.Debugf("production mode, skipping %s\n", file.Path)
		return result
	}

	for _, c := range findCandidates(file) {
		ci.injectCandidate(file, c, result)
	}

	result.Modified = file.Modified()
	return result
}

func (ci *CodeInjector) injectCandidate(file *jsast.File, c candidate, result *types.FileResult) {
	comments := c.fn.LeadingComments()
	texts := make([]string, len(comments))
	for i, comment := range comments {
		texts[i] = comment.Text
	}

	for _, names := range annotation.Collect(texts) {
		body, ok := c.fn.Body()
		if !ok {
			ci.log.Debugf("%s:%d: %s has an expression body, @log(%v) ignored\n", file.Path, c.fn.Line(), c.name, names)
			result.Skipped = append(result.Skipped, types.SkippedCandidate{
				Function: c.name,
				Line:     c.fn.Line(),
				Reason:   "expression body",
			})
			continue
		}

		result.MergeImport(EnsureImport(file))
		index := InsertHook(body, names)

		ci.log.Debugf("%s:%d: injected %s into %s at statement %d\n", file.Path, c.fn.Line(), EffectFunction, c.name, index)
		result.Injections = append(result.Injections, types.HookInjection{
			Function:  c.name,
			Line:      c.fn.Line(),
			Variables: names,
			Index:     index,
		})
	}
}
