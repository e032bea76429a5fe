// Package patterns compiles user-supplied regular expressions and evaluates
// them against slash-separated relative paths.
//
// Matching uses search semantics: a pattern matches when it matches anywhere
// in the path. Callers that want whole-path anchoring write ^...$ themselves.
//
// Compilation is lenient by default. Invalid pattern text is dropped and
// recorded in Set.Rejected so that a caller can surface it, or a strict
// caller can ask CompileAll to fail on the first invalid pattern instead.
//
// A pattern whose evaluation fails (a regexp2 timeout) is reported through
// Options.OnMatchError and then resolves toward not selecting the file: an
// exclude counts as matched, an include as not matched.
package patterns

import (
	"strings"
	"time"

	"github.com/temirov/textread/internal/types"
)

// Kind tags a pattern as granting or revoking eligibility.
type Kind string

const (
	// KindInclude patterns grant file eligibility.
	KindInclude Kind = "include"
	// KindExclude patterns revoke file eligibility and prune tree directories.
	KindExclude Kind = "exclude"
)

// DefaultMatchTimeout bounds a single regexp2 evaluation.
const DefaultMatchTimeout = time.Second

// MatchErrorHandler receives a pattern evaluation failure. It may be called
// from several goroutines at once.
type MatchErrorHandler func(source string, path string, matchError error)

// Options selects the regular expression engine and the failure policy.
type Options struct {
	Engine       string
	Strict       bool
	MatchTimeout time.Duration
	OnMatchError MatchErrorHandler
}

func (options Options) engineName() string {
	normalized := strings.ToLower(strings.TrimSpace(options.Engine))
	if normalized == "" {
		return types.EngineRE2
	}
	return normalized
}

func (options Options) matchTimeout() time.Duration {
	if options.MatchTimeout <= 0 {
		return DefaultMatchTimeout
	}
	return options.MatchTimeout
}

// Pattern is a successfully compiled regular expression.
type Pattern struct {
	Source       string
	Kind         Kind
	engine       expressionMatcher
	onMatchError MatchErrorHandler
}

// MatchString reports whether the pattern matches anywhere in path.
func (pattern Pattern) MatchString(path string) bool {
	if pattern.engine == nil {
		return false
	}
	matched, matchError := pattern.engine.matchString(path)
	if matchError != nil {
		if pattern.onMatchError != nil {
			pattern.onMatchError(pattern.Source, path, matchError)
		}
		return pattern.Kind == KindExclude
	}
	return matched
}

// Compile compiles source with the default engine.
func Compile(source string, kind Kind) (Pattern, error) {
	return CompileWithOptions(source, kind, Options{})
}

// CompileWithOptions compiles source with the engine named in options.
// A failure is reported as *types.PatternError.
func CompileWithOptions(source string, kind Kind, options Options) (Pattern, error) {
	engine, compileError := newExpressionMatcher(source, options)
	if compileError != nil {
		return Pattern{}, &types.PatternError{Pattern: source, Err: compileError}
	}
	return Pattern{Source: source, Kind: kind, engine: engine, onMatchError: options.OnMatchError}, nil
}

// Matches reports whether at least one pattern matches anywhere in path.
func Matches(path string, patterns []Pattern) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// Set is an ordered collection of compiled patterns of one kind together with
// the source texts that failed to compile.
type Set struct {
	kind     Kind
	patterns []Pattern
	rejected []string
}

// CompileAll compiles every non-blank source in order. Sources are trimmed
// before compilation. Under the default lenient policy invalid sources are
// dropped and listed by Rejected; with options.Strict the first invalid source
// is returned as *types.PatternError.
func CompileAll(sources []string, kind Kind, options Options) (Set, error) {
	set := Set{kind: kind}
	for _, source := range sources {
		trimmedSource := strings.TrimSpace(source)
		if trimmedSource == "" {
			continue
		}
		pattern, compileError := CompileWithOptions(trimmedSource, kind, options)
		if compileError != nil {
			if options.Strict {
				return Set{kind: kind}, compileError
			}
			set.rejected = append(set.rejected, trimmedSource)
			continue
		}
		set.patterns = append(set.patterns, pattern)
	}
	return set, nil
}

// Kind returns the kind shared by every pattern of the set.
func (set Set) Kind() Kind {
	return set.kind
}

// Matches reports whether at least one compiled pattern matches anywhere in path.
func (set Set) Matches(path string) bool {
	return Matches(path, set.patterns)
}

// Patterns returns the compiled patterns in source order.
func (set Set) Patterns() []Pattern {
	return append([]Pattern(nil), set.patterns...)
}

// Rejected returns the source texts dropped because they failed to compile.
func (set Set) Rejected() []string {
	return append([]string(nil), set.rejected...)
}

// Len returns the number of live compiled patterns.
func (set Set) Len() int {
	return len(set.patterns)
}

// Empty reports whether the set holds no live pattern.
func (set Set) Empty() bool {
	return len(set.patterns) == 0
}
