package patterns

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"

	"github.com/temirov/textread/internal/types"
)

const unsupportedEngineFormat = "unsupported pattern engine %q"

type expressionMatcher interface {
	matchString(path string) (bool, error)
}

type re2Matcher struct {
	expression *regexp.Regexp
}

func (matcher re2Matcher) matchString(path string) (bool, error) {
	return matcher.expression.MatchString(path), nil
}

// regexp2Matcher evaluates .NET-style expressions, which add look-around and
// backreferences. Evaluation fails when MatchTimeout elapses.
type regexp2Matcher struct {
	expression *regexp2.Regexp
}

func (matcher regexp2Matcher) matchString(path string) (bool, error) {
	return matcher.expression.MatchString(path)
}

func newExpressionMatcher(source string, options Options) (expressionMatcher, error) {
	switch options.engineName() {
	case types.EngineRE2:
		expression, compileError := regexp.Compile(source)
		if compileError != nil {
			return nil, compileError
		}
		return re2Matcher{expression: expression}, nil
	case types.EngineRegexp2:
		expression, compileError := regexp2.Compile(source, regexp2.None)
		if compileError != nil {
			return nil, compileError
		}
		expression.MatchTimeout = options.matchTimeout()
		return regexp2Matcher{expression: expression}, nil
	default:
		return nil, fmt.Errorf(unsupportedEngineFormat, options.Engine)
	}
}

// IsSupportedEngine reports whether name selects a known engine.
func IsSupportedEngine(name string) bool {
	switch (Options{Engine: name}).engineName() {
	case types.EngineRE2, types.EngineRegexp2:
		return true
	default:
		return false
	}
}
