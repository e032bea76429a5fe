package chunk_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/temirov/textread/internal/chunk"
)

func TestSplitExamples(testingHandle *testing.T) {
	testingHandle.Parallel()

	testCases := []struct {
		name     string
		text     string
		maxBytes int
		expected []string
	}{
		{name: "empty_text", text: "", maxBytes: 4, expected: []string{}},
		{name: "exact_multiple", text: "abcdef", maxBytes: 3, expected: []string{"abc", "def"}},
		{name: "remainder", text: "abcdefg", maxBytes: 3, expected: []string{"abc", "def", "g"}},
		{name: "larger_than_text", text: "abc", maxBytes: 10, expected: []string{"abc"}},
		{name: "cut_inside_character", text: "aé", maxBytes: 2, expected: []string{"a�", "�"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testingHandle.Run(testCase.name, func(subTestingHandle *testing.T) {
			subTestingHandle.Parallel()
			pieces, splitError := chunk.Split(testCase.text, testCase.maxBytes)
			if splitError != nil {
				subTestingHandle.Fatalf("unexpected error: %v", splitError)
			}
			if !reflect.DeepEqual(pieces, testCase.expected) {
				subTestingHandle.Fatalf("Split = %q, want %q", pieces, testCase.expected)
			}
		})
	}
}

func TestSplitRejectsNonPositiveSize(testingHandle *testing.T) {
	testingHandle.Parallel()

	for _, maxBytes := range []int{0, -1} {
		if _, splitError := chunk.Split("text", maxBytes); !errors.Is(splitError, chunk.ErrInvalidChunkSize) {
			testingHandle.Fatalf("Split with %d: expected ErrInvalidChunkSize, got %v", maxBytes, splitError)
		}
	}
}

func TestSplitProperties(testingHandle *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("ascii pieces concatenate to the input", prop.ForAll(
		func(text string, maxBytes int) bool {
			pieces, splitError := chunk.Split(text, maxBytes)
			return splitError == nil && strings.Join(pieces, "") == text
		},
		gen.AlphaString(),
		gen.IntRange(1, 64),
	))

	properties.Property("piece count is the ceiling of length over size", prop.ForAll(
		func(text string, maxBytes int) bool {
			pieces, splitError := chunk.Split(text, maxBytes)
			return splitError == nil && len(pieces) == (len(text)+maxBytes-1)/maxBytes && len(pieces) == chunk.Count(len(text), maxBytes)
		},
		gen.AnyString(),
		gen.IntRange(1, 64),
	))

	properties.Property("every piece is valid utf-8", prop.ForAll(
		func(text string, maxBytes int) bool {
			pieces, splitError := chunk.Split(text, maxBytes)
			if splitError != nil {
				return false
			}
			for _, piece := range pieces {
				if !utf8.ValidString(piece) {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
		gen.IntRange(1, 8),
	))

	properties.TestingRun(testingHandle)
}
