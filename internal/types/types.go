// Package types defines every cross‑package data structure used by the textread CLI.
package types

import (
	"encoding/xml"
	"strings"
)

const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatTOON = "toon"

	EngineRE2     = "re2"
	EngineRegexp2 = "regexp2"

	SplitAsk    = "ask"
	SplitAlways = "always"
	SplitNever  = "never"

	lineSeparator = "\n"
)

// FileRecord is one selected file produced by a single collection run.
type FileRecord struct {
	URL     string `json:"file_url" xml:"file_url"`
	Name    string `json:"file_name" xml:"file_name"`
	Content string `json:"file_content" xml:"file_content"`
}

// ProjectOutput is the result of one collection run. The note is declared
// first so that it leads every serialized form.
type ProjectOutput struct {
	XMLName xml.Name     `json:"-" xml:"project"`
	Note    *string      `json:"llm_note" xml:"llm_note,omitempty"`
	Files   []FileRecord `json:"files" xml:"files>file"`
	Tree    *string      `json:"tree_view" xml:"tree_view,omitempty"`
}

// FileURLs returns the absolute source paths of the selected files in order.
func (output *ProjectOutput) FileURLs() []string {
	if output == nil {
		return nil
	}
	urls := make([]string, 0, len(output.Files))
	for _, record := range output.Files {
		urls = append(urls, record.URL)
	}
	return urls
}

// TotalContentBytes sums the byte length of every selected file's content.
func (output *ProjectOutput) TotalContentBytes() int64 {
	if output == nil {
		return 0
	}
	var total int64
	for _, record := range output.Files {
		total += int64(len(record.Content))
	}
	return total
}

// Settings is the categorized content of a project's settings file.
type Settings struct {
	Includes   []string
	Excludes   []string
	OutputPath string
	Memo       []string
	Notes      []string
}

// Clone returns a deep copy so callers can edit without aliasing.
func (settings Settings) Clone() Settings {
	return Settings{
		Includes:   append([]string(nil), settings.Includes...),
		Excludes:   append([]string(nil), settings.Excludes...),
		OutputPath: settings.OutputPath,
		Memo:       append([]string(nil), settings.Memo...),
		Notes:      append([]string(nil), settings.Notes...),
	}
}

// NoteText joins the note lines the way they are presented to text consumers.
func (settings Settings) NoteText() string {
	return strings.Join(settings.Notes, lineSeparator)
}
