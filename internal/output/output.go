// Package output serializes a ProjectOutput and assembles export artifacts.
package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/alpkeskin/gotoon"

	"github.com/temirov/textread/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	separatorLine       = "----------------------------------------"
	rawNoteHeader       = "Note:"
	rawTreeHeader       = "--- Directory Tree ---"
	rawFileHeaderFormat = "File: %s\n"
	rawFileFooterFormat = "End of file: %s\n"
)

var errUnsupportedFormat = errors.New("unsupported output format")

// toonProject mirrors ProjectOutput for the TOON encoder, which follows JSON
// field names.
type toonProject struct {
	Note  *string            `json:"llm_note"`
	Files []types.FileRecord `json:"files"`
	Tree  *string            `json:"tree_view"`
}

// Render serializes projectOutput in the requested format. Encoding failures
// and unknown formats are reported as *types.SerializationError.
func Render(projectOutput *types.ProjectOutput, format string) (string, error) {
	if projectOutput == nil {
		projectOutput = &types.ProjectOutput{}
	}
	if projectOutput.Files == nil {
		normalized := *projectOutput
		normalized.Files = []types.FileRecord{}
		projectOutput = &normalized
	}
	switch strings.ToLower(format) {
	case types.FormatJSON, "":
		return RenderJSON(projectOutput)
	case types.FormatXML:
		return RenderXML(projectOutput)
	case types.FormatTOON:
		return RenderTOON(projectOutput)
	case types.FormatRaw:
		return RenderRaw(projectOutput), nil
	default:
		return "", &types.SerializationError{Format: format, Err: errUnsupportedFormat}
	}
}

// RenderJSON marshals projectOutput with two-space indentation. Markup
// characters in file content are kept as is.
func RenderJSON(projectOutput *types.ProjectOutput) (string, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(indentPrefix, indentSpacer)
	if encodeError := encoder.Encode(projectOutput); encodeError != nil {
		return "", &types.SerializationError{Format: types.FormatJSON, Err: encodeError}
	}
	return strings.TrimSuffix(buffer.String(), "\n"), nil
}

// RenderXML marshals projectOutput as an XML document.
func RenderXML(projectOutput *types.ProjectOutput) (string, error) {
	encoded, xmlMarshalError := xml.MarshalIndent(projectOutput, indentPrefix, indentSpacer)
	if xmlMarshalError != nil {
		return "", &types.SerializationError{Format: types.FormatXML, Err: xmlMarshalError}
	}
	return xmlHeader + string(encoded), nil
}

// RenderTOON encodes projectOutput in Token-Oriented Object Notation.
func RenderTOON(projectOutput *types.ProjectOutput) (string, error) {
	encoded, toonEncodeError := gotoon.Encode(toonProject{
		Note:  projectOutput.Note,
		Files: projectOutput.Files,
		Tree:  projectOutput.Tree,
	})
	if toonEncodeError != nil {
		return "", &types.SerializationError{Format: types.FormatTOON, Err: toonEncodeError}
	}
	return encoded, nil
}

// RenderRaw prints the note, the tree and every file as plain text blocks.
func RenderRaw(projectOutput *types.ProjectOutput) string {
	var buffer bytes.Buffer
	if projectOutput.Note != nil && *projectOutput.Note != "" {
		buffer.WriteString(rawNoteHeader + "\n")
		buffer.WriteString(*projectOutput.Note + "\n\n")
	}
	if projectOutput.Tree != nil {
		buffer.WriteString(rawTreeHeader + "\n")
		buffer.WriteString(*projectOutput.Tree + "\n\n")
	}
	for _, fileRecord := range projectOutput.Files {
		fmt.Fprintf(&buffer, rawFileHeaderFormat, fileRecord.Name)
		buffer.WriteString(fileRecord.Content + "\n")
		fmt.Fprintf(&buffer, rawFileFooterFormat, fileRecord.Name)
		buffer.WriteString(separatorLine + "\n")
	}
	return buffer.String()
}
