// Package utils contains general helper functions used across textread.
package utils

import (
	"path/filepath"
	"strings"
)

const pathSegmentSeparator = "/"

// DeduplicatePatterns removes duplicate patterns from a slice while preserving order.
// The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativeSlashPath expresses fullPath relative to root using forward slashes.
// The boolean is false when fullPath does not lie under root, in which case the
// cleaned fullPath is returned unchanged. The root itself resolves to ".".
func RelativeSlashPath(root, fullPath string) (string, bool) {
	cleanRoot := filepath.Clean(root)
	cleanPath := filepath.Clean(fullPath)
	if cleanPath == cleanRoot {
		return ".", true
	}
	relativePath, relativeError := filepath.Rel(cleanRoot, cleanPath)
	if relativeError != nil {
		return cleanPath, false
	}
	slashPath := filepath.ToSlash(relativePath)
	if slashPath == ".." || strings.HasPrefix(slashPath, "../") {
		return cleanPath, false
	}
	return slashPath, true
}

// NormalizeSlashes converts both separator styles to forward slashes.
func NormalizeSlashes(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", pathSegmentSeparator)
}

// ContainsBackupSegment reports whether a slash-separated relative path passes
// through the backup directory. The check is segment-aware: "target/backups"
// and "mytarget/backup" do not match.
func ContainsBackupSegment(relativePath string) bool {
	segments := strings.Split(NormalizeSlashes(relativePath), pathSegmentSeparator)
	for segmentIndex := 0; segmentIndex+1 < len(segments); segmentIndex++ {
		if segments[segmentIndex] == BackupParentDirectoryName && segments[segmentIndex+1] == BackupDirectoryName {
			return true
		}
	}
	return false
}

// BackupRoot returns the absolute directory that holds snapshots for a project root.
func BackupRoot(projectRoot string) string {
	return filepath.Join(projectRoot, BackupParentDirectoryName, BackupDirectoryName)
}

// ProjectName returns the display name of a project root, or fallback when it has none.
func ProjectName(projectRoot string, fallback string) string {
	if strings.TrimSpace(projectRoot) == "" {
		return fallback
	}
	baseName := filepath.Base(filepath.Clean(projectRoot))
	if baseName == "." || baseName == pathSegmentSeparator || baseName == string(filepath.Separator) {
		return fallback
	}
	return baseName
}
