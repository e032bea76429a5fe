package snapshot

import (
	"regexp"
	"strings"
	"time"

	"github.com/temirov/textread/internal/types"
	"github.com/temirov/textread/internal/utils"
)

const (
	labelFieldName      = "snapshot label"
	labelRuleText       = "only ASCII letters and digits are allowed"
	defaultLabel        = "snapshot"
	folderNameSeparator = "-"
)

var labelExpression = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateLabel trims raw and checks it is empty or alphanumeric.
func ValidateLabel(raw string) (string, error) {
	label := strings.TrimSpace(raw)
	if label == "" {
		return "", nil
	}
	if !labelExpression.MatchString(label) {
		return "", &types.ValidationError{Field: labelFieldName, Value: label, Reason: labelRuleText}
	}
	return label, nil
}

// FolderName names a snapshot directory: the local timestamp followed by the
// label, or by "snapshot" when the label is empty.
func FolderName(timestamp time.Time, label string) string {
	if label == "" {
		label = defaultLabel
	}
	return utils.FormatSnapshotTimestamp(timestamp) + folderNameSeparator + label
}
