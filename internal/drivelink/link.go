package drivelink

import (
	"regexp"
	"strings"
)

// Status is the audit outcome for one Drive link.
type Status string

const (
	StatusAvailable  Status = "Available"
	StatusMissing    Status = "Missing"
	StatusBroken     Status = "Broken Link"
	StatusNoLink     Status = "No Link"
	StatusNotChecked Status = "Not Checked"
)

// Drive URLs hide the file ID in several shapes; a bare ID is also
// accepted when it is long enough to be unambiguous.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]{10,})`),
	regexp.MustCompile(`/folders/([a-zA-Z0-9_-]{10,})`),
	regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{10,})`),
	regexp.MustCompile(`/open\?id=([a-zA-Z0-9_-]{10,})`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{25,})$`),
}

// FileID extracts the Drive file ID from a link. The second return is
// false when no pattern matches.
func FileID(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(link); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// IsFolder reports whether the link points at a Drive folder.
func IsFolder(link string) bool {
	return strings.Contains(link, "/folders/")
}
