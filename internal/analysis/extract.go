package analysis

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphClose = regexp.MustCompile(`</w:p>`)
	xmlTag         = regexp.MustCompile(`<[^>]+>`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
)

// extractDocxText pulls the plain text out of a DOCX payload. Paragraph
// boundaries become newlines; all other markup is dropped.
func extractDocxText(data []byte) (string, error) {
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer reader.Close()

	content := reader.Editable().GetContent()
	content = paragraphClose.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = blankRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content), nil
}
