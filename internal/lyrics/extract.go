// Package lyrics turns a lyrics web page into plain text.
package lyrics

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoLyrics is returned when the page has no recognizable lyrics block
var ErrNoLyrics = errors.New("lyrics: no lyrics found on page")

// selectors are tried in order; the first one that yields text wins
var selectors = []string{
	`[data-lyrics-container="true"]`,
	".lyrics",
	`[class^="Lyrics__Container"]`,
}

// excluded are nodes inside lyrics containers that are not lyrics
const excluded = `[data-exclude-from-selection="true"], script, style`

var blankLines = regexp.MustCompile(`\n{3,}`)

// Extract returns the lyrics text of a Genius-style lyrics page. Line
// breaks are preserved and multiple containers are joined with a newline.
func Extract(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, selector := range selectors {
		var parts []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			s.Find(excluded).Remove()
			s.Find("br").ReplaceWithHtml("\n")
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		})

		if len(parts) > 0 {
			return format(strings.Join(parts, "\n")), nil
		}
	}

	return "", ErrNoLyrics
}

// format trims trailing spaces on each line and collapses runs of blank lines
func format(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	text = strings.Join(lines, "\n")
	return strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
}
