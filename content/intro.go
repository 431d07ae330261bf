package content

import (
	"regexp"
	"strings"
)

var (
	mdLink     = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	mdEmphasis = regexp.MustCompile(`(\*\*|__|\*|_|` + "`" + `)([^*_` + "`" + `]+)(\*\*|__|\*|_|` + "`" + `)`)
	mdHeading  = regexp.MustCompile(`^#{1,6}\s+`)
	mdBullet   = regexp.MustCompile(`^\s*[-*+]\s+`)
)

// PlainText reduces biography markdown to display text: headings, emphasis
// markers and link targets are dropped, bullets become "• " and paragraphs
// are joined into single lines.
func PlainText(markdown string) string {
	var paragraphs []string
	var cur []string

	flush := func() {
		if len(cur) > 0 {
			paragraphs = append(paragraphs, strings.Join(cur, " "))
			cur = nil
		}
	}

	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if mdHeading.MatchString(line) {
			flush()
			paragraphs = append(paragraphs, inline(mdHeading.ReplaceAllString(line, "")))
			continue
		}
		if mdBullet.MatchString(line) {
			flush()
			paragraphs = append(paragraphs, "• "+inline(mdBullet.ReplaceAllString(line, "")))
			continue
		}
		cur = append(cur, inline(line))
	}
	flush()

	return strings.Join(paragraphs, "\n\n")
}

func inline(s string) string {
	s = mdLink.ReplaceAllString(s, "$1")
	s = mdEmphasis.ReplaceAllString(s, "$2")
	return s
}
