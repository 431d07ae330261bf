package content

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Paper is one publication parsed from the bibliography.
type Paper struct {
	Title   string
	Authors string // Raw BibTeX author field
	Journal string
	Year    string
	Month   int // 1-12, 0 when absent or unrecognised
	Preview string
	Link    string // html field, falling back to url
}

// entrySplit finds the start of every supported entry type.
var entrySplit = regexp.MustCompile(`(?i)@(article|misc|inproceedings|book)\b`)

var months = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

var fieldPatterns = map[string]*regexp.Regexp{}

func init() {
	for _, key := range []string{"title", "author", "journal", "year", "month", "preview", "html", "url"} {
		fieldPatterns[key] = regexp.MustCompile(`(?is)\b` + key + `\s*=\s*\{(.*?)\}`)
	}
}

// ParseBibliography extracts papers from BibTeX text, newest first.
// Entries without a title are dropped.
func ParseBibliography(text string) []Paper {
	locs := entrySplit.FindAllStringIndex(text, -1)
	papers := make([]Paper, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if p, ok := parseEntry(text[loc[1]:end]); ok {
			papers = append(papers, p)
		}
	}
	SortPapers(papers)
	return papers
}

func parseEntry(entry string) (Paper, bool) {
	field := func(key string) string {
		m := fieldPatterns[key].FindStringSubmatch(entry)
		if m == nil {
			return ""
		}
		return strings.TrimSpace(m[1])
	}

	title := field("title")
	if title == "" {
		return Paper{}, false
	}

	link := field("html")
	if link == "" {
		link = field("url")
	}

	return Paper{
		Title:   title,
		Authors: field("author"),
		Journal: field("journal"),
		Year:    field("year"),
		Month:   MonthNumber(field("month")),
		Preview: field("preview"),
		Link:    link,
	}, true
}

// MonthNumber converts a month name or abbreviation to 1-12, or 0.
func MonthNumber(s string) int {
	return months[strings.ToLower(strings.TrimSpace(s))]
}

// YearNumber parses the leading digits of the year, or 0.
func (p Paper) YearNumber() int {
	digits := p.Year
	for i, r := range p.Year {
		if r < '0' || r > '9' {
			digits = p.Year[:i]
			break
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// Venue returns the journal, or "Preprint" when there is none.
func (p Paper) Venue() string {
	if p.Journal == "" {
		return "Preprint"
	}
	return p.Journal
}

// SortPapers orders papers by year then month, newest first. Ties keep
// their bibliography order.
func SortPapers(papers []Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		yi, yj := papers[i].YearNumber(), papers[j].YearNumber()
		if yi != yj {
			return yi > yj
		}
		return papers[i].Month > papers[j].Month
	})
}

// Author is one formatted author name.
type Author struct {
	Name      string
	Highlight bool
}

// FormatAuthors splits a BibTeX author list on " and ", reorders
// "Last, First Middle" to "First Middle Last" and marks names containing
// highlight. Matching is done on NFC-normalised text.
func FormatAuthors(raw, highlight string) []Author {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	want := norm.NFC.String(highlight)

	parts := strings.Split(raw, " and ")
	authors := make([]Author, 0, len(parts))
	for _, a := range parts {
		name := strings.TrimSpace(a)
		if strings.Contains(name, ",") {
			fields := strings.Split(name, ",")
			name = strings.TrimSpace(strings.TrimSpace(fields[1]) + " " + strings.TrimSpace(fields[0]))
		}
		name = norm.NFC.String(name)
		authors = append(authors, Author{
			Name:      name,
			Highlight: want != "" && strings.Contains(name, want),
		})
	}
	return authors
}

// JoinAuthors renders formatted authors as a comma separated list,
// wrapping highlighted names with mark on both sides.
func JoinAuthors(authors []Author, mark string) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		if a.Highlight {
			names[i] = mark + a.Name + mark
		} else {
			names[i] = a.Name
		}
	}
	return strings.Join(names, ", ")
}
