package ui

import (
	"math"
	"strings"

	"github.com/pthm-cable/drift/camera"
	"github.com/pthm-cable/drift/content"
)

// LoadingText is shown until content arrives.
const LoadingText = "Loading..."

// Span is a run of same-styled text on one line, in content coordinates
// unless returned by a Visible method.
type Span struct {
	Text  string
	X, Y  float64
	Size  int32
	Style TextStyle
}

// Card is the laid-out block of one paper.
type Card struct {
	Key        string
	PreviewURL string
	Link       string
	Rect       camera.Rect
	Thumb      camera.Rect
	Spans      []Span
}

// Thumbnail names an anchor and the image that should fill it.
type Thumbnail struct {
	Key string
	URL string
}

// Layout stacks the intro and one card per paper in a centered column and
// scrolls it vertically. Thumbnail rectangles are the anchors image fields
// are projected onto.
type Layout struct {
	theme   Theme
	measure MeasureFunc

	width, height float64
	scroll        float64
	contentH      float64

	result *content.Result
	spans  []Span // Intro and section header
	cards  []Card
	index  map[string]int
}

// NewLayout creates an empty layout for a viewport. measure may be nil.
func NewLayout(th Theme, measure MeasureFunc, width, height float64) *Layout {
	if measure == nil {
		measure = ApproxMeasure
	}
	l := &Layout{
		theme:   th,
		measure: measure,
		width:   width,
		height:  height,
		index:   make(map[string]int),
	}
	l.relayout()
	return l
}

// SetContent replaces the laid-out content.
func (l *Layout) SetContent(res content.Result) {
	l.result = &res
	l.relayout()
}

// Loaded reports whether content was set.
func (l *Layout) Loaded() bool {
	return l.result != nil
}

// Resize changes the viewport and re-wraps text to the new width.
func (l *Layout) Resize(width, height float64) {
	if width == l.width && height == l.height {
		return
	}
	l.width, l.height = width, height
	l.relayout()
}

// Scroll moves the view by dy pixels, clamped to the content.
func (l *Layout) Scroll(dy float64) {
	l.scrollTo(l.scroll + dy)
}

// ScrollOffset returns the current scroll position.
func (l *Layout) ScrollOffset() float64 {
	return l.scroll
}

// ContentHeight returns the height of everything laid out.
func (l *Layout) ContentHeight() float64 {
	return l.contentH
}

func (l *Layout) scrollTo(y float64) {
	maxScroll := math.Max(0, l.contentH-l.height)
	l.scroll = math.Min(math.Max(y, 0), maxScroll)
}

// AnchorRect returns the on-screen rectangle of a thumbnail. It reports
// false for keys that are not laid out.
func (l *Layout) AnchorRect(key string) (camera.Rect, bool) {
	i, ok := l.index[key]
	if !ok {
		return camera.Rect{}, false
	}
	r := l.cards[i].Thumb
	r.Y -= l.scroll
	return r, true
}

// Thumbnails lists every anchor with its preview image, top to bottom.
func (l *Layout) Thumbnails() []Thumbnail {
	thumbs := make([]Thumbnail, len(l.cards))
	for i, c := range l.cards {
		thumbs[i] = Thumbnail{Key: c.Key, URL: c.PreviewURL}
	}
	return thumbs
}

// LinkAt returns the link of the card under a viewport position.
func (l *Layout) LinkAt(x, y float64) (string, bool) {
	cy := y + l.scroll
	for _, c := range l.cards {
		r := c.Rect
		if x >= r.X && x < r.X+r.W && cy >= r.Y && cy < r.Y+r.H {
			return c.Link, c.Link != ""
		}
	}
	return "", false
}

// VisibleSpans returns the intro spans in viewport coordinates, skipping
// lines fully outside the viewport.
func (l *Layout) VisibleSpans() []Span {
	return l.visible(l.spans)
}

// VisibleCards returns cards intersecting the viewport, translated to
// viewport coordinates.
func (l *Layout) VisibleCards() []Card {
	view := camera.Rect{W: l.width, H: l.height}
	var out []Card
	for _, c := range l.cards {
		c.Rect.Y -= l.scroll
		if !c.Rect.Intersects(view) {
			continue
		}
		c.Thumb.Y -= l.scroll
		c.Spans = l.visible(c.Spans)
		out = append(out, c)
	}
	return out
}

func (l *Layout) visible(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		s.Y -= l.scroll
		if s.Y+float64(s.Size) < 0 || s.Y > l.height {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (l *Layout) lineHeight(size int32) float64 {
	return float64(size + l.theme.LineSpacing)
}

func (l *Layout) relayout() {
	th := l.theme
	margin := float64(th.Margin)
	pad := float64(th.Padding)
	gap := float64(th.Gap)

	colW := math.Min(float64(th.MaxWidth), l.width-2*margin)
	if colW < 0 {
		colW = 0
	}
	x := (l.width - colW) / 2
	y := margin

	l.spans = l.spans[:0]
	l.cards = l.cards[:0]
	clear(l.index)

	if l.result == nil {
		spans, bottom := l.flow(words(LoadingText, StyleMuted), x, y, colW, th.FontSize)
		l.spans = append(l.spans, spans...)
		l.contentH = bottom + margin
		l.scrollTo(l.scroll)
		return
	}

	for i, para := range strings.Split(l.result.IntroText(), "\n\n") {
		size, style := th.FontSize, StyleBody
		if i == 0 {
			size, style = th.HeaderFontSize, StyleHeader
		}
		spans, bottom := l.flow(words(para, style), x, y, colW, size)
		l.spans = append(l.spans, spans...)
		y = bottom + gap/2
	}
	y += gap / 2

	spans, bottom := l.flow(words("Publications", StyleHeader), x, y, colW, th.TitleFontSize)
	l.spans = append(l.spans, spans...)
	y = bottom + gap/2

	if msg := l.result.PapersText(); msg != "" {
		spans, bottom := l.flow(words(msg, StyleMuted), x, y, colW, th.FontSize)
		l.spans = append(l.spans, spans...)
		y = bottom + gap
	}

	thumb := float64(th.ThumbSize)
	textX := x + pad + thumb + pad
	textW := math.Max(colW-3*pad-thumb, 0)
	for _, e := range l.result.Entries {
		top := y
		ty := top + pad

		var cardSpans []Span
		add := func(ws []word, size int32) {
			spans, bottom := l.flow(ws, textX, ty, textW, size)
			cardSpans = append(cardSpans, spans...)
			ty = bottom + float64(th.LineSpacing)
		}
		add(words(e.Title, StyleTitle), th.TitleFontSize)
		add(authorWords(e.Names), th.FontSize)
		venue := e.Venue()
		if e.Year != "" {
			venue += ", " + e.Year
		}
		add(words(venue, StyleMuted), th.FontSize)

		h := math.Max(ty-top+pad, thumb+2*pad)
		l.index[e.Key] = len(l.cards)
		l.cards = append(l.cards, Card{
			Key:        e.Key,
			PreviewURL: e.PreviewURL,
			Link:       e.Link,
			Rect:       camera.Rect{X: x, Y: top, W: colW, H: h},
			Thumb:      camera.Rect{X: x + pad, Y: top + pad, W: thumb, H: thumb},
			Spans:      cardSpans,
		})
		y = top + h + gap
	}

	l.contentH = y - gap + margin
	l.scrollTo(l.scroll)
}

type word struct {
	text  string
	style TextStyle
}

func words(text string, style TextStyle) []word {
	fields := strings.Fields(text)
	ws := make([]word, len(fields))
	for i, f := range fields {
		ws[i] = word{text: f, style: style}
	}
	return ws
}

// authorWords flows the author list with highlighted names styled apart.
func authorWords(authors []content.Author) []word {
	var ws []word
	for i, a := range authors {
		style := StyleBody
		if a.Highlight {
			style = StyleHighlight
		}
		parts := strings.Fields(a.Name)
		for j, p := range parts {
			if j == len(parts)-1 && i < len(authors)-1 {
				p += ","
			}
			ws = append(ws, word{text: p, style: style})
		}
	}
	return ws
}

// flow wraps words greedily into lines of at most width pixels starting at
// (x, y). Consecutive words of one style on a line merge into one span.
// It returns the spans and the y below the last line. A word wider than
// the line is placed alone.
func (l *Layout) flow(ws []word, x, y, width float64, size int32) ([]Span, float64) {
	if len(ws) == 0 {
		return nil, y
	}
	lh := l.lineHeight(size)
	space := float64(l.measure(" ", size))

	var spans []Span
	cursor := x
	lineStart := true
	for _, w := range ws {
		ww := float64(l.measure(w.text, size))
		if !lineStart && cursor+space+ww > x+width {
			y += lh
			cursor = x
			lineStart = true
		}
		if !lineStart {
			last := &spans[len(spans)-1]
			if last.Style == w.style && last.Y == y {
				last.Text += " " + w.text
				cursor += space + ww
				continue
			}
			cursor += space
		}
		spans = append(spans, Span{Text: w.text, X: cursor, Y: y, Size: size, Style: w.style})
		cursor += ww
		lineStart = false
	}
	return spans, y + lh
}
