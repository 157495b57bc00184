package detect

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var masjidKeywords = []string{
	"masjid",
	"mosque",
	"islamic center",
	"islamic centre",
	"jumu'ah",
	"jummah",
	"salah times",
	"prayer times",
	"musalla",
}

// looksLikeMasjid is a keyword heuristic over the title, the meta description
// and the visible body text.
func looksLikeMasjid(doc *goquery.Document) bool {
	var b strings.Builder
	b.WriteString(doc.Find("title").First().Text())
	b.WriteByte(' ')
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		if name, _ := s.Attr("name"); strings.EqualFold(name, "description") {
			content, _ := s.Attr("content")
			b.WriteString(content)
			b.WriteByte(' ')
		}
	})
	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	b.WriteString(body.Text())

	text := strings.ToLower(b.String())
	for _, kw := range masjidKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
