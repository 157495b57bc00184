// Package detect finds tracked companies in a page's markup.
package detect

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"bwa/internal/domain"
)

// Result is what a single page tells us.
type Result struct {
	Detected domain.CompanySet
	IsMasjid bool
	Title    string
}

// Engine evaluates company signatures against fetched markup.
type Engine struct {
	companies []domain.Company
}

// New builds an engine over the given companies; nil means the full registry.
func New(companies []domain.Company) *Engine {
	if companies == nil {
		companies = domain.Registry()
	}
	return &Engine{companies: companies}
}

// Detect parses the markup once and evaluates every signature against it.
func (e *Engine) Detect(markup []byte) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return Result{}, fmt.Errorf("parse document: %w", err)
	}
	p := page{
		raw:        strings.ToLower(string(markup)),
		hosts:      resourceHosts(doc),
		generators: generators(doc),
	}

	res := Result{
		Detected: domain.NewCompanySet(),
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
	}
	for _, c := range e.companies {
		if p.matches(c.Signature) {
			res.Detected.Add(c.ID)
		}
	}
	res.IsMasjid = looksLikeMasjid(doc)
	return res, nil
}

type page struct {
	raw        string
	hosts      []string
	generators []string
}

func (p page) matches(sig domain.Signature) bool {
	for _, s := range sig.Substrings {
		if strings.Contains(p.raw, strings.ToLower(s)) {
			return true
		}
	}
	for _, want := range sig.Hosts {
		want = strings.ToLower(want)
		for _, h := range p.hosts {
			if h == want || strings.HasSuffix(h, "."+want) {
				return true
			}
		}
	}
	for _, g := range sig.Generators {
		g = strings.ToLower(g)
		for _, have := range p.generators {
			if strings.HasPrefix(have, g) {
				return true
			}
		}
	}
	return false
}

func resourceHosts(doc *goquery.Document) []string {
	var hosts []string
	collect := func(sel, attr string) {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			v, ok := s.Attr(attr)
			if !ok {
				return
			}
			v = strings.TrimSpace(v)
			if strings.HasPrefix(v, "//") {
				v = "https:" + v
			}
			u, err := url.Parse(v)
			if err != nil || u.Host == "" {
				return
			}
			hosts = append(hosts, strings.ToLower(u.Hostname()))
		})
	}
	collect("script[src]", "src")
	collect("link[href]", "href")
	collect("iframe[src]", "src")
	return hosts
}

func generators(doc *goquery.Document) []string {
	var out []string
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "generator") {
			return
		}
		if content, ok := s.Attr("content"); ok {
			out = append(out, strings.ToLower(strings.TrimSpace(content)))
		}
	})
	return out
}
