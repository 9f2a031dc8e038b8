package pfr

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/riskibarqy/antelope-reconciler/internal/domain/identity"
	"github.com/riskibarqy/antelope-reconciler/internal/domain/roster"
)

// Missing marks a header field the page did not expose.
const Missing = "NA"

var (
	positionLabelRegex = regexp.MustCompile(`Position[:\s]*([A-Za-z0-9/ ,]+)`)
	positionAnyRegex   = regexp.MustCompile(`(?i)(Position|Pos)[:\s]*([A-Za-z0-9/ ,]+)`)
	positionWordRegex  = regexp.MustCompile(`(?i)\b(Position|Pos)\b`)
	whitespaceRegex    = regexp.MustCompile(`\s+`)
)

// ParseIdentity reads name, position and team from a player page. The
// #meta block is preferred; a team link anywhere on the page and a loose
// position label scan are the fallbacks.
func ParseIdentity(body []byte, sourceURL string) (identity.Scraped, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return identity.Scraped{}, err
	}

	var name, position, team string

	nameTag := doc.Find(`h1[itemprop="name"]`).First()
	if nameTag.Length() == 0 {
		nameTag = doc.Find("h1").First()
	}
	name = collapse(nameTag.Text())

	doc.Find("#meta p").Each(func(_ int, p *goquery.Selection) {
		text := spacedText(p)
		if position == "" {
			if m := positionLabelRegex.FindStringSubmatch(text); m != nil {
				position = strings.TrimSpace(m[1])
			}
		}
		if team == "" && strings.Contains(text, "Team") {
			if a := p.Find("a").First(); a.Length() > 0 {
				team = collapse(a.Text())
			} else {
				parts := strings.Split(text, "Team")
				team = strings.TrimSpace(strings.ReplaceAll(parts[len(parts)-1], ":", ""))
			}
		}
	})

	if team == "" {
		team = collapse(doc.Find(`a[href*='/teams/']`).First().Text())
	}

	if position == "" {
		doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !positionWordRegex.MatchString(ownText(s)) {
				return true
			}
			if m := positionAnyRegex.FindStringSubmatch(spacedText(s)); m != nil {
				position = strings.TrimSpace(m[2])
			}
			return false
		})
	}

	return identity.Scraped{
		Name:      orMissing(name),
		Position:  orMissing(position),
		Team:      orMissing(roster.NormalizeTeam(team)),
		SourceURL: sourceURL,
	}, nil
}

// spacedText joins the text nodes of s with single spaces.
func spacedText(s *goquery.Selection) string {
	var parts []string
	collectText(s, &parts)
	return strings.Join(parts, " ")
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
			return
		}
		collectText(c, parts)
	})
}

func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return Missing
	}
	return s
}
