package cms

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type htmlStats struct {
	words          int
	firstParagraph string
	headings       []Heading
}

// inspect walks sanitized article HTML once, collecting the text of the
// first paragraph, h2/h3 headings and a whitespace word count.
func inspect(fragment string) htmlStats {
	var (
		stats     htmlStats
		z         = html.NewTokenizer(strings.NewReader(fragment))
		inPara    bool
		paraDone  bool
		para      strings.Builder
		heading   *Heading
		headingTx strings.Builder
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			stats.firstParagraph = strings.Join(strings.Fields(para.String()), " ")
			return stats
		case html.StartTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.P:
				if !paraDone {
					inPara = true
				}
			case atom.H2, atom.H3:
				level := 2
				if tok.DataAtom == atom.H3 {
					level = 3
				}
				heading = &Heading{Level: level, ID: attr(tok, "id")}
				headingTx.Reset()
			}
		case html.EndTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.P:
				if inPara {
					inPara = false
					paraDone = para.Len() > 0
				}
			case atom.H2, atom.H3:
				if heading != nil {
					heading.Text = strings.Join(strings.Fields(headingTx.String()), " ")
					stats.headings = append(stats.headings, *heading)
					heading = nil
				}
			}
		case html.TextToken:
			text := string(z.Text())
			stats.words += len(strings.Fields(text))
			if inPara {
				para.WriteString(text)
			}
			if heading != nil {
				headingTx.WriteString(text)
			}
		}
	}
}

func attr(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
