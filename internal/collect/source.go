package collect

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// Source searches one document provider. Implementations return at most max
// documents and must treat provider errors as their own; the collector only
// sees the error, logs it, and moves on.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, max int) ([]model.Document, error)
}

const semanticScholarBase = "https://api.semanticscholar.org/graph/v1/paper/search"

// SemanticScholarSource searches the Semantic Scholar Graph API for academic
// papers. The API needs no key for low request volumes.
type SemanticScholarSource struct {
	client  *Client
	baseURL string
}

// NewSemanticScholarSource builds the academic paper source.
func NewSemanticScholarSource(client *Client) *SemanticScholarSource {
	return &SemanticScholarSource{client: client, baseURL: semanticScholarBase}
}

func (s *SemanticScholarSource) Name() string { return "semantic_scholar" }

type scholarResponse struct {
	Total int `json:"total"`
	Data  []struct {
		Title    string `json:"title"`
		Abstract string `json:"abstract"`
		URL      string `json:"url"`
		Year     int    `json:"year"`
		Venue    string `json:"venue"`
		Authors  []struct {
			Name string `json:"name"`
		} `json:"authors"`
	} `json:"data"`
}

// Search queries the paper search endpoint and maps results to documents.
func (s *SemanticScholarSource) Search(ctx context.Context, query string, max int) ([]model.Document, error) {
	if max <= 0 {
		max = 20
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(max))
	params.Set("fields", "title,abstract,url,year,venue,authors")

	var resp scholarResponse
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	docs := make([]model.Document, 0, len(resp.Data))
	for _, p := range resp.Data {
		if p.Title == "" {
			continue
		}
		names := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		authors := strings.Join(names, "; ")
		docs = append(docs, model.Document{
			Title:      p.Title,
			Abstract:   p.Abstract,
			URL:        p.URL,
			SourceName: "Academic",
			Authors:    authors,
			Citation:   formatCitation(authors, p.Year, p.Title, p.Venue),
		})
	}
	return docs, nil
}

// formatCitation assembles an informal citation from whatever metadata the
// provider returned.
func formatCitation(authors string, year int, title, venue string) string {
	var b strings.Builder
	if authors != "" {
		b.WriteString(authors)
		b.WriteString(" ")
	}
	if year > 0 {
		fmt.Fprintf(&b, "(%d). ", year)
	}
	b.WriteString(title)
	b.WriteString(".")
	if venue != "" {
		b.WriteString(" ")
		b.WriteString(venue)
		b.WriteString(".")
	}
	return strings.TrimSpace(b.String())
}
