package collect

import (
	"context"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/rotisserie/eris"
)

// PageText fetches a web page and reduces its markup to plain-ish text. The
// markdown conversion strips tags and scripts while keeping headings and
// paragraph breaks, which is enough for keyword and sentiment analysis.
func (c *Client) PageText(ctx context.Context, rawURL string) (string, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	text, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return "", eris.Wrapf(err, "collect: convert page %s", rawURL)
	}
	return collapseWhitespace(text), nil
}

// collapseWhitespace folds runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate cuts s to at most n bytes at a rune boundary.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
