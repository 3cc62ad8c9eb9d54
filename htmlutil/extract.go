// Package htmlutil implements the external link-extraction collaborator the
// crawl engine treats as a black box: given an HTML document it returns the
// raw href attribute values of every anchor tag, unresolved and unfiltered.
package htmlutil

import (
	"io"

	"golang.org/x/net/html"
)

// ExtractHrefs returns the raw href attribute value of every <a> element in
// body, in document order, including duplicates. Resolution against a base
// URL, scheme/extension filtering, and same-site admission are the core
// normalizer's job, not this function's.
func ExtractHrefs(body io.Reader) ([]string, error) {
	tokenizer := html.NewTokenizer(body)
	var hrefs []string

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return hrefs, err
			}
			return hrefs, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
	}
}
