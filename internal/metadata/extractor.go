// Package metadata extracts content metadata from blog posts, the one
// platform where the gateway returns a URL instead of structured content.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PostMetadata represents extracted metadata from a blog post
type PostMetadata struct {
	Title       string
	Description string
	ImageURL    string
	TextContent string
	WordCount   int
	ReadingTime int // minutes
	HasMedia    bool
}

// Extractor handles extracting metadata from blog post pages
type Extractor struct {
	httpClient *http.Client
}

// NewExtractor creates a new metadata extractor
func NewExtractor() *Extractor {
	return &Extractor{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// Extract fetches a blog post URL and extracts its metadata
func (e *Extractor) Extract(ctx context.Context, postURL string) (*PostMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", postURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "CreatorPulse/1.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return ExtractFromDocument(doc), nil
}

// ExtractFromDocument extracts metadata from an already parsed HTML document
func ExtractFromDocument(doc *html.Node) *PostMetadata {
	meta := &PostMetadata{}

	extractOGData(doc, meta)
	if meta.Title == "" {
		meta.Title = findTitleTag(doc)
	}
	if meta.Description == "" {
		meta.Description = findMetaContent(doc, "description")
	}

	meta.TextContent = extractTextContent(doc)
	meta.WordCount = len(strings.Fields(meta.TextContent))
	// Assume 200 words per minute
	meta.ReadingTime = meta.WordCount / 200
	if meta.ReadingTime < 1 && meta.WordCount > 0 {
		meta.ReadingTime = 1
	}
	meta.HasMedia = meta.ImageURL != "" || hasMediaElement(doc)

	return meta
}

// extractOGData walks the document for Open Graph meta tags
func extractOGData(doc *html.Node, meta *PostMetadata) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property":
					property = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if content != "" {
				switch property {
				case "og:title":
					if meta.Title == "" {
						meta.Title = content
					}
				case "og:description":
					if meta.Description == "" {
						meta.Description = content
					}
				case "og:image":
					if meta.ImageURL == "" {
						meta.ImageURL = content
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// findTitleTag returns the text of the first <title> element
func findTitleTag(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

// findMetaContent returns the content of a <meta name=...> tag
func findMetaContent(doc *html.Node, name string) string {
	var content string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if content != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var metaName, metaContent string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name":
					metaName = attr.Val
				case "content":
					metaContent = attr.Val
				}
			}
			if metaName == name {
				content = metaContent
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return content
}

// extractTextContent collects text from content elements, skipping scripts
// and styles
func extractTextContent(doc *html.Node) string {
	var text strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			trimmed := strings.TrimSpace(n.Data)
			if trimmed != "" {
				text.WriteString(trimmed)
				text.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(text.String())
}

// hasMediaElement reports whether the page body contains img or video tags
func hasMediaElement(doc *html.Node) bool {
	found := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "img" || n.Data == "video") {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}
