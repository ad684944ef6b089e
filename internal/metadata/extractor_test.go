package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/net/html"
)

func TestExtract(t *testing.T) {
	// Read test HTML file
	htmlContent, err := os.ReadFile("testdata/sample_post.html")
	if err != nil {
		t.Fatalf("Failed to read test HTML file: %v", err)
	}

	// Create a test server that serves our sample HTML
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(htmlContent)
	}))
	defer server.Close()

	extractor := NewExtractor()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	meta, err := extractor.Extract(ctx, server.URL)
	if err != nil {
		t.Fatalf("Failed to extract metadata: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"Title", meta.Title, "Content Strategy: A Complete Guide"},
		{"Description", meta.Description, "Plan your content calendar like a professional creator."},
		{"ImageURL", meta.ImageURL, "https://example.com/strategy-cover.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.got)
			}
		})
	}

	if !meta.HasMedia {
		t.Error("Expected HasMedia to be true for a page with an image")
	}
	if meta.WordCount == 0 {
		t.Error("Expected a non-zero word count")
	}
	if meta.ReadingTime < 1 {
		t.Errorf("Expected reading time of at least 1 minute, got %d", meta.ReadingTime)
	}
	if strings.Contains(meta.TextContent, "tracking") {
		t.Error("Script content should not appear in extracted text")
	}
}

func TestExtractFallbacksWithoutOpenGraph(t *testing.T) {
	raw := `<!DOCTYPE html>
<html>
<head>
	<title>Plain Post Title</title>
	<meta name="description" content="Plain description.">
</head>
<body><p>Some body text for the post.</p></body>
</html>`

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}

	meta := ExtractFromDocument(doc)

	if meta.Title != "Plain Post Title" {
		t.Errorf("Expected title from <title> tag, got %q", meta.Title)
	}
	if meta.Description != "Plain description." {
		t.Errorf("Expected description from meta tag, got %q", meta.Description)
	}
	if meta.HasMedia {
		t.Error("Expected HasMedia to be false for a text-only page")
	}
}

func TestExtractRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	extractor := NewExtractor()
	if _, err := extractor.Extract(context.Background(), server.URL); err == nil {
		t.Error("Expected an error for a 404 response")
	}
}
