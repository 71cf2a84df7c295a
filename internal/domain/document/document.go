// Package document defines the content document aggregate fed to the index.
package document

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	ctRegex = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)?$`)
	idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// MaxBodySize is the maximum body size in bytes.
const MaxBodySize = 163840 // 160KB

// Document is an indexable content item (immutable value object). Its
// identity is the pair (content type, source ID).
type Document struct {
	contentType string
	sourceID    string
	title       string
	slug        string
	tags        []string
	body        string
	url         string
}

// New validates and creates a Document.
// ContentType: dotted lowercase label, e.g. "cms.page".
// SourceID: alphanumeric with underscores and hyphens.
// Title may be empty when a slug is present.
func New(contentType, sourceID, title, slug string, tags []string, body, url string) (Document, error) {
	if contentType == "" {
		return Document{}, fmt.Errorf("content type is required")
	}
	if !ctRegex.MatchString(contentType) {
		return Document{}, fmt.Errorf("content type %q must be a dotted lowercase label", contentType)
	}
	if sourceID == "" {
		return Document{}, fmt.Errorf("source ID is required")
	}
	if !idRegex.MatchString(sourceID) {
		return Document{}, fmt.Errorf("source ID must be alphanumeric with underscores and hyphens")
	}
	if title == "" && slug == "" {
		return Document{}, fmt.Errorf("title or slug is required")
	}
	if len(body) > MaxBodySize {
		return Document{}, fmt.Errorf("body too large (max %d bytes)", MaxBodySize)
	}

	return Document{
		contentType: contentType,
		sourceID:    sourceID,
		title:       title,
		slug:        slug,
		tags:        cloneStrings(tags),
		body:        body,
		url:         url,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(contentType, sourceID, title, slug string, tags []string, body, url string) Document {
	return Document{
		contentType: contentType, sourceID: sourceID,
		title: title, slug: slug, tags: tags, body: body, url: url,
	}
}

// ID returns the globally unique index key "<content_type>.<source_id>".
func (d *Document) ID() string { return d.contentType + "." + d.sourceID }

// ContentType returns the source model label.
func (d *Document) ContentType() string { return d.contentType }

// SourceID returns the identifier within the content type.
func (d *Document) SourceID() string { return d.sourceID }

// Title returns the raw title.
func (d *Document) Title() string { return d.title }

// Slug returns the URL slug.
func (d *Document) Slug() string { return d.slug }

// DisplayTitle returns the title, falling back to the slug when empty.
func (d *Document) DisplayTitle() string {
	if d.title != "" {
		return d.title
	}
	return d.slug
}

// Tags returns the document tags.
func (d *Document) Tags() []string { return cloneStrings(d.tags) }

// TagText returns the tags joined for full-text indexing.
func (d *Document) TagText() string { return strings.Join(d.tags, " ") }

// Body returns the extracted text body.
func (d *Document) Body() string { return d.body }

// URL returns the canonical URL.
func (d *Document) URL() string { return d.url }

// Content returns the aggregated full-text blob: title, tags and body.
func (d *Document) Content() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{d.DisplayTitle(), d.TagText(), d.body} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
