package entity

import "strings"

// Example is one language-learning example in a user's collection:
// a source sentence, the new word it illustrates, and an optional
// translation. Identity is assigned by the backend on creation.
type Example struct {
	ID                 int64
	SourceLanguage     string
	NewWord            string
	Content            string
	ContentTranslation string
}

// ExampleDraft carries the user-supplied fields for a new example.
// SourceLanguage and ContentTranslation are optional and may be empty.
type ExampleDraft struct {
	SourceLanguage     string
	NewWord            string
	Content            string
	ContentTranslation string
}

// Validate validates the draft before any request is issued.
func (d *ExampleDraft) Validate() error {
	if strings.TrimSpace(d.NewWord) == "" {
		return ErrInvalidExampleNewWord
	}
	if strings.TrimSpace(d.Content) == "" {
		return ErrInvalidExampleContent
	}
	return nil
}

// ExamplePatch is a partial update of an example. Only non-nil fields are
// transmitted to the backend.
type ExamplePatch struct {
	SourceLanguage     *string
	NewWord            *string
	Content            *string
	ContentTranslation *string
}

// Empty reports whether the patch carries no fields at all.
func (p *ExamplePatch) Empty() bool {
	return p.SourceLanguage == nil && p.NewWord == nil && p.Content == nil && p.ContentTranslation == nil
}

// PaginationMeta describes one page of a collection. All fields are nil
// together in the unfetched state and populated together after a
// successful fetch.
type PaginationMeta struct {
	TotalItems *int64
	PerPage    *int64
	TotalPages *int64
	Page       *int64
}

// PaginationLinks carries the navigation URLs of a page envelope. An empty
// string means the link is absent (Next/Prev at the collection boundary,
// everything in the unfetched state).
type PaginationLinks struct {
	Self  string
	Next  string
	Prev  string
	First string
	Last  string
}

// ExamplePage is one page envelope as returned by the backend: metadata,
// navigation links and the page's items in server order.
type ExamplePage struct {
	Meta  PaginationMeta
	Links PaginationLinks
	Items []Example
}
