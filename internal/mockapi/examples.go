package mockapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type examplePayload struct {
	SourceLanguage     *string `json:"source_language"`
	NewWord            *string `json:"new_word"`
	Content            *string `json:"content"`
	ContentTranslation *string `json:"content_translation"`
}

func (s *Server) handleListExamples(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	query := r.URL.Query()
	page := parsePositiveInt(query.Get("page"), 1)
	perPage := parsePositiveInt(query.Get("per_page"), defaultPerPage)

	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*example
	for _, id := range s.order {
		ex := s.examples[id]
		if ex.ownerID != u.id || !matchesFilters(ex, query) {
			continue
		}
		matched = append(matched, ex)
	}

	total := int64(len(matched))
	totalPages := (total + perPage - 1) / perPage
	if page > totalPages && totalPages > 0 {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	if start > total {
		start = total
	}

	items := make([]map[string]any, 0, end-start)
	for _, ex := range matched[start:end] {
		items = append(items, exampleJSON(ex))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"_meta": map[string]any{
			"total_items": total,
			"per_page":    perPage,
			"total_pages": totalPages,
			"page":        page,
		},
		"_links": pageLinks(query, page, perPage, totalPages),
		"items":  items,
	})
}

func (s *Server) handleCreateExample(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}
	var body examplePayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "the request body is not valid JSON")
		return
	}
	if deref(body.NewWord) == "" || deref(body.Content) == "" {
		writeMessage(w, http.StatusBadRequest, "new_word and content are both required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.exampleSeq++
	ex := &example{
		id:                 s.exampleSeq,
		ownerID:            u.id,
		sourceLanguage:     deref(body.SourceLanguage),
		newWord:            deref(body.NewWord),
		content:            deref(body.Content),
		contentTranslation: deref(body.ContentTranslation),
	}
	s.examples[ex.id] = ex
	s.order = append(s.order, ex.id)
	writeJSON(w, http.StatusCreated, exampleJSON(ex))
}

func (s *Server) handleEditExample(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	var body examplePayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "the request body is not valid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ex, ok := s.examples[id]
	if !ok || ex.ownerID != u.id {
		writeMessage(w, http.StatusNotFound, "your collection does not contain the requested example")
		return
	}
	if body.SourceLanguage != nil {
		ex.sourceLanguage = *body.SourceLanguage
	}
	if body.NewWord != nil {
		ex.newWord = *body.NewWord
	}
	if body.Content != nil {
		ex.content = *body.Content
	}
	if body.ContentTranslation != nil {
		ex.contentTranslation = *body.ContentTranslation
	}
	writeJSON(w, http.StatusOK, exampleJSON(ex))
}

func (s *Server) handleDeleteExample(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authenticate(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ex, ok := s.examples[id]
	if !ok || ex.ownerID != u.id {
		writeMessage(w, http.StatusNotFound, "your collection does not contain the requested example")
		return
	}
	delete(s.examples, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// matchesFilters applies the list endpoint's case-insensitive substring
// search parameters.
func matchesFilters(ex *example, query url.Values) bool {
	filters := map[string]string{
		"source_language":     ex.sourceLanguage,
		"new_word":            ex.newWord,
		"content":             ex.content,
		"content_translation": ex.contentTranslation,
	}
	for name, value := range filters {
		needle := query.Get(name)
		if needle == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(value), strings.ToLower(needle)) {
			return false
		}
	}
	return true
}

// pageLinks builds the envelope's navigation URLs as backend-relative
// paths, preserving any search filters. Next/prev are null at the
// collection boundaries.
func pageLinks(query url.Values, page, perPage, totalPages int64) map[string]any {
	link := func(target int64) string {
		values := url.Values{}
		for _, name := range []string{"source_language", "new_word", "content", "content_translation"} {
			if v := query.Get(name); v != "" {
				values.Set(name, v)
			}
		}
		values.Set("page", strconv.FormatInt(target, 10))
		values.Set("per_page", strconv.FormatInt(perPage, 10))
		return "/api/examples?" + values.Encode()
	}

	lastPage := max(totalPages, 1)
	links := map[string]any{
		"self":  link(page),
		"first": link(1),
		"last":  link(lastPage),
		"next":  nil,
		"prev":  nil,
	}
	if page < totalPages {
		links["next"] = link(page + 1)
	}
	if page > 1 {
		links["prev"] = link(page - 1)
	}
	return links
}

func exampleJSON(ex *example) map[string]any {
	return map[string]any{
		"id":                  ex.id,
		"source_language":     nullable(ex.sourceLanguage),
		"new_word":            ex.newWord,
		"content":             ex.content,
		"content_translation": nullable(ex.contentTranslation),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
