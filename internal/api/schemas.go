package api

import (
	"github.com/samber/lo"

	"github.com/vocabtreasury/vocabtreasury/internal/entity"
)

// Wire schemas for the backend's JSON bodies. Field names follow the
// backend's snake_case contract and are mapped to entities here, so the
// rest of the client never sees wire shapes.

type registrationSchema struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileSchema struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type tokenSchema struct {
	Token string `json:"token"`
}

type messageSchema struct {
	Message string `json:"message"`
}

type emailSchema struct {
	Email string `json:"email"`
}

type exampleSchema struct {
	ID                 int64   `json:"id"`
	SourceLanguage     *string `json:"source_language"`
	NewWord            string  `json:"new_word"`
	Content            string  `json:"content"`
	ContentTranslation *string `json:"content_translation"`
}

// createExampleSchema is the request body for create. Optional fields are
// transmitted as null rather than empty strings.
type createExampleSchema struct {
	SourceLanguage     *string `json:"source_language"`
	NewWord            string  `json:"new_word"`
	Content            string  `json:"content"`
	ContentTranslation *string `json:"content_translation"`
}

// editExampleSchema is the request body for edit. Fields the patch does
// not carry are omitted entirely.
type editExampleSchema struct {
	SourceLanguage     *string `json:"source_language,omitempty"`
	NewWord            *string `json:"new_word,omitempty"`
	Content            *string `json:"content,omitempty"`
	ContentTranslation *string `json:"content_translation,omitempty"`
}

type pageMetaSchema struct {
	TotalItems int64 `json:"total_items"`
	PerPage    int64 `json:"per_page"`
	TotalPages int64 `json:"total_pages"`
	Page       int64 `json:"page"`
}

type pageLinksSchema struct {
	Self  *string `json:"self"`
	Next  *string `json:"next"`
	Prev  *string `json:"prev"`
	First *string `json:"first"`
	Last  *string `json:"last"`
}

type pageSchema struct {
	Meta  pageMetaSchema  `json:"_meta"`
	Links pageLinksSchema `json:"_links"`
	Items []exampleSchema `json:"items"`
}

func toProfile(in profileSchema) *entity.Profile {
	return &entity.Profile{
		ID:       in.ID,
		Username: in.Username,
		Email:    in.Email,
	}
}

func toExample(in exampleSchema) entity.Example {
	return entity.Example{
		ID:                 in.ID,
		SourceLanguage:     stringValue(in.SourceLanguage),
		NewWord:            in.NewWord,
		Content:            in.Content,
		ContentTranslation: stringValue(in.ContentTranslation),
	}
}

func toExamplePage(in pageSchema) *entity.ExamplePage {
	return &entity.ExamplePage{
		Meta: entity.PaginationMeta{
			TotalItems: lo.ToPtr(in.Meta.TotalItems),
			PerPage:    lo.ToPtr(in.Meta.PerPage),
			TotalPages: lo.ToPtr(in.Meta.TotalPages),
			Page:       lo.ToPtr(in.Meta.Page),
		},
		Links: entity.PaginationLinks{
			Self:  stringValue(in.Links.Self),
			Next:  stringValue(in.Links.Next),
			Prev:  stringValue(in.Links.Prev),
			First: stringValue(in.Links.First),
			Last:  stringValue(in.Links.Last),
		},
		Items: lo.Map(in.Items, func(item exampleSchema, _ int) entity.Example {
			return toExample(item)
		}),
	}
}

func fromDraft(draft entity.ExampleDraft) createExampleSchema {
	return createExampleSchema{
		SourceLanguage:     optionalString(draft.SourceLanguage),
		NewWord:            draft.NewWord,
		Content:            draft.Content,
		ContentTranslation: optionalString(draft.ContentTranslation),
	}
}

func fromPatch(patch entity.ExamplePatch) editExampleSchema {
	return editExampleSchema{
		SourceLanguage:     patch.SourceLanguage,
		NewWord:            patch.NewWord,
		Content:            patch.Content,
		ContentTranslation: patch.ContentTranslation,
	}
}

func stringValue(in *string) string {
	if in == nil {
		return ""
	}
	return *in
}

// optionalString normalizes an empty optional field to null before
// transmission.
func optionalString(in string) *string {
	if in == "" {
		return nil
	}
	return lo.ToPtr(in)
}
