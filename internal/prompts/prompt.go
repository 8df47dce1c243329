// Package prompts implements the persistent record store for the prompt library.
// It owns the Prompt record type and a Store that maps it onto a single
// database table supporting full scans and id-keyed mutations.
package prompts

import (
	"strings"
	"time"
)

// Prompt is a stored prompt record.
type Prompt struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PromptText  string    `json:"promptText"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
}

// Fields carries the complete set of editable prompt values.
// Updates replace every field; there is no partial update.
type Fields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PromptText  string   `json:"promptText"`
	Tags        []string `json:"tags"`
}

// Fields returns the editable values of p.
func (p Prompt) Fields() Fields {
	return Fields{
		Title:       p.Title,
		Description: p.Description,
		PromptText:  p.PromptText,
		Tags:        p.Tags,
	}
}

// Validate applies the editor rules: title, description, and prompt text must be non-blank.
// Tags are not checked and may be empty.
func (f Fields) Validate() error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return invalid("title")
	case strings.TrimSpace(f.Description) == "":
		return invalid("description")
	case strings.TrimSpace(f.PromptText) == "":
		return invalid("promptText")
	}
	return nil
}
