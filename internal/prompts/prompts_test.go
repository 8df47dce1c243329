package prompts_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JaimeStill/organizer/internal/prompts"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"invalid", prompts.ErrInvalid, http.StatusBadRequest},
		{"storage", prompts.ErrStorage, http.StatusInternalServerError},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("delete: %w", prompts.ErrNotFound), http.StatusNotFound},
		{"wrapped invalid", fmt.Errorf("decode: %w", prompts.ErrInvalid), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFieldsValidate(t *testing.T) {
	valid := prompts.Fields{
		Title:       "Summarize",
		Description: "Condense text",
		PromptText:  "Summarize the following:",
	}

	t.Run("valid without tags", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Errorf("Validate() error: %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*prompts.Fields)
	}{
		{"empty title", func(f *prompts.Fields) { f.Title = "" }},
		{"blank title", func(f *prompts.Fields) { f.Title = "  \t" }},
		{"empty description", func(f *prompts.Fields) { f.Description = "" }},
		{"empty prompt text", func(f *prompts.Fields) { f.PromptText = "\n" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			if err := f.Validate(); !errors.Is(err, prompts.ErrInvalid) {
				t.Errorf("Validate() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestPromptFields(t *testing.T) {
	p := prompts.Prompt{
		ID:          7,
		Title:       "T",
		Description: "D",
		PromptText:  "P",
		Tags:        []string{"x"},
	}

	f := p.Fields()
	if f.Title != "T" || f.Description != "D" || f.PromptText != "P" || len(f.Tags) != 1 {
		t.Errorf("Fields() = %+v", f)
	}
}
