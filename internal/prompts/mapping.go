package prompts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/JaimeStill/organizer/pkg/query"
	"github.com/JaimeStill/organizer/pkg/repository"
)

var projection = query.
	NewProjectionMap("", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("description", "Description").
	Project("prompt_text", "PromptText").
	Project("tags", "Tags").
	Project("created_at", "CreatedAt").
	Project("modified_at", "ModifiedAt")

// Store ids grow with insertion, so id order is insertion order.
var defaultSort = query.SortField{
	Field: "ID",
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func encodeTime(t time.Time) int64 {
	return t.UnixNano()
}

func decodeTime(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var (
		p          Prompt
		tags       string
		createdAt  int64
		modifiedAt int64
	)

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.PromptText,
		&tags,
		&createdAt,
		&modifiedAt,
	)
	if err != nil {
		return p, err
	}

	if p.Tags, err = decodeTags(tags); err != nil {
		return p, err
	}
	p.CreatedAt = decodeTime(createdAt)
	p.ModifiedAt = decodeTime(modifiedAt)

	return p, nil
}
