package organizer

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/JaimeStill/organizer/internal/prompts"
)

// Compute derives a view from records: it keeps records matching q.Search and
// carrying every tag in q.Tags, then orders them by q.SortBy and q.SortOrder.
//
// Search is a case-insensitive substring match against title, description,
// and prompt text. Titles are compared with the collation rules of locale.
// The sort is stable, so records with equal keys keep their order in records
// for both directions; descending order swaps comparator operands rather than
// reversing the result.
//
// Compute does not modify records and the returned prompts share no memory with it.
func Compute(records []prompts.Prompt, q Query, locale language.Tag) []prompts.Prompt {
	q = q.Normalize()
	match := matcher(q.Search)

	view := make([]prompts.Prompt, 0, len(records))
	for _, p := range records {
		if match(p) && hasTags(p, q.Tags) {
			view = append(view, clone(p))
		}
	}

	cmp := comparator(q.SortBy, locale)
	if q.SortOrder == SortDesc {
		asc := cmp
		cmp = func(a, b prompts.Prompt) int { return asc(b, a) }
	}

	slices.SortStableFunc(view, cmp)
	return view
}

// DistinctTags returns every tag used across records in order of first appearance.
func DistinctTags(records []prompts.Prompt) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)

	for _, p := range records {
		for _, tag := range p.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return tags
}

func matcher(search string) func(prompts.Prompt) bool {
	if search == "" {
		return func(prompts.Prompt) bool { return true }
	}

	fold := cases.Fold()
	needle := fold.String(search)

	return func(p prompts.Prompt) bool {
		return strings.Contains(fold.String(p.Title), needle) ||
			strings.Contains(fold.String(p.Description), needle) ||
			strings.Contains(fold.String(p.PromptText), needle)
	}
}

func hasTags(p prompts.Prompt, required []string) bool {
	for _, tag := range required {
		if !slices.Contains(p.Tags, tag) {
			return false
		}
	}
	return true
}

func comparator(by SortBy, locale language.Tag) func(a, b prompts.Prompt) int {
	if by == SortByCreatedAt {
		return func(a, b prompts.Prompt) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	col := collate.New(locale)
	return func(a, b prompts.Prompt) int {
		return col.CompareString(a.Title, b.Title)
	}
}

func clone(p prompts.Prompt) prompts.Prompt {
	p.Tags = slices.Clone(p.Tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}
