package postgres

import (
	"fmt"
	"strings"
)

const recipeColumns = `
	r.id, r.user_id, r.title, r.description, r.ingredients, r.instructions,
	r.category, r.cooking_time, r.difficulty, r.image_url, r.created_at, r.updated_at,
	p.full_name AS author_full_name,
	p.username AS author_username,
	(SELECT COUNT(*) FROM favorites fc WHERE fc.recipe_id = r.id) AS favorites_count`

// whereBuilder collects AND-ed conditions with positional arguments. Each
// condition carries a single %d for its placeholder index.
type whereBuilder struct {
	parts []string
	args  []any
}

func newWhere() *whereBuilder {
	return &whereBuilder{}
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.parts = append(w.parts, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) search(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	idx := len(w.args)
	w.parts = append(w.parts, fmt.Sprintf("(r.title ILIKE $%d OR r.description ILIKE $%d)", idx, idx))
}

func (w *whereBuilder) category(category string) {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return
	}
	w.add("r.category = $%d", category)
}

func (w *whereBuilder) sql() string {
	if len(w.parts) == 0 {
		return "TRUE"
	}
	return strings.Join(w.parts, " AND ")
}

func escapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
