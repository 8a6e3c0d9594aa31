package schema

import (
	"slices"

	"movie-review/internal/data/entity"
)

// Normalize renders v, an entity pointer or a slice of them, under the
// read view g. Relations are embedded with the same view, except that
// collections stop one level below the root and a relation back to a
// type already being rendered becomes its IRI.
func Normalize(g Group, v any) any {
	return normalizeValue(g, v, nil)
}

func normalizeValue(g Group, v any, path []string) any {
	switch val := v.(type) {
	case *entity.Movie:
		return normalize(Movies, val, g, path)
	case *entity.Comment:
		return normalize(Comments, val, g, path)
	case *entity.User:
		return normalize(Users, val, g, path)
	case []*entity.Movie:
		return normalizeList(g, val, path)
	case []*entity.Comment:
		return normalizeList(g, val, path)
	case []*entity.User:
		return normalizeList(g, val, path)
	default:
		return v
	}
}

func normalizeList[E any](g Group, items []E, path []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeValue(g, item, path))
	}
	return out
}

func normalize[T any](r *Resource[T], obj *T, g Group, path []string) any {
	if obj == nil {
		return nil
	}
	if slices.Contains(path, r.Name) {
		return r.IRI(r.ID(obj))
	}

	deep := len(path) > 1
	path = append(slices.Clip(path), r.Name)

	out := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		if !f.In(g) || (f.Many && deep) {
			continue
		}
		out[f.Name] = normalizeValue(g, f.Value(obj), path)
	}

	return out
}

// NormalizeEach renders every item of a page under g.
func NormalizeEach[E any](g Group, items []E) []any {
	return normalizeList(g, items, nil)
}
