// Package schema holds the field tables of the API resources: which
// constraints guard each writable field and which read views expose it.
package schema

import (
	"fmt"
	"slices"
)

// Group names a read view.
type Group string

const (
	MoviesRead   Group = "movies_read"
	CommentsRead Group = "comments_read"
	UsersRead    Group = "users_read"
)

var allGroups = []Group{MoviesRead, CommentsRead, UsersRead}

// Rule is a validator tag paired with the message reported when it fails.
type Rule struct {
	Tag     string
	Message string
}

// Field describes one property of a resource.
type Field[T any] struct {
	Name   string
	Groups []Group
	Rules  []Rule
	// Many marks a to-many collection.
	Many  bool
	Value func(*T) any
}

func (f Field[T]) In(g Group) bool {
	return slices.Contains(f.Groups, g)
}

// Resource is the ordered field table of an entity type.
type Resource[T any] struct {
	Name   string
	ID     func(*T) int64
	Fields []Field[T]
}

// IRI returns the resource path used when a relation is not embedded.
func (r *Resource[T]) IRI(id int64) string {
	return fmt.Sprintf("/api/%s/%d", r.Name, id)
}

// FieldNames lists the fields visible in g, in declaration order.
func (r *Resource[T]) FieldNames(g Group) []string {
	var names []string
	for _, f := range r.Fields {
		if f.In(g) {
			names = append(names, f.Name)
		}
	}
	return names
}

func lengthRules(label string, min, max int) []Rule {
	return []Rule{
		{Tag: "notblank", Message: fmt.Sprintf("The %s cannot be blank", label)},
		{Tag: fmt.Sprintf("min=%d", min), Message: fmt.Sprintf("The %s must be at least %d characters long", label, min)},
		{Tag: fmt.Sprintf("max=%d", max), Message: fmt.Sprintf("The %s cannot be longer than %d characters", label, max)},
	}
}

func requiredRule(message string) []Rule {
	return []Rule{{Tag: "required", Message: message}}
}
