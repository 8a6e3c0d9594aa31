package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovie_AddComment(t *testing.T) {
	movie := &Movie{Base: Base{ID: 1}, Title: "Inception"}
	comment := &Comment{Content: "Great film"}

	movie.AddComment(comment)

	assert.Equal(t, []*Comment{comment}, movie.Comments())
	assert.Same(t, movie, comment.Movie())
	assert.Equal(t, int64(1), comment.MovieID())
}

func TestMovie_AddCommentTwice(t *testing.T) {
	movie := &Movie{}
	comment := &Comment{}

	movie.AddComment(comment).AddComment(comment)

	assert.Len(t, movie.Comments(), 1)
	assert.Same(t, movie, comment.Movie())
}

func TestMovie_AddNilComment(t *testing.T) {
	movie := &Movie{}

	movie.AddComment(nil)

	assert.Empty(t, movie.Comments())
}

func TestMovie_RemoveComment(t *testing.T) {
	movie := &Movie{}
	first := &Comment{Content: "first"}
	second := &Comment{Content: "second"}
	movie.AddComment(first).AddComment(second)

	movie.RemoveComment(first)

	assert.Equal(t, []*Comment{second}, movie.Comments())
	assert.Nil(t, first.Movie())
	assert.Same(t, movie, second.Movie())
}

func TestMovie_RemoveCommentNotInCollection(t *testing.T) {
	owner := &Movie{Base: Base{ID: 1}}
	other := &Movie{Base: Base{ID: 2}}
	comment := &Comment{}
	owner.AddComment(comment)

	other.RemoveComment(comment)

	assert.Same(t, owner, comment.Movie())
	assert.True(t, owner.HasComment(comment))
}

func TestMovie_RemoveAfterReassignment(t *testing.T) {
	oldMovie := &Movie{Base: Base{ID: 1}}
	newMovie := &Movie{Base: Base{ID: 2}}
	comment := &Comment{}
	oldMovie.AddComment(comment)

	newMovie.AddComment(comment)
	oldMovie.RemoveComment(comment)

	assert.False(t, oldMovie.HasComment(comment))
	assert.True(t, newMovie.HasComment(comment))
	assert.Same(t, newMovie, comment.Movie())
}

func TestMovie_CommentsReturnsCopy(t *testing.T) {
	movie := &Movie{}
	comment := &Comment{}
	movie.AddComment(comment)

	snapshot := movie.Comments()
	snapshot[0] = nil

	assert.Same(t, comment, movie.Comments()[0])
}

func TestMovie_UserID(t *testing.T) {
	movie := &Movie{}
	assert.Equal(t, int64(0), movie.UserID())

	movie.User = &User{Base: Base{ID: 7}}
	assert.Equal(t, int64(7), movie.UserID())
}
