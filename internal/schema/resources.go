package schema

import (
	"movie-review/internal/data/entity"
)

// Movies is the movie resource.
var Movies = &Resource[entity.Movie]{
	Name: "movies",
	ID:   func(m *entity.Movie) int64 { return m.ID },
	Fields: []Field[entity.Movie]{
		{
			Name:   "id",
			Groups: allGroups,
			Value:  func(m *entity.Movie) any { return m.ID },
		},
		{
			Name:   "title",
			Groups: allGroups,
			Rules:  lengthRules("title", 3, 50),
			Value:  func(m *entity.Movie) any { return m.Title },
		},
		{
			Name:   "description",
			Groups: allGroups,
			Rules:  lengthRules("description", 3, 10000),
			Value:  func(m *entity.Movie) any { return m.Description },
		},
		{
			Name:   "image",
			Groups: allGroups,
			Rules:  lengthRules("image", 3, 255),
			Value:  func(m *entity.Movie) any { return m.Image },
		},
		{
			Name:   "watchLink",
			Groups: allGroups,
			Rules:  lengthRules("watch link", 10, 255),
			Value:  func(m *entity.Movie) any { return m.WatchLink },
		},
		{
			Name:   "stars",
			Groups: allGroups,
			Value:  func(m *entity.Movie) any { return m.Stars },
		},
		{
			Name:   "comments",
			Groups: []Group{MoviesRead, UsersRead},
			Many:   true,
			Value:  func(m *entity.Movie) any { return m.Comments() },
		},
		{
			Name:   "date",
			Groups: allGroups,
			Rules:  requiredRule("The date is required"),
			Value:  func(m *entity.Movie) any { return m.Date },
		},
		{
			Name:   "user",
			Groups: []Group{MoviesRead, CommentsRead},
			Rules:  requiredRule("A movie must belong to a user"),
			Value:  func(m *entity.Movie) any { return m.User },
		},
	},
}

// Comments is the comment resource. Its relation fields keep the
// user_id/movie_id wire names clients already rely on.
var Comments = &Resource[entity.Comment]{
	Name: "comments",
	ID:   func(c *entity.Comment) int64 { return c.ID },
	Fields: []Field[entity.Comment]{
		{
			Name:   "id",
			Groups: allGroups,
			Value:  func(c *entity.Comment) any { return c.ID },
		},
		{
			Name:   "user_id",
			Groups: []Group{CommentsRead, MoviesRead},
			Rules:  requiredRule("A comment must belong to a user"),
			Value:  func(c *entity.Comment) any { return c.User },
		},
		{
			Name:   "movie_id",
			Groups: []Group{CommentsRead, UsersRead},
			Rules:  requiredRule("A comment must belong to a movie"),
			Value:  func(c *entity.Comment) any { return c.Movie() },
		},
		{
			Name:   "content",
			Groups: allGroups,
			Rules:  lengthRules("content", 3, 10000),
			Value:  func(c *entity.Comment) any { return c.Content },
		},
		{
			Name:   "date",
			Groups: allGroups,
			Rules:  requiredRule("The date is required"),
			Value:  func(c *entity.Comment) any { return c.Date },
		},
	},
}

// Users is the user resource. The password hash never leaves the server.
var Users = &Resource[entity.User]{
	Name: "users",
	ID:   func(u *entity.User) int64 { return u.ID },
	Fields: []Field[entity.User]{
		{
			Name:   "id",
			Groups: allGroups,
			Value:  func(u *entity.User) any { return u.ID },
		},
		{
			Name:   "username",
			Groups: allGroups,
			Rules:  lengthRules("username", 3, 50),
			Value:  func(u *entity.User) any { return u.Username },
		},
		{
			Name:   "email",
			Groups: []Group{UsersRead},
			Rules: []Rule{
				{Tag: "notblank", Message: "The email cannot be blank"},
				{Tag: "email", Message: "The email is not a valid email address"},
			},
			Value: func(u *entity.User) any { return u.Email },
		},
		{
			Name:   "movies",
			Groups: []Group{UsersRead},
			Many:   true,
			Value:  func(u *entity.User) any { return u.Movies },
		},
		{
			Name:   "comments",
			Groups: []Group{UsersRead},
			Many:   true,
			Value:  func(u *entity.User) any { return u.Comments },
		},
	},
}
