package wire

import (
	"movie-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	commentHandler *adaptor.CommentHandler,
) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)
		r.Post("/", movieHandler.CreateMovie)

		r.Get("/{id}", movieHandler.GetMovieByID)
		r.Put("/{id}", movieHandler.ReplaceMovie)
		r.Patch("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)

		// comments_read page of one movie's comments
		r.Get("/{id}/comments", commentHandler.GetMovieComments)
	})
}
