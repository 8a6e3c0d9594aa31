package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserReference_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  UserReference
	}{
		{name: "number", input: `3`, want: 3},
		{name: "numeric string", input: `"3"`, want: 3},
		{name: "iri", input: `"/api/users/3"`, want: 3},
		{name: "null", input: `null`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref UserReference
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ref))
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestUserReference_UnmarshalJSONInvalid(t *testing.T) {
	inputs := []string{`"abc"`, `"/api/users/abc"`, `-1`, `0`, `1.5`, `true`,
		`"/api/movies/3"`, `"/users/3"`, `"/api/users/x/3"`, `"/api/users/03"`}
	for _, input := range inputs {
		var ref UserReference
		assert.Error(t, json.Unmarshal([]byte(input), &ref), input)
	}
}

func TestMovieReference_UnmarshalJSON(t *testing.T) {
	var ref MovieReference
	require.NoError(t, json.Unmarshal([]byte(`"/api/movies/8"`), &ref))
	assert.Equal(t, int64(8), ref.ID())

	assert.Error(t, json.Unmarshal([]byte(`"/api/users/8"`), &ref))
}

func TestNullable_Reference(t *testing.T) {
	var body MoviePatchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dune"}`), &body))
	assert.False(t, body.User.Set)
	assert.False(t, body.Date.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"user":"/api/users/2","date":"2024-01-02T00:00:00Z"}`), &body))
	assert.True(t, body.User.Valid)
	assert.Equal(t, UserReference(2), body.User.Value)
	assert.True(t, body.Date.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"user":null,"date":null}`), &body))
	assert.True(t, body.User.Set)
	assert.False(t, body.User.Valid)
	assert.Zero(t, body.User.Value)
	assert.True(t, body.Date.Set)
	assert.True(t, body.Date.Value.IsZero())
}

func TestNullable_Int(t *testing.T) {
	var body MoviePatchRequest

	require.NoError(t, json.Unmarshal([]byte(`{"title":"Dune"}`), &body))
	assert.False(t, body.Stars.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"stars":null}`), &body))
	assert.True(t, body.Stars.Set)
	assert.Nil(t, body.Stars.Ptr())

	body = MoviePatchRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"stars":4}`), &body))
	assert.True(t, body.Stars.Set)
	assert.Equal(t, 4, *body.Stars.Ptr())
}

func TestPaginatedRequest(t *testing.T) {
	p := PaginatedRequest{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())

	p = PaginatedRequest{Page: 0, PerPage: 0}
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 20, p.Limit())

	p = PaginatedRequest{Page: 1 << 62, PerPage: 20}
	assert.Positive(t, p.Offset())
}
