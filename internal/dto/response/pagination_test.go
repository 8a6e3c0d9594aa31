package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse(t *testing.T) {
	page := NewPaginatedResponse([]int{1, 2, 3}, 2, 20, 43)

	assert.Equal(t, PaginationMeta{Total: 43, Page: 2, PerPage: 20, TotalPages: 3}, page.Pagination)
}

func TestNewPaginatedResponseEmpty(t *testing.T) {
	page := NewPaginatedResponse[any](nil, 1, 20, 0)

	body, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pagination":{"total":0,"page":1,"per_page":20,"total_pages":0}}`, string(body))
}
