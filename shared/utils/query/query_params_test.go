package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseQueryParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params := ParseQueryParams(contextWithQuery(""))

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 10, params.Limit)
		assert.Equal(t, "created_at", params.Sort.Field)
		assert.Equal(t, "desc", params.Sort.Order)
		assert.Empty(t, params.Filters)
		assert.Empty(t, params.Search)
	})

	t.Run("parses filters, sort and search", func(t *testing.T) {
		params := ParseQueryParams(contextWithQuery(
			"page=2&limit=25&search=ada&filters[status]=pending&filters[blood_type]=O%2B&sort[field]=urgency&sort[order]=asc"))

		assert.Equal(t, 2, params.Page)
		assert.Equal(t, 25, params.Limit)
		assert.Equal(t, "ada", params.Search)
		assert.Equal(t, map[string]string{"status": "pending", "blood_type": "O+"}, params.Filters)
		assert.Equal(t, "urgency", params.Sort.Field)
		assert.Equal(t, "asc", params.Sort.Order)
	})

	t.Run("clamps out-of-range page and limit", func(t *testing.T) {
		params := ParseQueryParams(contextWithQuery("page=-3&limit=5000"))

		assert.Equal(t, 1, params.Page)
		assert.Equal(t, 100, params.Limit)
	})

	t.Run("ignores empty filter values and bad sort order", func(t *testing.T) {
		params := ParseQueryParams(contextWithQuery("filters[status]=&sort[order]=sideways"))

		assert.Empty(t, params.Filters)
		assert.Equal(t, "desc", params.Sort.Order)
	})
}

func TestBuildPaginationResponse(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		resp := BuildPaginationResponse(2, 10, 35)

		assert.Equal(t, int64(35), resp.Total)
		assert.Equal(t, int64(4), resp.TotalPages)
		assert.True(t, resp.HasNext)
		assert.True(t, resp.HasPrev)
	})

	t.Run("single page", func(t *testing.T) {
		resp := BuildPaginationResponse(1, 10, 7)

		assert.Equal(t, int64(1), resp.TotalPages)
		assert.False(t, resp.HasNext)
		assert.False(t, resp.HasPrev)
	})

	t.Run("empty result", func(t *testing.T) {
		resp := BuildPaginationResponse(1, 10, 0)

		assert.Equal(t, int64(0), resp.TotalPages)
		assert.False(t, resp.HasNext)
	})
}
