package pagination

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		page, limit string
		want        Page
	}{
		{"missing", "", "", Page{1, 10}},
		{"non numeric", "abc", "x1", Page{1, 10}},
		{"zero page", "0", "10", Page{1, 10}},
		{"negative page", "-4", "10", Page{1, 10}},
		{"zero limit", "2", "0", Page{2, 1}},
		{"negative limit", "2", "-7", Page{2, 1}},
		{"limit over max", "3", "1000", Page{3, 100}},
		{"in range", "5", "25", Page{5, 25}},
		{"padded", " 2 ", " 20 ", Page{2, 20}},
		{"float", "1.5", "10.0", Page{1, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.page, tt.limit))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for page := 1; page <= 50; page++ {
		for limit := 1; limit <= MaxLimit; limit++ {
			p := Normalize(strconv.Itoa(page), strconv.Itoa(limit))
			again := Normalize(strconv.Itoa(p.Page), strconv.Itoa(p.Limit))
			if !assert.Equal(t, p, again) {
				return
			}
		}
	}
}

func TestOffsetAndTotalPages(t *testing.T) {
	assert.Equal(t, 0, Page{1, 10}.Offset())
	assert.Equal(t, 10, Page{2, 10}.Offset())
	assert.Equal(t, 40, Page{5, 10}.Offset())

	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(15, 10))
	assert.Equal(t, int64(15), TotalPages(15, 1))
}

func TestNewMeta(t *testing.T) {
	m := NewMeta(Page{2, 10}, 15)
	assert.Equal(t, Meta{Page: 2, Limit: 10, TotalItems: 15, TotalPages: 2, HasNextPage: false, HasPrevPage: true}, m)

	m = NewMeta(Page{1, 10}, 15)
	assert.True(t, m.HasNextPage)
	assert.False(t, m.HasPrevPage)

	m = NewMeta(Page{1, 10}, 0)
	assert.Equal(t, int64(0), m.TotalPages)
	assert.False(t, m.HasNextPage)
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/videos?page=3&limit=500", nil)

	assert.Equal(t, Page{3, 100}, FromQuery(c))
}

func TestOf(t *testing.T) {
	assert.Equal(t, Page{1, 100}, Of(0, 101))
}
