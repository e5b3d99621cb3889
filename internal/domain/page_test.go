package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/wanderplan/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams(t *testing.T) {
	cases := map[string]struct {
		page, limit *int
		want        domain.PaginationParams
	}{
		"defaults":      {nil, nil, domain.PaginationParams{Page: 1, Limit: 20}},
		"explicit":      {intPtr(3), intPtr(5), domain.PaginationParams{Page: 3, Limit: 5}},
		"limit capped":  {nil, intPtr(1000), domain.PaginationParams{Page: 1, Limit: 100}},
		"zero ignored":  {intPtr(0), intPtr(0), domain.PaginationParams{Page: 1, Limit: 20}},
		"negative page": {intPtr(-2), nil, domain.PaginationParams{Page: 1, Limit: 20}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.NewPaginationParams(tc.page, tc.limit))
		})
	}
}

func TestPaginate(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, domain.Paginate(s, domain.PaginationParams{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, domain.Paginate(s, domain.PaginationParams{Page: 3, Limit: 2}))

	past := domain.Paginate(s, domain.PaginationParams{Page: 9, Limit: 2})
	assert.NotNil(t, past)
	assert.Empty(t, past)

	page := domain.Paginate(s, domain.PaginationParams{Page: 1, Limit: 2})
	page[0] = 42
	assert.Equal(t, 1, s[0], "the page must not alias the source")
}
