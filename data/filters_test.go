package data

import (
	"testing"

	"athenaeum/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestFiltersSort(t *testing.T) {
	f := Filters{Sort: "-title", SortSafeList: []string{"title", "-title"}}
	assert.Equal(t, "title", f.SortColumn())
	assert.Equal(t, "DESC", f.SortDirection())

	f.Sort = "title"
	assert.Equal(t, "ASC", f.SortDirection())
}

func TestValidateFilters(t *testing.T) {
	safeList := []string{"title", "-title"}

	t.Run("accepts sane values", func(t *testing.T) {
		v := validator.New()
		ValidateFilters(v, Filters{Page: 1, PageSize: 10, Sort: "title", SortSafeList: safeList})
		assert.True(t, v.Valid())
	})

	t.Run("rejects an oversized page size", func(t *testing.T) {
		v := validator.New()
		ValidateFilters(v, Filters{Page: 1, PageSize: 500, Sort: "title", SortSafeList: safeList})
		assert.False(t, v.Valid())
	})

	t.Run("rejects a sort value outside the safelist", func(t *testing.T) {
		v := validator.New()
		ValidateFilters(v, Filters{Page: 1, PageSize: 10, Sort: "isbn", SortSafeList: safeList})
		assert.False(t, v.Valid())
	})
}

func TestCalculateMetadata(t *testing.T) {
	metadata := CalculateMetadata(95, 2, 10)
	assert.Equal(t, 2, metadata.CurrentPage)
	assert.Equal(t, 1, metadata.FirstPage)
	assert.Equal(t, 10, metadata.LastPage)
	assert.Equal(t, 95, metadata.TotalRecords)

	assert.Equal(t, Metadata{}, CalculateMetadata(0, 1, 10))
}
