package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name                  string
		requested, size       int
		total                 int64
		number, offset, pages int
	}{
		{"first page", 1, 10, 25, 1, 0, 3},
		{"middle page", 2, 10, 25, 2, 10, 3},
		{"past the end clamps", 9, 10, 25, 3, 20, 3},
		{"zero clamps to first", 0, 10, 25, 1, 0, 3},
		{"negative clamps to first", -2, 10, 25, 1, 0, 3},
		{"empty result", 3, 10, 0, 1, 0, 1},
		{"exact multiple", 2, 10, 20, 2, 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, offset, pages := PageBounds(tt.requested, tt.size, tt.total)
			assert.Equal(t, tt.number, number)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.pages, pages)
		})
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage([]string{"a"}, 2, 1, 3, 3)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrevious)

	empty := NewPage[string](nil, 1, 10, 0, 1)
	assert.NotNil(t, empty.Items)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrevious)
}

func TestPrincipal(t *testing.T) {
	assert.False(t, Anonymous.IsAuthenticated())
	assert.True(t, Principal{UserID: "u1"}.IsAuthenticated())
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewValidationError("title", "required")))
	assert.True(t, IsValidationError(ErrInvalidCategory))
	assert.False(t, IsValidationError(ErrNotFound))
}
