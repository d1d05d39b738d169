package repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crednest/server/internal/assistant/model"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults pass through", 1, 20, 1, 20},
		{"zero page becomes first", 0, 20, 1, 20},
		{"negative page becomes first", -3, 20, 1, 20},
		{"zero per page gets default", 2, 0, 2, 20},
		{"per page capped at 100", 1, 500, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := normalizePage(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestPaginate(t *testing.T) {
	p := paginate(2, 10, 35)
	assert.Equal(t, model.Pagination{
		Page:       2,
		PerPage:    10,
		Total:      35,
		TotalPages: 4,
		HasPrev:    true,
		HasNext:    true,
	}, p)

	last := paginate(4, 10, 35)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)

	empty := paginate(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasPrev)
	assert.False(t, empty.HasNext)
}

func TestReverse(t *testing.T) {
	turns := []*model.Turn{{ID: 1}, {ID: 2}, {ID: 3}}
	reverse(turns)
	assert.Equal(t, int64(3), turns[0].ID)
	assert.Equal(t, int64(1), turns[2].ID)

	single := []*model.Turn{{ID: 7}}
	reverse(single)
	assert.Equal(t, int64(7), single[0].ID)
}

func TestSessionTitle(t *testing.T) {
	assert.Equal(t, "New Conversation", sessionTitle(""))
	assert.Equal(t, "New Conversation", sessionTitle("   \t\n"))
	assert.Equal(t, "What is an EMI?", sessionTitle("  What   is an\nEMI?  "))

	long := sessionTitle(strings.Repeat("a", 60))
	assert.Len(t, []rune(long), 50)
	assert.True(t, strings.HasSuffix(long, "..."))

	// Truncation counts runes, not bytes.
	assert.Equal(t, strings.Repeat("₹", 47)+"...", sessionTitle(strings.Repeat("₹", 60)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	// Runes, not bytes.
	assert.Equal(t, "héll", truncate("héllo", 4))
}
