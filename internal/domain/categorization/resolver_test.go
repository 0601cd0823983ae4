package categorization

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCategories() (groceries, dining Category) {
	groceries = Category{ID: uuid.New(), Name: "Groceries"}
	dining = Category{ID: uuid.New(), Name: "Dining"}
	return
}

func TestResolver_ExactAndCaseInsensitive(t *testing.T) {
	groceries, dining := testCategories()
	r := NewResolver([]Category{groceries, dining})

	got := r.Resolve("Groceries")
	require.NotNil(t, got)
	assert.Equal(t, groceries.ID, *got)

	got = r.Resolve("dining")
	require.NotNil(t, got)
	assert.Equal(t, dining.ID, *got)
}

func TestResolver_FuzzyAbsorbsSmallDrift(t *testing.T) {
	groceries, _ := testCategories()
	r := NewResolver([]Category{groceries})

	got := r.Resolve("Grocerie")
	require.NotNil(t, got)
	assert.Equal(t, groceries.ID, *got)
}

func TestResolver_MissReturnsNil(t *testing.T) {
	groceries, dining := testCategories()
	r := NewResolver([]Category{groceries, dining})

	assert.Nil(t, r.Resolve("Subscriptions"))
	assert.Nil(t, r.Resolve(""))
}

func TestResolver_Reload(t *testing.T) {
	groceries, dining := testCategories()
	r := NewResolver([]Category{groceries})

	require.Nil(t, r.Resolve("Dining"))
	r.Reload([]Category{dining})
	assert.Nil(t, r.Resolve("Groceries"))
	assert.NotNil(t, r.Resolve("Dining"))
}

func TestResolver_EmptySet(t *testing.T) {
	r := NewResolver(nil)
	assert.Nil(t, r.Resolve("Groceries"))
}
