package spoonacular

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"recipe-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatShoppingList(t *testing.T) {
	got := FormatShoppingList("716429", []ShoppingListEntry{
		{Name: "butter", Amount: json.Number("1.0"), Unit: "Tbsp"},
		{Name: "cauliflower florets", Amount: json.Number("473.176"), Unit: "ml"},
	})

	want := "*******Shopping list for recipe 716429*******\n" +
		"butter: 1.0 Tbsp\n" +
		"cauliflower florets: 473.176 ml\n" +
		"\n"
	assert.Equal(t, want, got)
}

func TestAppendShoppingList_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultShoppingListPath)
	w := NewShoppingListWriter(path)

	entries := []ShoppingListEntry{
		{Name: "spaghetti", Amount: json.Number("226.796"), Unit: "g"},
		{Name: "garlic", Amount: json.Number("3"), Unit: "cloves"},
		{Name: "olive oil", Amount: json.Number("2.0"), Unit: "Tbsps"},
	}
	require.NoError(t, w.AppendShoppingList("1", entries))
	require.NoError(t, w.AppendShoppingList("2", entries[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	sections := strings.Split(strings.TrimSuffix(string(data), "\n\n"), "\n\n")
	require.Len(t, sections, 2)

	lines := strings.Split(sections[0], "\n")
	require.Len(t, lines, 1+len(entries))
	assert.Equal(t, "*******Shopping list for recipe 1*******", lines[0])
	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("%s: %s %s", e.Name, e.Amount, e.Unit), lines[i+1])
	}
	assert.Equal(t, "*******Shopping list for recipe 2*******\nspaghetti: 226.796 g", sections[1])
}

func TestAppendShoppingList_DefaultPath(t *testing.T) {
	assert.Equal(t, "Shopping list.txt", NewShoppingListWriter("").Path())
}

func TestAppendShoppingList_OpenFailure(t *testing.T) {
	w := NewShoppingListWriter(filepath.Join(t.TempDir(), "missing", "dir", "list.txt"))

	err := w.AppendShoppingList("1", []ShoppingListEntry{{Name: "salt", Amount: "1", Unit: "g"}})
	require.Error(t, err)
	assert.Equal(t, common.KindPersistence, common.KindOf(err))
}

func TestAppendShoppingList_ConcurrentSectionsDoNotInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	w := NewShoppingListWriter(path)

	const writers = 20
	entries := make([]ShoppingListEntry, 50)
	for i := range entries {
		entries[i] = ShoppingListEntry{Name: fmt.Sprintf("item-%d", i), Amount: "1", Unit: "g"}
	}

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, w.AppendShoppingList(ID(fmt.Sprint(id)), entries))
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	sections := strings.Split(strings.TrimSuffix(string(data), "\n\n"), "\n\n")
	require.Len(t, sections, writers)
	for _, section := range sections {
		lines := strings.Split(section, "\n")
		require.Len(t, lines, 1+len(entries))
		assert.True(t, strings.HasPrefix(lines[0], "*******Shopping list for recipe "))
		for i, line := range lines[1:] {
			assert.Equal(t, fmt.Sprintf("item-%d: 1 g", i), line)
		}
	}
}
