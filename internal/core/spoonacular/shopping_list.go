package spoonacular

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultShoppingListPath 預設購物清單檔名
const DefaultShoppingListPath = "Shopping list.txt"

// ShoppingListWriter 以附加模式寫入購物清單檔案
type ShoppingListWriter struct {
	path string
	mu   sync.Mutex
}

// NewShoppingListWriter 創建購物清單寫入器
func NewShoppingListWriter(path string) *ShoppingListWriter {
	if path == "" {
		path = DefaultShoppingListPath
	}
	return &ShoppingListWriter{path: path}
}

// Path 檔案路徑
func (w *ShoppingListWriter) Path() string {
	return w.path
}

// FormatShoppingList 產生單一食譜的購物清單區段
func FormatShoppingList(id ID, entries []ShoppingListEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*******Shopping list for recipe %s*******\n", id))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s: %s %s\n", e.Name, e.Amount, e.Unit))
	}
	sb.WriteString("\n")
	return sb.String()
}

// AppendShoppingList 將購物清單附加到檔案末尾，同一寫入器的呼叫會互斥
func (w *ShoppingListWriter) AppendShoppingList(id ID, entries []ShoppingListEntry) error {
	section := FormatShoppingList(id, entries)

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return common.NewPersistenceError("failed to open shopping list file", err)
	}

	if _, err := f.WriteString(section); err != nil {
		f.Close()
		return common.NewPersistenceError("failed to write shopping list", err)
	}
	if err := f.Close(); err != nil {
		return common.NewPersistenceError("failed to close shopping list file", err)
	}

	common.LogInfo("購物清單已儲存",
		zap.String("recipe_id", string(id)),
		zap.Int("items", len(entries)),
		zap.String("path", w.path),
	)
	return nil
}
