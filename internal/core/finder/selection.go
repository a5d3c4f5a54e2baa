package finder

import (
	"fmt"
	"sort"
	"time"

	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/pkg/common"
)

// RecipeRef 儲存對話框中的一筆食譜
type RecipeRef struct {
	ID    spoonacular.ID `json:"id"`
	Title string         `json:"title"`
}

// Label 列表顯示文字
func (r RecipeRef) Label() string {
	return fmt.Sprintf("%s - %s", r.ID, r.Title)
}

// Selection 購物清單對話框的上下文：上一次搜尋回傳的完整食譜列表
type Selection struct {
	ID        string      `json:"id"`
	Recipes   []RecipeRef `json:"recipes"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewSelection 由搜尋結果建立選擇上下文
func NewSelection(recipes []spoonacular.Recipe) *Selection {
	refs := make([]RecipeRef, 0, len(recipes))
	for i := range recipes {
		refs = append(refs, RecipeRef{
			ID:    recipes[i].ID,
			Title: recipes[i].DisplayTitle(),
		})
	}
	return &Selection{
		ID:        common.GenerateUUID(),
		Recipes:   refs,
		CreatedAt: time.Now(),
	}
}

// Labels 所有食譜的顯示文字
func (s *Selection) Labels() []string {
	labels := make([]string, len(s.Recipes))
	for i, r := range s.Recipes {
		labels[i] = r.Label()
	}
	return labels
}

// IndicesOf 將食譜識別碼轉為列表索引
func (s *Selection) IndicesOf(ids []string) ([]int, error) {
	indices := make([]int, 0, len(ids))
	for _, id := range ids {
		found := -1
		for i, r := range s.Recipes {
			if string(r.ID) == id {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, common.NewValidationError(fmt.Sprintf("Recipe %s is not part of this selection.", id))
		}
		indices = append(indices, found)
	}
	return indices, nil
}

// normalizeIndices 去除重複並依列表順序排列
func (s *Selection) normalizeIndices(indices []int) ([]int, error) {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(s.Recipes) {
			return nil, common.NewValidationError(fmt.Sprintf("Invalid recipe selection: %d.", i+1))
		}
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out, nil
}
