package finder

import (
	"context"
	"fmt"

	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// MsgSelectRecipe 儲存對話框未選擇任何食譜
const MsgSelectRecipe = "Please select at least one recipe."

// RecipeAPI 遠端食譜服務
type RecipeAPI interface {
	SearchRecipes(ctx context.Context, q spoonacular.SearchQuery) (*spoonacular.SearchResult, error)
	FetchIngredientWidget(ctx context.Context, id spoonacular.ID) ([]spoonacular.ShoppingListEntry, error)
}

// ShoppingListSink 購物清單寫入目標
type ShoppingListSink interface {
	AppendShoppingList(id spoonacular.ID, entries []spoonacular.ShoppingListEntry) error
	Path() string
}

// SearchOutcome 一次搜尋的完整輸出
type SearchOutcome struct {
	Text         string     `json:"text"`
	TotalResults int        `json:"total_results"`
	Selection    *Selection `json:"selection,omitempty"`
}

// SaveReport 儲存購物清單的結果
type SaveReport struct {
	Saved    int      `json:"saved"`
	Warnings []string `json:"warnings"`
	Message  string   `json:"message,omitempty"`
}

// Controller 表單互動控制器
type Controller struct {
	api  RecipeAPI
	sink ShoppingListSink
}

// NewController 創建互動控制器
func NewController(api RecipeAPI, sink ShoppingListSink) *Controller {
	return &Controller{
		api:  api,
		sink: sink,
	}
}

// Search 驗證輸入、搜尋並產生顯示文字；失敗時不回傳任何部分輸出
func (c *Controller) Search(ctx context.Context, in FormInput) (*SearchOutcome, error) {
	criteria, err := ParseCriteria(in)
	if err != nil {
		common.LogInfo("搜尋條件驗證失敗", zap.String("reason", err.Error()))
		return nil, err
	}

	result, err := c.api.SearchRecipes(ctx, criteria.Query())
	if err != nil {
		return nil, err
	}

	outcome := &SearchOutcome{
		Text:         RenderResults(result),
		TotalResults: result.TotalResults,
	}
	if result.TotalResults > 0 && len(result.Results) > 0 {
		outcome.Selection = NewSelection(result.Results)
	}

	common.LogInfo("搜尋完成",
		zap.Int("results", len(result.Results)),
		zap.Int("total_results", result.TotalResults),
	)
	return outcome, nil
}

// SaveShoppingLists 依序為選取的食譜取得食材並寫入購物清單，單一食譜失敗不影響其他食譜
func (c *Controller) SaveShoppingLists(ctx context.Context, sel *Selection, indices []int) (*SaveReport, error) {
	if sel == nil || len(indices) == 0 {
		return nil, common.NewValidationError(MsgSelectRecipe)
	}
	indices, err := sel.normalizeIndices(indices)
	if err != nil {
		return nil, err
	}

	report := &SaveReport{Warnings: []string{}}
	for _, i := range indices {
		id := sel.Recipes[i].ID
		if warning := c.saveOne(ctx, id); warning != "" {
			report.Warnings = append(report.Warnings, warning)
			continue
		}
		report.Saved++
	}

	if report.Saved > 0 {
		report.Message = fmt.Sprintf("%d shopping list(s) have been saved to '%s'.", report.Saved, c.sink.Path())
	}

	common.LogInfo("購物清單處理完成",
		zap.String("selection_id", sel.ID),
		zap.Int("selected", len(indices)),
		zap.Int("saved", report.Saved),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}

// saveOne 處理單一食譜，回傳空字串代表成功
func (c *Controller) saveOne(ctx context.Context, id spoonacular.ID) string {
	// 缺少識別碼的食譜無法查詢食材
	if id == "" {
		common.LogWarn("食譜缺少識別碼")
		return fmt.Sprintf("Unable to get ingredients for recipe %s.", id)
	}
	entries, err := c.api.FetchIngredientWidget(ctx, id)
	if err != nil {
		common.LogWarn("取得食材失敗", zap.String("recipe_id", string(id)), zap.Error(err))
		return fmt.Sprintf("Error saving shopping list for recipe %s: %v", id, err)
	}
	if len(entries) == 0 {
		common.LogWarn("食譜沒有食材", zap.String("recipe_id", string(id)))
		return fmt.Sprintf("Unable to get ingredients for recipe %s.", id)
	}
	if err := c.sink.AppendShoppingList(id, entries); err != nil {
		common.LogWarn("寫入購物清單失敗", zap.String("recipe_id", string(id)), zap.Error(err))
		return fmt.Sprintf("Error saving shopping list for recipe %s: %v", id, err)
	}
	return ""
}

// SearchErrorMessage 搜尋失敗時顯示給使用者的單一訊息
func SearchErrorMessage(err error) string {
	if common.IsValidationError(err) {
		return err.Error()
	}
	return fmt.Sprintf("An error occurred while fetching recipes: %v", err)
}
