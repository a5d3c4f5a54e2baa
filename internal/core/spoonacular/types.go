package spoonacular

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Missing 欄位缺失時的顯示值
const Missing = "N/A"

// ID 食譜識別碼，遠端可能以數字或字串表示
type ID string

// UnmarshalJSON 同時接受數字與字串
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("recipe id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String 顯示用字串
func (id ID) String() string {
	if id == "" {
		return Missing
	}
	return string(id)
}

// Number 顯示用數值，保留遠端原始字面值；非數值的字串原樣保留，其他型別視為缺失
type Number string

// UnmarshalJSON 接受數字、字串與布林值
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		*n = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
	case data[0] == '{' || data[0] == '[' || bytes.Equal(data, []byte("null")):
		*n = ""
	default:
		*n = Number(data)
	}
	return nil
}

// SearchQuery 搜尋條件，數值已由呼叫端轉換完成
type SearchQuery struct {
	Cuisine            string
	Diet               string
	IncludeIngredients string
	MaxCalories        int
	MaxFat             int
	Number             int
}

// SearchResult 搜尋結果，保持遠端原樣
type SearchResult struct {
	Results      []Recipe
	TotalResults int
}

// searchResponse complexSearch 回應，頂層欄位為必要欄位
type searchResponse struct {
	Results      *[]Recipe `json:"results"`
	TotalResults *int      `json:"totalResults"`
}

// Recipe 食譜記錄，所有欄位皆為可選
type Recipe struct {
	ID                   ID                 `json:"id"`
	Title                *string            `json:"title"`
	ReadyInMinutes       *Number            `json:"readyInMinutes"`
	SpoonacularSourceURL *string            `json:"spoonacularSourceUrl"`
	Nutrition            *Nutrition         `json:"nutrition"`
	ExtendedIngredients  []Quantity         `json:"extendedIngredients"`
	AnalyzedInstructions []InstructionGroup `json:"analyzedInstructions"`
	Instructions         *string            `json:"instructions"`
	Summary              *string            `json:"summary"`
}

// Nutrition 營養資訊
type Nutrition struct {
	Nutrients []Quantity `json:"nutrients"`
}

// Quantity 名稱、數量、單位三元組
type Quantity struct {
	Name   *string      `json:"name"`
	Amount *Number      `json:"amount"`
	Unit   *string      `json:"unit"`
}

// InstructionGroup 一組分步說明
type InstructionGroup struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Step 單一步驟
type Step struct {
	Number *Number      `json:"number"`
	Step   *string      `json:"step"`
}

// InstructionsKind 說明的來源類型
type InstructionsKind int

const (
	InstructionsNone InstructionsKind = iota
	InstructionsSteps
	InstructionsText
	InstructionsSummary
)

// DisplayID 識別碼
func (r *Recipe) DisplayID() string {
	return r.ID.String()
}

// DisplayTitle 標題
func (r *Recipe) DisplayTitle() string {
	return stringOr(r.Title)
}

// DisplayReadyInMinutes 準備時間（分鐘）
func (r *Recipe) DisplayReadyInMinutes() string {
	return numberOr(r.ReadyInMinutes)
}

// DisplaySourceURL 食譜網址
func (r *Recipe) DisplaySourceURL() string {
	return stringOr(r.SpoonacularSourceURL)
}

// Nutrients 營養素列表，缺失時為空
func (r *Recipe) Nutrients() []Quantity {
	if r.Nutrition == nil {
		return nil
	}
	return r.Nutrition.Nutrients
}

// Steps 依序合併所有說明群組中的步驟
func (r *Recipe) Steps() []Step {
	var steps []Step
	for _, group := range r.AnalyzedInstructions {
		steps = append(steps, group.Steps...)
	}
	return steps
}

// ResolveInstructions 依優先順序判斷說明來源：步驟、純文字說明、摘要
func (r *Recipe) ResolveInstructions() InstructionsKind {
	switch {
	case len(r.Steps()) > 0:
		return InstructionsSteps
	case nonEmpty(r.Instructions):
		return InstructionsText
	case nonEmpty(r.Summary):
		return InstructionsSummary
	default:
		return InstructionsNone
	}
}

// DisplayName 名稱
func (q Quantity) DisplayName() string {
	return stringOr(q.Name)
}

// DisplayAmount 數量
func (q Quantity) DisplayAmount() string {
	return numberOr(q.Amount)
}

// DisplayUnit 單位
func (q Quantity) DisplayUnit() string {
	return stringOr(q.Unit)
}

// DisplayNumber 步驟編號
func (s Step) DisplayNumber() string {
	return numberOr(s.Number)
}

// DisplayText 步驟內容
func (s Step) DisplayText() string {
	return stringOr(s.Step)
}

// ShoppingListEntry 購物清單項目，取自食材元件的公制數量
type ShoppingListEntry struct {
	Name   string
	Amount json.Number
	Unit   string
}

// widgetResponse ingredientWidget.json 回應
type widgetResponse struct {
	Ingredients []widgetIngredient `json:"ingredients"`
}

type widgetIngredient struct {
	Name   *string `json:"name"`
	Amount *struct {
		Metric *widgetMeasure `json:"metric"`
		US     *widgetMeasure `json:"us"`
	} `json:"amount"`
}

type widgetMeasure struct {
	Value *json.Number `json:"value"`
	Unit  string       `json:"unit"`
}

// toEntry 轉換為購物清單項目，只使用公制數量
func (w widgetIngredient) toEntry() (ShoppingListEntry, error) {
	if w.Name == nil {
		return ShoppingListEntry{}, fmt.Errorf("ingredient without name")
	}
	if w.Amount == nil || w.Amount.Metric == nil || w.Amount.Metric.Value == nil {
		return ShoppingListEntry{}, fmt.Errorf("ingredient %q has no metric amount", *w.Name)
	}
	return ShoppingListEntry{
		Name:   *w.Name,
		Amount: *w.Amount.Metric.Value,
		Unit:   w.Amount.Metric.Unit,
	}, nil
}

func stringOr(s *string) string {
	if s == nil {
		return Missing
	}
	return *s
}

func numberOr(n *Number) string {
	if n == nil || *n == "" {
		return Missing
	}
	return string(*n)
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
