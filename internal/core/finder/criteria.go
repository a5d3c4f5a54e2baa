package finder

import (
	"strconv"
	"strings"

	"recipe-finder/internal/core/spoonacular"
	"recipe-finder/internal/pkg/common"
)

// NoneChoice 下拉選單中代表「不限」的選項
const NoneChoice = "None"

// 驗證錯誤訊息
const (
	MsgMissingIngredients = "Please enter at least one ingredient."
	MsgInvalidIngredients = "Please enter valid ingredients."
	MsgInvalidNumbers     = "Please enter valid numbers for calories, fat, and number of recipes."
	MsgInvalidCount       = "Number of recipes must be at least 1."
)

// FormInput 表單上輸入的原始字串
type FormInput struct {
	Cuisine     string `json:"cuisine"`
	Diet        string `json:"diet"`
	Ingredients string `json:"ingredients"`
	MaxCalories string `json:"max_calories"`
	MaxFat      string `json:"max_fat"`
	Number      string `json:"number"`
}

// SearchCriteria 通過驗證的搜尋條件
type SearchCriteria struct {
	Cuisine     string
	Diet        string
	Ingredients []string
	MaxCalories int
	MaxFat      int
	Count       int
}

// Query 轉換為客戶端的搜尋請求
func (c *SearchCriteria) Query() spoonacular.SearchQuery {
	return spoonacular.SearchQuery{
		Cuisine:            c.Cuisine,
		Diet:               c.Diet,
		IncludeIngredients: strings.Join(c.Ingredients, ","),
		MaxCalories:        c.MaxCalories,
		MaxFat:             c.MaxFat,
		Number:             c.Count,
	}
}

// ParseCriteria 驗證表單輸入，任何一項不合法都不會發出網路請求
func ParseCriteria(in FormInput) (*SearchCriteria, error) {
	if in.Ingredients == "" {
		return nil, common.NewValidationError(MsgMissingIngredients)
	}
	if !ValidIngredients(in.Ingredients) {
		return nil, common.NewValidationError(MsgInvalidIngredients)
	}
	if !IsDigits(in.MaxCalories) || !IsDigits(in.MaxFat) || !IsDigits(in.Number) {
		return nil, common.NewValidationError(MsgInvalidNumbers)
	}

	maxCalories, err1 := strconv.Atoi(in.MaxCalories)
	maxFat, err2 := strconv.Atoi(in.MaxFat)
	count, err3 := strconv.Atoi(in.Number)
	if err1 != nil || err2 != nil || err3 != nil {
		// 只可能是數值溢位
		return nil, common.NewValidationError(MsgInvalidNumbers)
	}
	if count < 1 {
		return nil, common.NewValidationError(MsgInvalidCount)
	}

	return &SearchCriteria{
		Cuisine:     optionalChoice(in.Cuisine),
		Diet:        optionalChoice(in.Diet),
		Ingredients: common.SplitAndTrim(in.Ingredients),
		MaxCalories: maxCalories,
		MaxFat:      maxFat,
		Count:       count,
	}, nil
}

// ValidIngredients 每一項食材都必須含有英文字母且不可為純數字
func ValidIngredients(ingredients string) bool {
	for _, ing := range common.SplitAndTrim(ingredients) {
		if IsDigits(ing) || !hasLetter(ing) {
			return false
		}
	}
	return true
}

// IsDigits 非空且只由 ASCII 數字組成
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func hasLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// optionalChoice 空白或 None 代表不限
func optionalChoice(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, NoneChoice) {
		return ""
	}
	return s
}
