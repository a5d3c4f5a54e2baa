package spoonacular

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	searchPath = "/recipes/complexSearch"
	widgetPath = "/recipes/{id}/ingredientWidget.json"
)

// Client Spoonacular 食譜搜尋服務客戶端
type Client struct {
	config *config.SpoonacularConfig
	client *resty.Client
}

// NewClient 創建 Spoonacular 客戶端
func NewClient(cfg *config.SpoonacularConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetQueryParam("apiKey", cfg.APIKey).
		SetHeader("Accept", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// SearchRecipes 依條件搜尋食譜，回傳遠端的結果陣列與總數
func (c *Client) SearchRecipes(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	params := map[string]string{
		"includeIngredients":   q.IncludeIngredients,
		"maxCalories":          strconv.Itoa(q.MaxCalories),
		"maxFat":               strconv.Itoa(q.MaxFat),
		"addRecipeInformation": "true",
		"fillIngredients":      "true",
		"instructionsRequired": "true",
		"addRecipeNutrition":   "true",
		"number":               strconv.Itoa(q.Number),
	}
	// 菜系與飲食只在有值時帶入
	if q.Cuisine != "" {
		params["cuisine"] = q.Cuisine
	}
	if q.Diet != "" {
		params["diet"] = q.Diet
	}

	common.LogDebug("Sending search request",
		zap.String("include_ingredients", q.IncludeIngredients),
		zap.String("cuisine", q.Cuisine),
		zap.String("diet", q.Diet),
		zap.Int("number", q.Number),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(searchPath)
	if err != nil {
		err = common.NewTransportError("failed to send search request", c.redact(err))
		common.LogRemoteCall(searchPath, time.Since(start), err)
		return nil, err
	}
	if resp.IsError() {
		err = statusError(resp)
		common.LogRemoteCall(searchPath, time.Since(start), err)
		return nil, err
	}

	// 解析回應
	var body searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil {
		err = common.NewDecodeError("failed to parse search response", err)
		common.LogRemoteCall(searchPath, time.Since(start), err)
		return nil, err
	}
	if body.Results == nil || body.TotalResults == nil {
		err := common.NewDecodeError(missingKeyMessage(body), nil)
		common.LogRemoteCall(searchPath, time.Since(start), err)
		return nil, err
	}

	common.LogRemoteCall(searchPath, time.Since(start), nil)
	common.LogDebug("Search response decoded",
		zap.Int("results", len(*body.Results)),
		zap.Int("total_results", *body.TotalResults),
	)

	return &SearchResult{
		Results:      *body.Results,
		TotalResults: *body.TotalResults,
	}, nil
}

// FetchIngredientWidget 取得食譜的食材明細，回應中沒有食材時回傳空列表
func (c *Client) FetchIngredientWidget(ctx context.Context, id ID) ([]ShoppingListEntry, error) {
	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("id", string(id)).
		Get(widgetPath)
	if err != nil {
		err = common.NewTransportError("failed to send ingredient widget request", c.redact(err))
		common.LogRemoteCall(widgetPath, time.Since(start), err)
		return nil, err
	}
	if resp.IsError() {
		err = statusError(resp)
		common.LogRemoteCall(widgetPath, time.Since(start), err)
		return nil, err
	}

	var body widgetResponse
	if err := common.ParseJSONBytes(resp.Body(), &body); err != nil {
		err = common.NewDecodeError("failed to parse ingredient widget response", err)
		common.LogRemoteCall(widgetPath, time.Since(start), err)
		return nil, err
	}

	entries := make([]ShoppingListEntry, 0, len(body.Ingredients))
	for _, ing := range body.Ingredients {
		entry, err := ing.toEntry()
		if err != nil {
			return nil, common.NewDecodeError("invalid ingredient widget entry", err)
		}
		entries = append(entries, entry)
	}

	common.LogRemoteCall(widgetPath, time.Since(start), nil)
	return entries, nil
}

// redact 移除錯誤訊息中的請求參數，net/http 的 *url.Error 會帶出含 apiKey 的完整網址
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if u, perr := url.Parse(urlErr.URL); perr == nil {
			u.RawQuery = ""
			urlErr.URL = u.String()
		} else {
			urlErr.URL = ""
		}
	}
	if c.config.APIKey != "" && strings.Contains(err.Error(), c.config.APIKey) {
		return errors.New(strings.ReplaceAll(err.Error(), c.config.APIKey, common.MaskAPIKey(c.config.APIKey)))
	}
	return err
}

func missingKeyMessage(body searchResponse) string {
	if body.Results == nil {
		return "search response is missing \"results\""
	}
	return "search response is missing \"totalResults\""
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

// apiError Spoonacular 錯誤回應
type apiError struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusError 將非 2xx 回應轉為傳輸錯誤，盡量帶出遠端訊息
func statusError(resp *resty.Response) error {
	msg := strings.TrimSpace(resp.String())
	var body apiError
	if err := common.ParseJSONBytes(resp.Body(), &body); err == nil && body.Message != "" {
		msg = body.Message
	}
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	status := fmt.Sprintf("recipe service returned status %d", resp.StatusCode())
	if msg == "" {
		return common.NewTransportError(status, nil)
	}
	return common.NewTransportError(status, errors.New(msg))
}
