package recipe

import (
	"errors"
	"net/http"

	"recipe-finder/internal/core/finder"
	"recipe-finder/internal/core/session"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SaveRequest 儲存對話框確認請求
type SaveRequest struct {
	SelectionID string   `json:"selection_id" binding:"required"`
	RecipeIDs   []string `json:"recipe_ids"`
}

// OptionsResponse 表單下拉選單選項
type OptionsResponse struct {
	Cuisines []string `json:"cuisines"`
	Diets    []string `json:"diets"`
}

// Handler 食譜表單處理程序
type Handler struct {
	controller *finder.Controller
	sessions   session.Store
	vocab      config.VocabularyConfig
}

// NewHandler 創建新的食譜表單處理程序
func NewHandler(controller *finder.Controller, sessions session.Store, vocab config.VocabularyConfig) *Handler {
	return &Handler{
		controller: controller,
		sessions:   sessions,
		vocab:      vocab,
	}
}

// HandleOptions 回傳菜系與飲食選項，第一項固定為 None
func (h *Handler) HandleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Cuisines: append([]string{finder.NoneChoice}, h.vocab.Cuisines...),
		Diets:    append([]string{finder.NoneChoice}, h.vocab.Diets...),
	})
}

// HandleSearch 表單送出：驗證、搜尋並回傳顯示文字
func (h *Handler) HandleSearch(c *gin.Context) {
	reqID := requestid.Get(c)

	var input finder.FormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		common.LogWarn("請求格式無效", zap.Error(err), zap.String("request_id", reqID))
		respondError(c, http.StatusBadRequest, common.ErrCodeInvalidRequest, "Invalid request format")
		return
	}

	outcome, err := h.controller.Search(c.Request.Context(), input)
	if err != nil {
		if !common.IsValidationError(err) {
			common.LogError("食譜搜尋失敗", zap.Error(err), zap.String("request_id", reqID))
		}
		respondError(c, common.StatusOf(err), common.CodeOf(err), finder.SearchErrorMessage(err))
		return
	}

	// 儲存對話框上下文，失敗時仍回傳搜尋結果但不提供儲存
	if outcome.Selection != nil {
		if err := h.sessions.Put(c.Request.Context(), outcome.Selection); err != nil {
			common.LogError("儲存選擇會話失敗", zap.Error(err), zap.String("request_id", reqID))
			outcome.Selection = nil
		}
	}

	c.JSON(http.StatusOK, outcome)
}

// HandleSaveShoppingLists 儲存對話框確認：為選取的食譜寫入購物清單
func (h *Handler) HandleSaveShoppingLists(c *gin.Context) {
	reqID := requestid.Get(c)

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效", zap.Error(err), zap.String("request_id", reqID))
		respondError(c, http.StatusBadRequest, common.ErrCodeInvalidRequest, "Invalid request format")
		return
	}

	sel, err := h.sessions.Get(c.Request.Context(), req.SelectionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			respondError(c, http.StatusNotFound, common.ErrCodeNotFound, "Selection not found or expired. Please search again.")
			return
		}
		common.LogError("讀取選擇會話失敗", zap.Error(err), zap.String("request_id", reqID))
		respondError(c, http.StatusInternalServerError, common.ErrCodeInternalError, "Failed to load selection")
		return
	}

	indices, err := sel.IndicesOf(req.RecipeIDs)
	if err != nil {
		respondError(c, common.StatusOf(err), common.CodeOf(err), err.Error())
		return
	}

	report, err := h.controller.SaveShoppingLists(c.Request.Context(), sel, indices)
	if err != nil {
		// 對話框保持開啟，會話不刪除
		respondError(c, common.StatusOf(err), common.CodeOf(err), err.Error())
		return
	}

	// 對話框關閉
	if err := h.sessions.Delete(c.Request.Context(), sel.ID); err != nil {
		common.LogWarn("刪除選擇會話失敗", zap.Error(err), zap.String("request_id", reqID))
	}

	c.JSON(http.StatusOK, report)
}

// respondError 寫入錯誤響應
func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, common.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
