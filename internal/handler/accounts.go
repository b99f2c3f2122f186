package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bet_tracker/internal/account"
	"bet_tracker/internal/display"
)

type AccountHandler struct {
	Accounts *account.Service
	Log      *zap.Logger
}

func (h *AccountHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/accounts")
	group.GET("", h.list)
	group.POST("", h.upsert)
	group.GET("/:account_id", h.get)
	group.DELETE("/:account_id", h.delete)
}

func (h *AccountHandler) list(c *gin.Context) {
	accounts, err := h.Accounts.List(c.Request.Context())
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	Ok(c, accounts, nil)
}

func (h *AccountHandler) get(c *gin.Context) {
	a, err := h.Accounts.Get(c.Request.Context(), c.Param("account_id"))
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	Ok(c, a, nil)
}

func (h *AccountHandler) upsert(c *gin.Context) {
	var req account.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	a, err := h.Accounts.Upsert(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	fb := display.SettingsFeedback()
	Ok(c, a, &fb)
}

func (h *AccountHandler) delete(c *gin.Context) {
	if err := h.Accounts.Delete(c.Request.Context(), c.Param("account_id")); err != nil {
		fail(c, h.Log, err)
		return
	}
	Ok(c, nil, &display.Feedback{Message: "Account deleted.", Severity: display.SeverityWarning})
}
