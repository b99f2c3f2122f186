package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bet_tracker/internal/account"
	"bet_tracker/internal/analytics"
	"bet_tracker/internal/display"
	"bet_tracker/internal/ledger"
	"bet_tracker/internal/risk"
	"bet_tracker/internal/wager"
)

// WagerHandler serves one account's ledger. Each request loads the ledger,
// applies at most one mutation and returns the result; nothing is kept
// between requests.
type WagerHandler struct {
	Accounts        *account.Service
	Store           ledger.Store
	Log             *zap.Logger
	DefaultCurrency string
}

func (h *WagerHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/accounts/:account_id")
	group.GET("/wagers", h.list)
	group.POST("/wagers", h.add)
	group.GET("/wagers/:wager_id", h.get)
	group.PUT("/wagers/:wager_id", h.update)
	group.DELETE("/wagers/:wager_id", h.remove)
	group.POST("/wagers/:wager_id/outcome", h.settle)
	group.GET("/rows/:index", h.resolveRow)
	group.POST("/risk", h.assess)
	group.GET("/summary", h.summary)
}

type addWagerRequest struct {
	WagerType  wager.Type        `json:"wager_type"`
	Match      string            `json:"match"`
	Prediction string            `json:"prediction"`
	Odds       decimal.Decimal   `json:"odds"`
	Selections string            `json:"selections"`
	BetAmount  decimal.Decimal   `json:"bet_amount"`
	Date       *time.Time        `json:"date"`
	Legs       []wager.Selection `json:"legs"`
}

type updateWagerRequest struct {
	WagerType  *wager.Type      `json:"wager_type"`
	Match      *string          `json:"match"`
	Prediction *string          `json:"prediction"`
	Odds       *decimal.Decimal `json:"odds"`
	Selections *string          `json:"selections"`
	BetAmount  *decimal.Decimal `json:"bet_amount"`
	Date       *time.Time       `json:"date"`
	Outcome    *string          `json:"outcome"`
}

type outcomeRequest struct {
	Outcome string `json:"outcome"`
}

type riskRequest struct {
	BetAmount decimal.Decimal `json:"bet_amount"`
}

type wagerList struct {
	Wagers []wager.Wager `json:"wagers"`
	Rows   []display.Row `json:"rows"`
}

type addedWager struct {
	Wager *wager.Wager    `json:"wager"`
	Risk  risk.Assessment `json:"risk"`
}

type resolvedRow struct {
	Index   int          `json:"index"`
	WagerID string       `json:"wager_id"`
	Wager   *wager.Wager `json:"wager"`
}

func (h *WagerHandler) currency(c *gin.Context) string {
	if cur := strings.TrimSpace(c.Query("currency")); cur != "" {
		return strings.ToUpper(cur)
	}
	return h.DefaultCurrency
}

// open loads the ledger of the account named in the path.
func (h *WagerHandler) open(c *gin.Context) (*account.Account, *ledger.Ledger, bool) {
	ctx := c.Request.Context()
	a, err := h.Accounts.Get(ctx, c.Param("account_id"))
	if err != nil {
		fail(c, h.Log, err)
		return nil, nil, false
	}
	l, err := ledger.Open(ctx, h.Store, a.AccountID, h.Log)
	if err != nil {
		fail(c, h.Log, err)
		return nil, nil, false
	}
	return a, l, true
}

func (h *WagerHandler) list(c *gin.Context) {
	_, l, ok := h.open(c)
	if !ok {
		return
	}
	wagers := l.Wagers()
	Ok(c, wagerList{Wagers: wagers, Rows: display.Rows(wagers, h.currency(c))}, nil)
}

func (h *WagerHandler) get(c *gin.Context) {
	_, l, ok := h.open(c)
	if !ok {
		return
	}
	w, err := l.Get(c.Param("wager_id"))
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	Ok(c, w, nil)
}

func (h *WagerHandler) add(c *gin.Context) {
	var req addWagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	a, l, ok := h.open(c)
	if !ok {
		return
	}

	assessment := risk.Assess(req.BetAmount, a.Policy(), l.Wagers(), h.currency(c))

	draft := wager.Draft{
		WagerType:      req.WagerType,
		Match:          req.Match,
		Prediction:     req.Prediction,
		Odds:           req.Odds,
		SelectionsText: req.Selections,
		Selections:     req.Legs,
		BetAmount:      req.BetAmount,
	}
	if req.Date != nil {
		draft.Date = *req.Date
	}

	w, err := l.Add(c.Request.Context(), draft)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	fb := display.AddedFeedback(*w, assessment.IsRisky)
	Ok(c, addedWager{Wager: w, Risk: assessment}, &fb)
}

func (h *WagerHandler) update(c *gin.Context) {
	var req updateWagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	_, l, ok := h.open(c)
	if !ok {
		return
	}

	edit := ledger.Edit{
		WagerType:      req.WagerType,
		Match:          req.Match,
		Prediction:     req.Prediction,
		Odds:           req.Odds,
		SelectionsText: req.Selections,
		BetAmount:      req.BetAmount,
		Date:           req.Date,
	}
	if req.Outcome != nil {
		decl := wager.ParseDeclaration(*req.Outcome)
		edit.Outcome = &decl
	}

	w, err := l.Update(c.Request.Context(), c.Param("wager_id"), edit)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	fb := display.UpdatedFeedback(*w)
	Ok(c, w, &fb)
}

func (h *WagerHandler) settle(c *gin.Context) {
	var req outcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	_, l, ok := h.open(c)
	if !ok {
		return
	}
	decl := wager.ParseDeclaration(req.Outcome)
	w, err := l.Settle(c.Request.Context(), c.Param("wager_id"), decl)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	fb := display.SettledFeedback(*w, h.currency(c))
	Ok(c, w, &fb)
}

func (h *WagerHandler) remove(c *gin.Context) {
	_, l, ok := h.open(c)
	if !ok {
		return
	}
	if err := l.Remove(c.Request.Context(), c.Param("wager_id")); err != nil {
		fail(c, h.Log, err)
		return
	}
	fb := display.DeletedFeedback()
	Ok(c, nil, &fb)
}

// resolveRow maps a table position to the wager shown there, so a caller
// can address rows the way they are displayed.
func (h *WagerHandler) resolveRow(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		badRequest(c, "row index must be a number")
		return
	}
	_, l, ok := h.open(c)
	if !ok {
		return
	}
	id, err := l.IDAt(index)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	w, err := l.Get(id)
	if err != nil {
		fail(c, h.Log, err)
		return
	}
	Ok(c, resolvedRow{Index: index, WagerID: id, Wager: w}, nil)
}

func (h *WagerHandler) assess(c *gin.Context) {
	var req riskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	a, l, ok := h.open(c)
	if !ok {
		return
	}
	assessment := risk.Assess(req.BetAmount, a.Policy(), l.Wagers(), h.currency(c))
	var fb *display.Feedback
	if assessment.IsRisky {
		fb = &display.Feedback{Message: assessment.Message, Severity: display.SeverityWarning}
	}
	Ok(c, assessment, fb)
}

func (h *WagerHandler) summary(c *gin.Context) {
	a, l, ok := h.open(c)
	if !ok {
		return
	}
	Ok(c, analytics.Summarize(l.Wagers(), a.InitialBankroll), nil)
}
