package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"quoting/internal/domain"
	"quoting/internal/service"
)

// QuoteHandler handles HTTP requests for quotes.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// OrderFactsRequest is the HTTP request body describing one order to quote.
type OrderFactsRequest struct {
	ConfigID                 string          `json:"config_id"`
	DistanceMiles            decimal.Decimal `json:"distance_miles"`
	OrderHeadcountOrSubtotal decimal.Decimal `json:"order_headcount_or_subtotal"`
	DailyDriveCountForDriver int             `json:"daily_drive_count_for_driver"`
	CrossesTolledRoute       bool            `json:"crosses_tolled_route"`
	RouteTollID              string          `json:"route_toll_id"`
}

func (r OrderFactsRequest) toFacts() domain.OrderFacts {
	return domain.OrderFacts{
		ConfigID:                 r.ConfigID,
		DistanceMiles:            r.DistanceMiles,
		TierValue:                r.OrderHeadcountOrSubtotal,
		DailyDriveCountForDriver: r.DailyDriveCountForDriver,
		CrossesTolledRoute:       r.CrossesTolledRoute,
		RouteTollID:              r.RouteTollID,
	}
}

// AppliedTierResponse describes the tier a quote used.
type AppliedTierResponse struct {
	Index         int    `json:"index"`
	MinSize       string `json:"min_size"`
	MaxSize       string `json:"max_size,omitempty"`
	RateApplied   string `json:"rate_applied"`
	LocalRateUsed bool   `json:"local_rate_used"`
}

// QuoteResponse is the HTTP response for quote operations, itemized so
// the client bill and driver pay statement render without re-deriving
// anything.
type QuoteResponse struct {
	ID       string `json:"id,omitempty"`
	ConfigID string `json:"config_id"`

	TierApplied       AppliedTierResponse `json:"tier_applied"`
	DriverTierApplied AppliedTierResponse `json:"driver_tier_applied"`

	BaseClientFee          string `json:"base_client_fee"`
	MileageSurchargeClient string `json:"mileage_surcharge_client"`
	DiscountAppliedClient  string `json:"discount_applied_client"`
	TollSurchargeClient    string `json:"toll_surcharge_client"`
	TotalClientFee         string `json:"total_client_fee"`

	BaseDriverPay          string `json:"base_driver_pay"`
	MileageSurchargeDriver string `json:"mileage_surcharge_driver"`
	TollPassThroughDriver  string `json:"toll_pass_through_driver"`
	TotalDriverPay         string `json:"total_driver_pay"`

	AdjustmentApplied bool     `json:"adjustment_applied"`
	Adjustments       []string `json:"adjustments,omitempty"`
	ComputedAt        string   `json:"computed_at"`
}

func toQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{
		ID:       q.ID,
		ConfigID: q.ConfigID,

		TierApplied:       toAppliedTierResponse(q.TierApplied),
		DriverTierApplied: toAppliedTierResponse(q.DriverTierApplied),

		BaseClientFee:          q.BaseClientFee.StringFixed(2),
		MileageSurchargeClient: q.MileageSurchargeClient.StringFixed(2),
		DiscountAppliedClient:  q.DiscountAppliedClient.StringFixed(2),
		TollSurchargeClient:    q.TollSurchargeClient.StringFixed(2),
		TotalClientFee:         q.TotalClientFee.StringFixed(2),

		BaseDriverPay:          q.BaseDriverPay.StringFixed(2),
		MileageSurchargeDriver: q.MileageSurchargeDriver.StringFixed(2),
		TollPassThroughDriver:  q.TollPassThroughDriver.StringFixed(2),
		TotalDriverPay:         q.TotalDriverPay.StringFixed(2),

		AdjustmentApplied: q.Adjustments.Applied(),
		Adjustments:       adjustmentNames(q.Adjustments),
		ComputedAt:        q.ComputedAt.Format(time.RFC3339Nano),
	}
}

func toAppliedTierResponse(t domain.AppliedTier) AppliedTierResponse {
	resp := AppliedTierResponse{
		Index:         t.Index,
		MinSize:       t.MinSize.String(),
		RateApplied:   t.RateApplied.StringFixed(2),
		LocalRateUsed: t.LocalRateUsed,
	}
	if t.MaxSize != nil {
		resp.MaxSize = t.MaxSize.String()
	}
	return resp
}

func adjustmentNames(a domain.Adjustments) []string {
	var names []string
	if a.ClampedTier {
		names = append(names, "clamped_tier")
	}
	if a.DiscountCapped {
		names = append(names, "discount_capped")
	}
	if a.ClientTotalFloored {
		names = append(names, "client_total_floored")
	}
	if a.DriverTotalFloored {
		names = append(names, "driver_total_floored")
	}
	return names
}

// CreateQuote handles POST /v1/quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req OrderFactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.ConfigID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "config_id is required"})
		return
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), req.toFacts())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toQuoteResponse(quote))
}

// PreviewQuote handles POST /v1/quotes/preview
func (h *QuoteHandler) PreviewQuote(c *gin.Context) {
	var req OrderFactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.ConfigID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "config_id is required"})
		return
	}

	quote, err := h.quoteService.PreviewQuote(c.Request.Context(), req.toFacts())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toQuoteResponse(quote))
}

// BatchPreviewRequest is the HTTP request body for batch previews.
type BatchPreviewRequest struct {
	Orders []OrderFactsRequest `json:"orders"`
}

// BatchEntryResponse is one batch entry's outcome.
type BatchEntryResponse struct {
	Quote *QuoteResponse `json:"quote,omitempty"`
	Error string         `json:"error,omitempty"`
}

// PreviewBatch handles POST /v1/quotes/preview-batch
func (h *QuoteHandler) PreviewBatch(c *gin.Context) {
	var req BatchPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	orders := make([]domain.OrderFacts, len(req.Orders))
	for i, o := range req.Orders {
		orders[i] = o.toFacts()
	}

	results, err := h.quoteService.PreviewBatch(c.Request.Context(), orders)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]BatchEntryResponse, len(results))
	for i, res := range results {
		if res.Err != nil {
			entries[i] = BatchEntryResponse{Error: res.Err.Error()}
			continue
		}
		resp := toQuoteResponse(res.Quote)
		entries[i] = BatchEntryResponse{Quote: &resp}
	}

	respondJSON(c, http.StatusOK, gin.H{"results": entries})
}

// GetQuote handles GET /v1/quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toQuoteResponse(quote))
}

// ListQuotes handles GET /v1/quotes?config_id=&limit=
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	configID := c.Query("config_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	quotes, err := h.quoteService.ListQuotes(c.Request.Context(), configID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		responses[i] = toQuoteResponse(q)
	}

	respondJSON(c, http.StatusOK, gin.H{"quotes": responses})
}
