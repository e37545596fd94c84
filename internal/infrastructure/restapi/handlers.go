package restapi

import (
	"net/http"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIResponse wraps every successful payload.
type APIResponse struct {
	Data          any    `json:"data"`
	StatusMessage string `json:"status_message"`
}

// BalanceRow is a formatted balance as rendered by the API.
type BalanceRow struct {
	Key        string  `json:"key"`
	Currency   string  `json:"currency"`
	Blockchain string  `json:"blockchain"`
	Amount     float64 `json:"amount"`
	Formatted  string  `json:"formatted"`
	USDValue   float64 `json:"usdValue"`
	Priority   int     `json:"priority"`
}

// WalletBalancesResponse is the payload of GET /wallets/:address/balances.
type WalletBalancesResponse struct {
	WalletAddress string       `json:"walletAddress"`
	Balances      []BalanceRow `json:"balances"`
	TotalUSDValue float64      `json:"totalUSDValue"`
}

// SwapQuoteRequest is the body of POST /swap/quote.
type SwapQuoteRequest struct {
	WalletAddress string  `json:"walletAddress" binding:"required"`
	FromCurrency  string  `json:"fromCurrency" binding:"required"`
	ToCurrency    string  `json:"toCurrency" binding:"required"`
	Amount        float64 `json:"amount"`
	Side          string  `json:"side"`
}

// Handler serves the wallet, price and swap endpoints.
type Handler struct {
	walletService port.WalletService
	priceService  port.TokenPriceService
	swapService   port.SwapService
}

// NewHandler creates a new Handler.
func NewHandler(ws port.WalletService, tps port.TokenPriceService, ss port.SwapService) *Handler {
	return &Handler{walletService: ws, priceService: tps, swapService: ss}
}

// ListWallets handles GET /api/v1/wallets.
func (h *Handler) ListWallets(c *gin.Context) {
	addresses, err := h.walletService.ListWallets(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	msg := "Wallets retrieved successfully."
	if len(addresses) == 0 {
		msg = "No wallets found. Check the balances file."
	}
	c.JSON(http.StatusOK, APIResponse{Data: gin.H{"wallets": addresses}, StatusMessage: msg})
}

// GetWalletBalances handles GET /api/v1/wallets/:address/balances.
func (h *Handler) GetWalletBalances(c *gin.Context) {
	view, err := h.walletService.GetFormattedBalances(c.Request.Context(), c.Param("address"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := WalletBalancesResponse{
		WalletAddress: view.WalletAddress,
		Balances:      make([]BalanceRow, 0, len(view.Balances)),
		TotalUSDValue: view.TotalUSDValue,
	}
	for _, b := range view.Balances {
		resp.Balances = append(resp.Balances, BalanceRow{
			Key:        b.Key(),
			Currency:   b.Currency,
			Blockchain: b.Blockchain,
			Amount:     b.Amount,
			Formatted:  b.Formatted,
			USDValue:   b.USDValue,
			Priority:   b.Priority,
		})
	}
	msg := "Balances retrieved successfully."
	if len(resp.Balances) == 0 {
		msg = "Wallet holds no displayable balances."
	}
	c.JSON(http.StatusOK, APIResponse{Data: resp, StatusMessage: msg})
}

// ListPrices handles GET /api/v1/prices?search=.
func (h *Handler) ListPrices(c *gin.Context) {
	prices, err := h.priceService.ListPrices(c.Request.Context(), c.Query("search"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if prices == nil {
		prices = []entity.TokenPrice{}
	}
	c.JSON(http.StatusOK, APIResponse{Data: gin.H{"prices": prices}, StatusMessage: "Prices retrieved successfully."})
}

// QuoteSwap handles POST /api/v1/swap/quote.
func (h *Handler) QuoteSwap(c *gin.Context) {
	var req SwapQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, APIError{Error: "invalid request body: " + err.Error(), RequestID: c.GetString(requestIDKey)})
		return
	}

	quote, err := h.swapService.Quote(c.Request.Context(), entity.SwapRequest{
		WalletAddress: req.WalletAddress,
		FromCurrency:  req.FromCurrency,
		ToCurrency:    req.ToCurrency,
		Amount:        req.Amount,
		Side:          entity.SwapSide(req.Side),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, APIResponse{Data: quote, StatusMessage: "Quote computed successfully."})
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
