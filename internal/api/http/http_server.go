package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mkravchenko/dex-settlement/internal/api/dto"
	"github.com/mkravchenko/dex-settlement/internal/core"
	"github.com/mkravchenko/dex-settlement/internal/domain"
	"github.com/mkravchenko/dex-settlement/internal/middleware"
)

type HTTPServer struct {
	Eng *core.Engine
	Log *zap.Logger

	// RateLimit is the minimum interval between requests per client.
	// Zero disables limiting.
	RateLimit time.Duration
}

func NewHTTPServer(eng *core.Engine, log *zap.Logger) *HTTPServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPServer{Eng: eng, Log: log, RateLimit: 100 * time.Millisecond}
}

func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	rl := middleware.NewRateLimiter(s.RateLimit)
	r.Use(rl.Middleware())

	r.POST("/orders", s.placeOrder)
	r.POST("/trades", s.executeTrade)
	r.GET("/orders/:id", s.getOrder)
	r.GET("/balances/:user/:token", s.getBalance)
	r.GET("/stats", s.getStats)
	r.GET("/fee", s.getFee)
	r.GET("/users/:user/orders", s.getUserOrders)
	r.GET("/orderbook", s.getOrderBook)

	return r
}

func (s *HTTPServer) Run(addr string) error {
	return s.Router().Run(addr)
}

// Caller identity comes from the X-Client-ID header; the rate limiter
// already rejected requests without one.
func caller(c *gin.Context) string {
	return c.GetHeader(middleware.ClientIDHeader)
}

func (s *HTTPServer) placeOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.Eng.PlaceLimitOrder(c.Request.Context(), caller(c), domain.Side(req.Side), req.Pair, req.Amount, req.Price)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.PlaceOrderResponse{OrderID: id})
}

func (s *HTTPServer) executeTrade(c *gin.Context) {
	var req dto.ExecuteTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := s.Eng.ExecuteTrade(c.Request.Context(), caller(c), req.BuyOrderID, req.SellOrderID, req.Amount)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ConvertReceipt(receipt))
}

func (s *HTTPServer) getOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	o, err := s.Eng.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.GetOrderResponse{Order: dto.ConvertOrder(o)})
}

func (s *HTTPServer) getBalance(c *gin.Context) {
	user := c.Param("user")
	token := c.Param("token")
	bal := s.Eng.GetUserBalance(c.Request.Context(), user, token)
	c.JSON(http.StatusOK, dto.BalanceResponse{
		User:         user,
		Token:        token,
		Balance:      bal,
		BalanceHuman: dto.Display(bal),
	})
}

func (s *HTTPServer) getStats(c *gin.Context) {
	stats := s.Eng.GetDexStats(c.Request.Context())
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalVolume: stats.TotalVolume,
		TotalFees:   stats.TotalFees,
		NextOrderID: stats.NextOrderID,
	})
}

func (s *HTTPServer) getFee(c *gin.Context) {
	amount, err := strconv.ParseUint(c.Query("amount"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		return
	}
	c.JSON(http.StatusOK, dto.FeeResponse{
		Amount: amount,
		Fee:    s.Eng.CalculateFee(amount),
	})
}

func (s *HTTPServer) getUserOrders(c *gin.Context) {
	user := c.Param("user")
	ids := s.Eng.GetUserOrders(c.Request.Context(), user)
	c.JSON(http.StatusOK, dto.UserOrdersResponse{User: user, OrderIDs: ids})
}

func (s *HTTPServer) getOrderBook(c *gin.Context) {
	pair := c.Query("pair")
	ob := s.Eng.GetOrderBook(c.Request.Context(), pair)
	c.JSON(http.StatusOK, dto.OrderBookResponse{
		Pair: ob.Pair,
		Bids: dto.ConvertOrders(ob.Bids),
		Asks: dto.ConvertOrders(ob.Asks),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSameUser),
		errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
