package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	reportingservice "mercato/contexts/insights/reporting-service"
	reportingerrors "mercato/contexts/insights/reporting-service/domain/errors"
	reportinghttp "mercato/contexts/insights/reporting-service/transport/http"
	marketplaceengine "mercato/contexts/trading-core/marketplace-engine"
	engineerrors "mercato/contexts/trading-core/marketplace-engine/domain/errors"
	enginehttp "mercato/contexts/trading-core/marketplace-engine/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "mercato/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	engine    marketplaceengine.Module
	reporting reportingservice.Module
}

func New(
	engine marketplaceengine.Module,
	reporting reportingservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		engine:    engine,
		reporting: reporting,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/market/v1/users", s.handleRegisterUser)
	s.mux.HandleFunc("GET /api/market/v1/users/{principal}", s.handleLookupUser)
	s.mux.HandleFunc("GET /api/market/v1/users/{principal}/registered", s.handleIsRegistered)
	s.mux.HandleFunc("POST /api/market/v1/users/role", s.handleChangeRole)

	s.mux.HandleFunc("POST /api/market/v1/products", s.handlePublishProduct)
	s.mux.HandleFunc("GET /api/market/v1/products", s.handleListMyProducts)
	s.mux.HandleFunc("GET /api/market/v1/products/{product_id}", s.handleGetProduct)
	s.mux.HandleFunc("GET /api/market/v1/sellers/{seller}/products", s.handleListSellerProducts)

	s.mux.HandleFunc("POST /api/market/v1/orders", s.handleCreateOrder)
	s.mux.HandleFunc("GET /api/market/v1/orders/{order_id}", s.handleGetOrder)
	s.mux.HandleFunc("POST /api/market/v1/orders/{order_id}/ship", s.handleMarkShipped)
	s.mux.HandleFunc("POST /api/market/v1/orders/{order_id}/receive", s.handleMarkReceived)

	s.mux.HandleFunc("GET /api/reports/v1/top-sellers", s.handleTopSellers)
	s.mux.HandleFunc("GET /api/reports/v1/top-buyers", s.handleTopBuyers)
	s.mux.HandleFunc("GET /api/reports/v1/best-selling-products", s.handleBestSellingProducts)
	s.mux.HandleFunc("GET /api/reports/v1/categories", s.handleCategoryBreakdown)
	s.mux.HandleFunc("GET /api/reports/v1/users/{principal}/activity", s.handleUserActivity)
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req enginehttp.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.RegisterUserHandler(r.Context(), caller, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLookupUser(w http.ResponseWriter, r *http.Request) {
	principal := r.PathValue("principal")
	resp, err := s.engine.Handler.LookupUserHandler(r.Context(), principal)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIsRegistered(w http.ResponseWriter, r *http.Request) {
	principal := r.PathValue("principal")
	resp, err := s.engine.Handler.IsRegisteredHandler(r.Context(), principal)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req enginehttp.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.ChangeRoleHandler(r.Context(), caller, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublishProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req enginehttp.PublishProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.PublishProductHandler(r.Context(), caller, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMyProducts(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	resp, err := s.engine.Handler.ListMyProductsHandler(r.Context(), caller)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSellerProducts(w http.ResponseWriter, r *http.Request) {
	seller := r.PathValue("seller")
	resp, err := s.engine.Handler.ListProductsBySellerHandler(r.Context(), seller)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}
	resp, err := s.engine.Handler.GetProductHandler(r.Context(), productID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var req enginehttp.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.CreateOrderHandler(r.Context(), caller, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseID(w, r, "order_id")
	if !ok {
		return
	}
	resp, err := s.engine.Handler.GetOrderHandler(r.Context(), orderID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkShipped(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	orderID, ok := parseID(w, r, "order_id")
	if !ok {
		return
	}
	resp, err := s.engine.Handler.MarkShippedHandler(r.Context(), caller, orderID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMarkReceived(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	orderID, ok := parseID(w, r, "order_id")
	if !ok {
		return
	}
	resp, err := s.engine.Handler.MarkReceivedHandler(r.Context(), caller, orderID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopSellers(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.TopSellersHandler(r.Context(), limit)
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopBuyers(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.TopBuyersHandler(r.Context(), limit)
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBestSellingProducts(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}
	resp, err := s.reporting.Handler.BestSellingProductsHandler(r.Context(), limit)
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	resp, err := s.reporting.Handler.CategoryBreakdownHandler(r.Context())
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserActivity(w http.ResponseWriter, r *http.Request) {
	principal := r.PathValue("principal")
	resp, err := s.reporting.Handler.UserActivityHandler(r.Context(), principal)
	if err != nil {
		writeReportingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEngineDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engineerrors.ErrAlreadyRegistered):
		writeEngineError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, engineerrors.ErrNotRegistered):
		writeEngineError(w, http.StatusNotFound, "not_registered", err.Error())
	case errors.Is(err, engineerrors.ErrWrongRole):
		writeEngineError(w, http.StatusForbidden, "wrong_role", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidRoleChange):
		writeEngineError(w, http.StatusUnprocessableEntity, "invalid_role_change", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidQuantity):
		writeEngineError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidPrice):
		writeEngineError(w, http.StatusBadRequest, "invalid_price", err.Error())
	case errors.Is(err, engineerrors.ErrInsufficientStock):
		writeEngineError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, engineerrors.ErrProductNotFound):
		writeEngineError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, engineerrors.ErrNoProducts):
		writeEngineError(w, http.StatusNotFound, "no_products", err.Error())
	case errors.Is(err, engineerrors.ErrOrderNotFound):
		writeEngineError(w, http.StatusNotFound, "order_not_found", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidState):
		writeEngineError(w, http.StatusConflict, "invalid_state", err.Error())
	default:
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeReportingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reportingerrors.ErrInvalidLimit):
		writeReportingError(w, http.StatusBadRequest, "invalid_limit", err.Error())
	case errors.Is(err, reportingerrors.ErrUserUnknown):
		writeReportingError(w, http.StatusNotFound, "user_unknown", err.Error())
	default:
		writeReportingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEngineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeReportingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, reportinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if caller == "" {
		writeEngineError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return caller, true
}

func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		writeEngineError(w, http.StatusBadRequest, "invalid_id", name+" must be a non-negative integer")
		return 0, false
	}
	return id, true
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		writeReportingError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		return 0, false
	}
	return limit, true
}
