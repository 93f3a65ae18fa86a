package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"product-catalog/internal/middleware"
	"product-catalog/internal/repository"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Get("/active", h.GetActive)
		r.Get("/search", h.Search)
		r.Get("/name/{name}", h.GetByName)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Create decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	resp, err := h.productService.Create(r.Context(), req)
	if err != nil {
		h.renderError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/v1/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req service.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Update decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	resp, err := h.productService.Update(r.Context(), id, req)
	if err != nil {
		h.renderError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), id); err != nil {
		h.renderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetAll handles GET /api/v1/products
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAll(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetActive handles GET /api/v1/products/active
func (h *ProductHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAllActive(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/v1/products/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.GetByID(r.Context(), id)
	if err != nil {
		h.renderError(w, err)
		return
	}
	if product == nil {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// GetByName handles GET /api/v1/products/name/{name}
func (h *ProductHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.renderError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Search handles GET /api/v1/products/search?term=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.SearchByTerm(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		h.renderError(w, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid product id")
		return 0, false
	}
	return id, true
}

// renderError translates service errors to HTTP status codes and the
// uniform error body
func (h *ProductHandler) renderError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		middleware.RespondWithFieldErrors(w, http.StatusBadRequest, "Validation failed", validationErr.FieldErrors)
	case errors.Is(err, service.ErrInvalidProductStatus):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProductAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
	default:
		h.logger.Error("Unhandled service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
