package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/response"
	"bazar/internal/domain/entity"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PurchaseHandler holds dependencies for purchase-related handlers.
type PurchaseHandler struct {
	uc     usecase.PurchaseUsecase
	logger *slog.Logger
}

// NewPurchaseHandler is the constructor for PurchaseHandler, injected by Fx.
func NewPurchaseHandler(uc usecase.PurchaseUsecase, logger *slog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreatePurchase buys a product for the requester.
func (h *PurchaseHandler) CreatePurchase(c echo.Context) error {
	var input *usecase.CreatePurchaseInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid purchase input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	purchase, err := h.uc.CreatePurchase(c.Request().Context(), middleware.RequesterFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, purchase, "Purchase completed successfully")
}

// ListPurchases returns purchases. With a `purchaser` query parameter it
// lists that account's history (self or admin); without one it lists every
// purchase, which only admins may do.
func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	requester := middleware.RequesterFrom(c)

	var purchases []*entity.Purchase
	var err error
	if purchaser := c.QueryParam("purchaser"); purchaser != "" {
		purchases, err = h.uc.ListPurchasesByPurchaser(c.Request().Context(), requester, purchaser)
	} else {
		purchases, err = h.uc.ListPurchases(c.Request().Context(), requester)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchases, "Purchases retrieved successfully")
}

// ListMyPurchases returns the requester's purchase history.
func (h *PurchaseHandler) ListMyPurchases(c echo.Context) error {
	requester := middleware.RequesterFrom(c)

	purchases, err := h.uc.ListPurchasesByPurchaser(c.Request().Context(), requester, requester.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchases, "Purchases retrieved successfully")
}

// ListProductPurchases returns all sales of a product; the owner of its shop
// or an admin only.
func (h *PurchaseHandler) ListProductPurchases(c echo.Context) error {
	purchases, err := h.uc.ListProductPurchases(c.Request().Context(), middleware.RequesterFrom(c), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchases, "Purchases retrieved successfully")
}

// ListShopPurchases returns all sales of a shop; its owner or an admin only.
func (h *PurchaseHandler) ListShopPurchases(c echo.Context) error {
	purchases, err := h.uc.ListShopPurchases(c.Request().Context(), middleware.RequesterFrom(c), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, purchases, "Purchases retrieved successfully")
}
