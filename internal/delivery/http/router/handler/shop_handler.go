package handler

import (
	"log/slog"
	"net/http"

	"bazar/internal/delivery/http/middleware"
	"bazar/internal/delivery/http/response"
	"bazar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ShopHandler holds dependencies for shop-related handlers.
type ShopHandler struct {
	uc     usecase.ShopUsecase
	logger *slog.Logger
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase, logger *slog.Logger) *ShopHandler {
	return &ShopHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListShops returns all shops. Public.
func (h *ShopHandler) ListShops(c echo.Context) error {
	shops, err := h.uc.ListShops(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "Shops retrieved successfully")
}

// GetShop returns one shop by slug. Public.
func (h *ShopHandler) GetShop(c echo.Context) error {
	shop, err := h.uc.GetShop(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "Shop retrieved successfully")
}

// ListMyShops returns the shops owned by the requester, or by the account
// named in the owner query parameter for admins.
func (h *ShopHandler) ListMyShops(c echo.Context) error {
	requester := middleware.RequesterFrom(c)

	owner := c.QueryParam("owner")
	if owner == "" {
		owner = requester.Email
	}

	shops, err := h.uc.ListShopsByOwner(c.Request().Context(), requester, owner)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "Shops retrieved successfully")
}

// CreateShop opens a new shop.
func (h *ShopHandler) CreateShop(c echo.Context) error {
	var input *usecase.CreateShopInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	shop, err := h.uc.CreateShop(c.Request().Context(), middleware.RequesterFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, shop, "Shop created successfully")
}

// UpdateShop applies partial changes to a shop.
func (h *ShopHandler) UpdateShop(c echo.Context) error {
	var input *usecase.UpdateShopInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop update input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	shop, err := h.uc.UpdateShop(c.Request().Context(), middleware.RequesterFrom(c), c.Param("slug"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "Shop updated successfully")
}

// DeleteShop removes a shop and its products.
func (h *ShopHandler) DeleteShop(c echo.Context) error {
	if err := h.uc.DeleteShop(c.Request().Context(), middleware.RequesterFrom(c), c.Param("slug")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Shop deleted"}, "Shop deleted successfully")
}

// ShopQR serves a PNG QR code linking to the shop's storefront page. Public.
func (h *ShopHandler) ShopQR(c echo.Context) error {
	png, err := h.uc.ShopQR(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
