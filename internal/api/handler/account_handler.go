package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skryensya/Finances-API/internal/api/metrics"
	"github.com/Skryensya/Finances-API/internal/core/domain"
	"github.com/Skryensya/Finances-API/internal/core/ports"
)

// AccountHandler handles ownership-scoped account CRUD.
type AccountHandler struct {
	accountService ports.AccountService
}

func NewAccountHandler(accountService ports.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type createAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

type editAccountRequest struct {
	Name *string `json:"name,omitempty"`
}

// pathAccountID parses the :id path parameter. A non-numeric id can never
// match a record, so it reports the same not-found as a missing one.
func pathAccountID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrAccountNotFound
	}
	return id, nil
}

// List handles GET /accounts.
//
// @Summary      List the requester's accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  map[string]string
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	accounts, err := h.accountService.List(c.Request().Context(), userID)
	if err != nil {
		metrics.AccountOpsTotal.WithLabelValues("list", "error").Inc()
		return err
	}

	metrics.AccountOpsTotal.WithLabelValues("list", "ok").Inc()
	return c.JSON(http.StatusOK, accounts)
}

// Get handles GET /accounts/getOne/:id.
//
// @Summary      Get one of the requester's accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /accounts/getOne/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	accountID, err := pathAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.Get(c.Request().Context(), userID, accountID)
	if err != nil {
		metrics.AccountOpsTotal.WithLabelValues("get", "error").Inc()
		return err
	}

	metrics.AccountOpsTotal.WithLabelValues("get", "ok").Inc()
	return c.JSON(http.StatusOK, account)
}

// Create handles POST /accounts/create.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account details"
// @Success      201   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /accounts/create [post]
func (h *AccountHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.accountService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		metrics.AccountOpsTotal.WithLabelValues("create", "error").Inc()
		return err
	}

	metrics.AccountOpsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, account)
}

// Edit handles PATCH /accounts/edit/:id. The empty-update check runs before
// the id is even parsed, so "no changes" wins regardless of ownership.
//
// @Summary      Edit an account's name
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Account id"
// @Param        body  body      editAccountRequest  true  "Fields to update"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /accounts/edit/{id} [patch]
func (h *AccountHandler) Edit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req editAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	upd := ports.AccountUpdate{Name: req.Name}
	if upd.Empty() {
		return domain.ErrNoChanges
	}

	accountID, err := pathAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.Edit(c.Request().Context(), userID, accountID, upd)
	if err != nil {
		metrics.AccountOpsTotal.WithLabelValues("edit", "error").Inc()
		return err
	}

	metrics.AccountOpsTotal.WithLabelValues("edit", "ok").Inc()
	return c.JSON(http.StatusOK, account)
}

// Delete handles DELETE /accounts/delete/:id.
//
// @Summary      Delete an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /accounts/delete/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	accountID, err := pathAccountID(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.Delete(c.Request().Context(), userID, accountID)
	if err != nil {
		metrics.AccountOpsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	metrics.AccountOpsTotal.WithLabelValues("delete", "ok").Inc()
	return c.JSON(http.StatusOK, account)
}
