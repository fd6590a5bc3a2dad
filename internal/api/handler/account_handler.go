package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coderun/account-service/internal/api/metrics"
	"github.com/coderun/account-service/internal/core/domain"
	"github.com/coderun/account-service/internal/core/ports"
)

// AccountHandler handles HTTP requests for the account lifecycle.
// Domain errors are returned as-is and mapped centrally by the API error
// handler.
type AccountHandler struct {
	service    ports.AccountService
	successURL string
}

// NewAccountHandler builds an AccountHandler. baseURL is the public origin
// the post-confirmation redirect points at.
func NewAccountHandler(service ports.AccountService, baseURL string) *AccountHandler {
	return &AccountHandler{
		service:    service,
		successURL: strings.TrimRight(baseURL, "/") + "/account/success",
	}
}

// Signup registers a new account.
//
// @Summary      Sign up
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details (password is the hex SHA-256 of the real password)"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/signup [post]
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Signup(c.Request().Context(), req.Email, req.Password, req.Name); err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	return c.JSON(http.StatusOK, dataResponse{Data: "success"})
}

// Login authenticates an account. The token field is present only once the
// account has confirmed its email address.
//
// @Summary      Log in
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{User: toUserResponse(user), Token: token})
}

// NewPassword issues a temporary password and emails it to the account.
//
// @Summary      Request a new password
// @Tags         account
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        user_id  formData  integer  true  "Account id"
// @Param        email    formData  string   true  "Account email"
// @Success      200      {object}  sendResponse
// @Failure      400      {object}  errorResponse
// @Router       /api/newpassword [post]
func (h *AccountHandler) NewPassword(c echo.Context) error {
	userID, err := strconv.ParseInt(c.FormValue("user_id"), 10, 64)
	if err != nil {
		return domain.ErrRouteMismatch
	}
	email := c.FormValue("email")

	if err := h.service.ResetPassword(c.Request().Context(), userID, email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sendResponse{Send: "success"})
}

// EmailCheck reports whether an address is free to register.
//
// @Summary      Check email availability
// @Tags         account
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  dataResponse
// @Failure      400    {object}  errorResponse
// @Router       /api/emailcheck/{email} [get]
func (h *AccountHandler) EmailCheck(c echo.Context) error {
	email := c.Param("email")
	if err := h.service.CheckEmail(c.Request().Context(), email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: email})
}

// ResendConfirm re-sends the confirmation email. Past the per-account resend
// limit it answers 200 {"data":"fail"} without sending.
//
// @Summary      Resend confirmation email
// @Tags         account
// @Produce      json
// @Param        email  path      string  true  "Email address"
// @Success      200    {object}  dataResponse
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/emailconfirm/message/{email} [get]
func (h *AccountHandler) ResendConfirm(c echo.Context) error {
	email := c.Param("email")

	sent, err := h.service.ResendConfirmation(c.Request().Context(), email)
	if err != nil {
		return err
	}
	if !sent {
		metrics.ResendRefusedTotal.Inc()
		return c.JSON(http.StatusOK, dataResponse{Data: "fail"})
	}
	return c.JSON(http.StatusOK, dataResponse{Data: "success"})
}

// ConfirmRedirect confirms the address from the emailed link and redirects
// the browser to the success page.
//
// @Summary      Confirm email address
// @Tags         account
// @Param        email    path  string   true  "Email address"
// @Param        user_id  path  integer  true  "Account id"
// @Success      302
// @Failure      400  {object}  errorResponse
// @Router       /api/emailconfirm/redirect/{email}/{user_id} [get]
func (h *AccountHandler) ConfirmRedirect(c echo.Context) error {
	email := c.Param("email")
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return domain.ErrRouteMismatch
	}

	if err := h.service.ConfirmEmail(c.Request().Context(), email, userID); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, h.successURL)
}

// Me returns the account behind the bearer token.
//
// @Summary      Current account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	token, _ := c.Get("token").(string)
	if token == "" {
		return domain.ErrUnauthenticated
	}

	user, err := h.service.CurrentUser(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
