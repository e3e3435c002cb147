package handler

import (
	"net/http"
	"strconv"

	"github.com/Astemirdum/pinjam-rt/loans/internal/errs"
	"github.com/Astemirdum/pinjam-rt/loans/internal/model"
	md "github.com/Astemirdum/pinjam-rt/pkg/middleware"
	"github.com/Astemirdum/pinjam-rt/pkg/validate"
	_ "github.com/Astemirdum/pinjam-rt/swagger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	loanSvc LoanService
	log     *zap.Logger
}

func New(loanSvc LoanService, log *zap.Logger) *Handler {
	return &Handler{
		loanSvc: loanSvc,
		log:     log.Named("handler"),
	}
}

func NewValidator() echo.Validator {
	return validate.NewCustomValidator(validate.WithRule("itemtype", func(fl validator.FieldLevel) bool {
		return model.ItemType(fl.Field().String()).Valid()
	}))
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = NewValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	h.Register(api)
	return e
}

// Register mounts the loan routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/items", h.ListItemTypes)
	g.POST("/loans", h.SubmitLoan)
	g.GET("/loans/pending", h.ListPending)
	g.GET("/loans/history", h.ListHistory)
	g.DELETE("/loans/history", h.ClearHistory)
	g.GET("/loans/:id", h.GetLoan)
	g.POST("/loans/:id/decision", h.DecideLoan)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ListItemTypes godoc
// @Summary List loanable item types
// @Tags items
// @Produce json
// @Success 200 {array} string
// @Router /items [get]
func (h *Handler) ListItemTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.loanSvc.ItemTypes(c.Request().Context()))
}

// SubmitLoan godoc
// @Summary Submit a loan request
// @Tags loans
// @Accept json
// @Produce json
// @Param request body model.SubmitRequest true "loan request"
// @Success 201 {object} model.Loan
// @Failure 400 {object} echo.HTTPError
// @Router /loans [post]
func (h *Handler) SubmitLoan(c echo.Context) error {
	var req model.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.loanSvc.Submit(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// ListPending godoc
// @Summary Pending loans in submission order
// @Tags loans
// @Produce json
// @Success 200 {array} model.Loan
// @Router /loans/pending [get]
func (h *Handler) ListPending(c echo.Context) error {
	items, err := h.loanSvc.ListPending(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ListHistory godoc
// @Summary Decided loans, newest first
// @Tags loans
// @Produce json
// @Success 200 {array} model.Loan
// @Router /loans/history [get]
func (h *Handler) ListHistory(c echo.Context) error {
	items, err := h.loanSvc.ListHistory(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ClearHistory godoc
// @Summary Permanently remove decided loans
// @Tags loans
// @Produce json
// @Success 200 {object} model.ClearHistoryResponse
// @Router /loans/history [delete]
func (h *Handler) ClearHistory(c echo.Context) error {
	n, err := h.loanSvc.ClearHistory(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.ClearHistoryResponse{Cleared: n})
}

// GetLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path int true "loan id"
// @Success 200 {object} model.Loan
// @Failure 404 {object} echo.HTTPError
// @Router /loans/{id} [get]
func (h *Handler) GetLoan(c echo.Context) error {
	id, err := loanID(c)
	if err != nil {
		return err
	}
	loan, err := h.loanSvc.GetLoan(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

// DecideLoan godoc
// @Summary Approve or reject a pending loan
// @Tags loans
// @Accept json
// @Produce json
// @Param id path int true "loan id"
// @Param request body model.DecisionRequest true "decision"
// @Success 200 {object} model.Loan
// @Failure 400 {object} echo.HTTPError
// @Failure 404 {object} echo.HTTPError
// @Failure 409 {object} echo.HTTPError
// @Router /loans/{id}/decision [post]
func (h *Handler) DecideLoan(c echo.Context) error {
	id, err := loanID(c)
	if err != nil {
		return err
	}
	var req model.DecisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !req.Confirmed {
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrNotConfirmed.Error())
	}
	loan, err := h.loanSvc.Decide(c.Request().Context(), id, req.Outcome)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func loanID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid loan id")
	}
	return id, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
