package bills

import (
	"context"
	"net/http"

	"mess-booking/internal/api"
	"mess-booking/internal/handler"
	"mess-booking/internal/middleware"
	"mess-booking/internal/model"
	"mess-booking/internal/service"

	"github.com/labstack/echo/v4"
)

// Billing 是帳單服務；*service.Billing 實作此介面
type Billing interface {
	Generate(ctx context.Context, userID, month, year int) (*model.Bill, error)
	GenerateAll(ctx context.Context, month, year int) (service.BatchResult, error)
	Get(ctx context.Context, billID, requesterID int, role model.Role) (*model.Bill, error)
	MarkPaid(ctx context.Context, billID int) (*model.Bill, error)
	ListForUser(ctx context.Context, userID int) ([]model.Bill, error)
	ListAll(ctx context.Context) ([]model.BillWithUser, error)
}

// @Summary     Generate a monthly bill
// @Description 管理員依使用者該月的訂餐紀錄產生帳單；同月份已有帳單時回傳 400
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       body body     api.GenerateBillRequest true "使用者與月份"
// @Success     201  {object} model.Bill
// @Failure     400  {object} api.ErrorResponse "資料錯誤或帳單已存在"
// @Failure     404  {object} api.ErrorResponse "使用者不存在"
// @Security    BearerAuth
// @Router      /bills/generate [post]
func GenerateHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.GenerateBillRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		bill, err := b.Generate(c.Request().Context(), req.UserID, req.Month, req.Year)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, bill)
	}
}

// @Summary     Generate bills for every user
// @Description 管理員為所有使用者產生該月帳單；已存在的帳單計為 skipped
// @Tags        bills
// @Accept      json
// @Produce     json
// @Param       body body     api.GenerateAllBillsRequest true "月份"
// @Success     200  {object} api.GenerateAllBillsResponse
// @Failure     400  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bills/generate-all [post]
func GenerateAllHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.GenerateAllBillsRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		res, err := b.GenerateAll(c.Request().Context(), req.Month, req.Year)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.GenerateAllBillsResponse{
			Generated: res.Generated,
			Skipped:   res.Skipped,
			Failed:    res.Failed,
		})
	}
}

// @Summary     My bills
// @Tags        bills
// @Produce     json
// @Success     200 {array}  model.Bill
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bills/my-bills [get]
func MyBillsHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := middleware.Claims(c)
		return listForUser(c, b, claims.UserID)
	}
}

// @Summary     Bills of a user
// @Tags        bills
// @Produce     json
// @Param       userId path     int true "使用者 ID"
// @Success     200    {array}  model.Bill
// @Failure     400    {object} api.ErrorResponse
// @Failure     403    {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bills/user/{userId} [get]
func UserBillsHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := handler.ParamID(c, "userId")
		if err != nil {
			return handler.RespondError(c, err)
		}
		return listForUser(c, b, userID)
	}
}

func listForUser(c echo.Context, b Billing, userID int) error {
	list, err := b.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return handler.RespondError(c, err)
	}
	if list == nil {
		list = []model.Bill{}
	}
	return c.JSON(http.StatusOK, list)
}

// @Summary     Get a bill
// @Description 只有帳單擁有者或管理員可以查看
// @Tags        bills
// @Produce     json
// @Param       id  path     int true "帳單 ID"
// @Success     200 {object} model.Bill
// @Failure     400 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bills/{id} [get]
func GetHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		claims, _ := middleware.Claims(c)
		bill, err := b.Get(c.Request().Context(), id, claims.UserID, claims.Role)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, bill)
	}
}

// @Summary     List all bills
// @Description 管理員查看所有帳單，附帶使用者姓名與 Email
// @Tags        bills
// @Produce     json
// @Success     200 {array}  model.BillWithUser
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bills [get]
func ListHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := b.ListAll(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		if list == nil {
			list = []model.BillWithUser{}
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Mark a bill as paid
// @Description 已付款的帳單再次設定仍回傳 200
// @Tags        bills
// @Produce     json
// @Param       id  path     int true "帳單 ID"
// @Success     200 {object} model.Bill
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /bills/{id}/pay [put]
func MarkPaidHandler(b Billing) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		bill, err := b.MarkPaid(c.Request().Context(), id)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, bill)
	}
}
