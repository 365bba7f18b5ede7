package users

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

// Directory 是 users handler 需要的使用者服務；*service.Directory 實作此介面
type Directory interface {
	Register(ctx context.Context, name, email, password string, isAdmin bool) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	Get(ctx context.Context, userID int) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error
	ResetPassword(ctx context.Context, userID int) (string, error)
}

func authResponse(res *service.AuthResult) api.AuthResponse {
	return api.AuthResponse{UserResponse: api.NewUserResponse(res.User), Token: res.Token}
}

// @Summary     Register a new user
// @Description 建立新帳號並回傳令牌 (Email 會自動轉小寫)；只有帶管理員令牌時 isAdmin 才會生效
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateUserRequest true "註冊資料"
// @Success     201  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse "資料錯誤或 Email 已被使用"
// @Failure     500  {object} api.ErrorResponse
// @Router      /users [post]
func RegisterHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		// 非管理員建立的帳號一律為一般使用者
		isAdmin := false
		if claims, ok := middleware.Claims(c); ok && claims.IsAdmin() {
			isAdmin = req.IsAdmin
		}

		res, err := dir.Register(c.Request().Context(), req.Name, req.Email, req.Password, isAdmin)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, authResponse(res))
	}
}

// @Summary     Login
// @Description 使用 Email 與密碼登入，回傳令牌與使用者資料
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     429  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		res, err := dir.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, authResponse(res))
	}
}

// @Summary     Get my profile
// @Description 回傳目前登入使用者的資料
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/profile [get]
func ProfileHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, _ := middleware.Claims(c)
		user, err := dir.Get(c.Request().Context(), claims.UserID)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Change my password
// @Description 驗證舊密碼後更新目前使用者的密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateMyPasswordRequest true "舊密碼與新密碼"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/profile/password [patch]
func UpdateMyPasswordHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateMyPasswordRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return handler.RespondError(c, err)
		}
		claims, _ := middleware.Claims(c)
		if err := dir.ChangePassword(c.Request().Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated"})
	}
}

// @Summary     List users
// @Description 管理員取得所有使用者
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users [get]
func ListUsersHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := dir.List(c.Request().Context())
		if err != nil {
			return handler.RespondError(c, err)
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Security    BearerAuth
// @Router      /users/{id} [get]
func GetUserHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		user, err := dir.Get(c.Request().Context(), id)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Reset user password
// @Description 由管理員重置特定使用者的密碼，並回傳新的隨機密碼
// @Tags        users
// @Produce     json
// @Param       id  path     int true "使用者 ID"
// @Success     200 {object} api.ResetUserPasswordResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{id}/reset-password [post]
func ResetUserPasswordHandler(dir Directory) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := handler.ParamID(c, "id")
		if err != nil {
			return handler.RespondError(c, err)
		}
		pwd, err := dir.ResetPassword(c.Request().Context(), id)
		if err != nil {
			return handler.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.ResetUserPasswordResponse{NewPassword: pwd})
	}
}
