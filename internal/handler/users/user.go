package users

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"users-api/internal/api"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	msgUserNotFound = "User not found"
	msgUserDeleted  = "User deleted successfully"
	msgInternal     = "internal server error"
)

// UserService 是 handler 需要的 service 操作，found=false 代表資料不存在
type UserService interface {
	CreateUser(ctx context.Context, req api.CreateUserRequest) (*api.User, error)
	GetUserByID(ctx context.Context, id int) (*api.User, bool, error)
	UpdateUser(ctx context.Context, id int, req api.UpdateUserRequest) (*api.User, bool, error)
	DeleteUser(ctx context.Context, id int) (bool, error)
}

// bindRequest 先綁定 query string，再綁定 form / JSON body（body 優先）
func bindRequest(c echo.Context, req any) error {
	b := &echo.DefaultBinder{}
	if err := b.BindQueryParams(c, req); err != nil {
		return err
	}
	return b.BindBody(c, req)
}

func parseUserID(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("user_id"))
}

// validationMessage 只列出未通過的欄位名稱
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request data"
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return "invalid field: " + strings.Join(fields, ", ")
}

func unprocessable(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: msg})
}

// @Summary     Create a new user
// @Description 建立新使用者，五個欄位皆為必填 (query string、form 或 JSON)
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       name         query string true "使用者姓名"
// @Param       email        query string true "使用者 Email"
// @Param       password     query string true "使用者密碼"
// @Param       account_type query string true "帳號類型 (individual / family)"
// @Param       role         query string true "角色 (admin / member)"
// @Success     200 {object} api.User
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/ [post]
func CreateUserHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := bindRequest(c, &req); err != nil {
			return unprocessable(c, "invalid request data")
		}
		if err := c.Validate(&req); err != nil {
			return unprocessable(c, validationMessage(err))
		}

		user, err := svc.CreateUser(c.Request().Context(), req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgInternal})
		}
		return c.JSON(http.StatusOK, user)
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       user_id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.User
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     422  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /users/{user_id} [get]
func GetUserHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return unprocessable(c, "invalid user ID")
		}
		user, found, err := svc.GetUserByID(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgInternal})
		}
		if !found {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgUserNotFound})
		}
		return c.JSON(http.StatusOK, user)
	}
}

// @Summary     Update a user by ID
// @Description 只更新有提供且非空的欄位
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       user_id      path  int    true  "使用者 ID"
// @Param       name         query string false "使用者姓名"
// @Param       email        query string false "使用者 Email"
// @Param       password     query string false "使用者密碼"
// @Param       account_type query string false "帳號類型"
// @Param       role         query string false "角色"
// @Success     200 {object} api.User
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [put]
func UpdateUserHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return unprocessable(c, "invalid user ID")
		}

		var req api.UpdateUserRequest
		if err := bindRequest(c, &req); err != nil {
			return unprocessable(c, "invalid request data")
		}
		if err := c.Validate(&req); err != nil {
			return unprocessable(c, validationMessage(err))
		}

		user, found, err := svc.UpdateUser(c.Request().Context(), id, req)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgInternal})
		}
		if !found {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgUserNotFound})
		}
		return c.JSON(http.StatusOK, user)
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除使用者
// @Tags        users
// @Produce     json
// @Param       user_id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.MessageResponse
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     422  {object}  api.ErrorResponse  "參數錯誤"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(svc UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUserID(c)
		if err != nil {
			return unprocessable(c, "invalid user ID")
		}
		deleted, err := svc.DeleteUser(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: msgInternal})
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgUserNotFound})
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgUserDeleted})
	}
}
