// File: internal/api/update_user_request.go
package api

// UpdateUserRequest 僅套用非空欄位，空字串視為未提供
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name        string `query:"name" form:"name" json:"name" validate:"omitempty,max=50" example:"Alice"`
	Email       string `query:"email" form:"email" json:"email" validate:"omitempty,max=100" example:"alice@example.com"`
	Password    string `query:"password" form:"password" json:"password" validate:"omitempty,max=100" example:"Secret123!"`
	AccountType string `query:"account_type" form:"account_type" json:"account_type" validate:"omitempty,max=50" example:"family"`
	Role        string `query:"role" form:"role" json:"role" validate:"omitempty,max=50" example:"admin"`
}
