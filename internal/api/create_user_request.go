package api

// CreateUserRequest 五個欄位都必須出現，但允許空字串（nil 代表未提供）
// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name        *string `query:"name" form:"name" json:"name" validate:"required,max=50" example:"Alice"`
	Email       *string `query:"email" form:"email" json:"email" validate:"required,max=100" example:"alice@example.com"`
	Password    *string `query:"password" form:"password" json:"password" validate:"required,max=100" example:"Secret123!"`
	AccountType *string `query:"account_type" form:"account_type" json:"account_type" validate:"required,max=50" example:"individual"`
	Role        *string `query:"role" form:"role" json:"role" validate:"required,max=50" example:"member"`
}
