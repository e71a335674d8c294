package api

// swagger:model api.User
type User struct {
	ID          int    `json:"id" example:"1"`
	Name        string `json:"name" example:"Alice"`
	Email       string `json:"email" example:"alice@example.com"`
	Password    string `json:"password" example:"Secret123!"`
	AccountType string `json:"account_type" example:"individual"`
	Role        string `json:"role" example:"member"`
}
