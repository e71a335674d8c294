// File: internal/model/user.go
package model

// User 對應 users 資料表的一筆資料
type User struct {
	ID          int    `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Email       string `db:"email" json:"email"`
	Password    string `db:"password" json:"password"`
	AccountType string `db:"account_type" json:"account_type"`
	Role        string `db:"role" json:"role"`
}
