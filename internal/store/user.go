package store

import (
	"context"
	"errors"
	"fmt"

	"users-api/internal/database"
	"users-api/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrUserNotFound 表示指定 id 的資料列不存在
var ErrUserNotFound = errors.New("user not found")

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password, account_type, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		u.Name,
		u.Email,
		u.Password,
		u.AccountType,
		u.Role,
	)
	if err := row.Scan(&u.ID); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, password, account_type, role
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.AccountType,
		&u.Role,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("GetUserByID: %w", ErrUserNotFound)
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// UpdateUser 以 id 寫回所有欄位
func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET name = $1, email = $2, password = $3, account_type = $4, role = $5
		 WHERE id = $6`,
		u.Name,
		u.Email,
		u.Password,
		u.AccountType,
		u.Role,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateUser: %w", ErrUserNotFound)
	}
	return nil
}

func DeleteUser(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteUser: %w", ErrUserNotFound)
	}
	return nil
}
