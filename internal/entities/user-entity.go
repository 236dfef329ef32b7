package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type User struct {
	ID             uint64    `db:"id" json:"id"`
	Login          string    `db:"login" json:"login"`
	Fio            string    `db:"fio" json:"fio"`
	Phone          string    `db:"phone" json:"phone"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	IsPrimaryAdmin bool      `db:"is_primary_admin" json:"is_primary_admin"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
	DeletedAt      null.Time `db:"deleted_at" json:"-"`
}
