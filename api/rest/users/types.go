package users

import (
	"time"

	"codeberg.org/algorave/errorhandler/api/rest/pagination"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

type ListResponse struct {
	Users      []UserResponse  `json:"users"`
	Pagination pagination.Meta `json:"pagination"`
}
