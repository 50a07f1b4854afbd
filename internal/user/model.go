package user

import (
	"net/http"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "user not found")
	ErrDuplicateEmail = apperror.New(http.StatusConflict, "email already used")
	ErrNameRequired   = apperror.New(http.StatusBadRequest, "name can't be empty")
	ErrEmailRequired  = apperror.New(http.StatusBadRequest, "email can't be empty")
)

// User is a ShareIt member. Email is unique across users.
type User struct {
	ID    int64
	Name  string
	Email string
}
