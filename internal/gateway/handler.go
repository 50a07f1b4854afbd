package gateway

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

// check validates one part of an incoming request.
type check func(c *gin.Context) error

func pathID(c *gin.Context) error {
	var uri request.ByIDRequest
	return c.ShouldBindUri(&uri)
}

// jsonBody validates the body against T and caches it for forwarding.
func jsonBody[T any]() check {
	return func(c *gin.Context) error {
		var v T
		return c.ShouldBindBodyWith(&v, binding.JSON)
	}
}

func query[T any]() check {
	return func(c *gin.Context) error {
		var v T
		return c.ShouldBindQuery(&v)
	}
}

// bookingState rejects unknown booking states before they reach the server.
func bookingState(c *gin.Context) error {
	var q bookingHttp.ListBookingsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		return err
	}
	_, err := booking.ParseState(q.State)
	return err
}

// Handler validates requests and hands them to the Forwarder.
type Handler struct {
	fwd *Forwarder
}

func NewHandler(fwd *Forwarder) *Handler {
	return &Handler{fwd: fwd}
}

// Pass runs the checks in order and forwards the request once all of them succeed.
func (h *Handler) Pass(checks ...check) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, chk := range checks {
			if err := chk(c); err != nil {
				var appErr *apperror.AppError
				if errors.As(err, &appErr) {
					response.Error(c, err)
				} else {
					response.BadRequest(c, err)
				}
				return
			}
		}
		h.fwd.Forward(c)
	}
}
