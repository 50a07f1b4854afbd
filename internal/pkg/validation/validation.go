package validation

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/timestamp"
)

// Now is the clock used by the futureorpresent tag.
var Now = time.Now

var once sync.Once

// Engine returns gin's validator with the ShareIt tags registered.
func Engine() *validator.Validate {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		panic("gin binding validator is not go-playground/validator")
	}
	once.Do(func() {
		if err := RegisterOn(v); err != nil {
			panic(err)
		}
	})
	return v
}

// RegisterOn adds the timestamp type adapter and the ShareIt tags to v.
func RegisterOn(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if ts, ok := field.Interface().(timestamp.Time); ok {
			return ts.Time
		}
		return nil
	}, timestamp.Time{})

	if err := v.RegisterValidation("futureorpresent", futureOrPresent); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", notBlank)
}

// futureOrPresent accepts instants not earlier than the current second.
func futureOrPresent(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !t.Before(Now().UTC().Truncate(time.Second))
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}
