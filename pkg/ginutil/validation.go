package ginutil

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var friendCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// ValidFriendCode reports whether code is 8 characters of A-Z0-9
func ValidFriendCode(code string) bool {
	return friendCodePattern.MatchString(code)
}

// RegisterValidators adds the custom binding tags to gin's validator engine
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("friendcode", func(fl validator.FieldLevel) bool {
		return ValidFriendCode(fl.Field().String())
	})
}
