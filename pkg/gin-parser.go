package pkg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ParseAndValidate(c *gin.Context, dto interface{}) error {
	if err := c.ShouldBindJSON(dto); err != nil {
		return err
	}
	return validate.Struct(dto)
}

// ParseAndValidateForm binds urlencoded or multipart form fields through their
// `form` tags before validating.
func ParseAndValidateForm(c *gin.Context, dto interface{}) error {
	if err := c.ShouldBind(dto); err != nil {
		return err
	}
	return validate.Struct(dto)
}

// ValidationMessage turns a validator error into a single human readable line.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct runs the shared validator on any struct carrying `validate` tags.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
