package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/tshirtshop/backend/internal/domain/fulfillment"
	"github.com/tshirtshop/backend/internal/interfaces/http/dto"
)

// TagPastOrPresent accepts a YYYY-MM-DD string (or time.Time) not after today
const TagPastOrPresent = "pastorpresent"

// validationClock is the clock the pastorpresent rule compares against
var validationClock = time.Now

// SetupValidator configures gin's validator: JSON field names in errors
// and the custom date rule
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation(TagPastOrPresent, validatePastOrPresent)
	}
}

func validatePastOrPresent(fl validator.FieldLevel) bool {
	today := fulfillment.DateOf(validationClock())
	switch v := fl.Field().Interface().(type) {
	case string:
		if v == "" {
			return true
		}
		d, err := fulfillment.ParseDate(v)
		if err != nil {
			return false
		}
		return !d.After(today)
	case time.Time:
		return !fulfillment.DateOf(v).After(today)
	}
	return false
}

// FormatValidationErrors lists one detail per failed field, keyed by JSON name
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	errors.As(err, &fieldErrs)

	details := make([]dto.ValidationDetail, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400. Bodies that fail to decode get
// ERR_INVALID_JSON instead of field details.
func HandleValidationError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Malformed request body", requestID))
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
}

var fieldMessages = map[string]string{
	"required":       "This field is required",
	"email":          "Invalid email format",
	"oneof":          "Must be one of: %s",
	"gte":            "Must be greater than or equal to %s",
	"min":            "Must be at least %s",
	"max":            "Must be at most %s",
	TagPastOrPresent: "Must be a YYYY-MM-DD date not in the future",
}

func fieldMessage(fe validator.FieldError) string {
	format, ok := fieldMessages[fe.Tag()]
	if !ok {
		return "Invalid value"
	}
	if !strings.Contains(format, "%s") {
		return format
	}
	msg := fmt.Sprintf(format, fe.Param())
	if fe.Kind() == reflect.String && (fe.Tag() == "min" || fe.Tag() == "max") {
		msg += " characters"
	}
	return msg
}
