package handlers

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"stockbook/internal/core/apperror"
	"stockbook/internal/domain/documents/sale"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding validators on gin's
// validator engine and reports fields by their JSON names. Safe to call
// more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)

		if err = v.RegisterValidation("channel", func(fl validator.FieldLevel) bool {
			return sale.Channel(fl.Field().String()).IsValid()
		}); err != nil {
			return
		}
		err = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
			return sale.PaymentMethod(fl.Field().String()).IsValid()
		})
	})
	return err
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// lineIndex finds the slice index in a namespace like
// "CreateBatchRequest.lines[2].productId".
var lineIndex = regexp.MustCompile(`\.lines\[(\d+)\]`)

// fieldError converts one validator failure into a field validation error.
func fieldError(fe validator.FieldError) *apperror.AppError {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fe.Field() + " is required"
	case "uuid":
		msg = fe.Field() + " must be a valid UUID"
	case "channel":
		msg = "unknown channel"
	case "payment_method":
		msg = "unknown payment method"
	default:
		msg = fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}

	appErr := apperror.NewFieldValidation(fe.Field(), msg)
	if v, ok := fe.Value().(string); ok && v != "" {
		appErr = appErr.WithDetail("value", v)
	}
	if m := lineIndex.FindStringSubmatch(fe.Namespace()); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			appErr = appErr.WithDetail("line", n+1)
		}
	}
	return appErr
}
