package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"batch-sender/pkg/jetton"
)

var validate *validator.Validate

// Init 注册自定义校验规则到 gin 的 binding 引擎
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validate = v
		// ton_address: 能被 SDK 解析的地址 (user-friendly 或 raw)
		_ = v.RegisterValidation("ton_address", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true // 是否必填交给 required
			}
			_, err := jetton.ParseAddress(s)
			return err == nil
		})
	}
}

// GetErrorMsg translates binding errors into user-friendly messages
func GetErrorMsg(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var errMsgs []string
		for _, e := range validationErrors {
			field := e.Field()
			tag := e.Tag()
			param := e.Param()

			switch tag {
			case "required":
				errMsgs = append(errMsgs, fmt.Sprintf("%s is required", field))
			case "min":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must have at least %s item(s)", field, param))
			case "max":
				errMsgs = append(errMsgs, fmt.Sprintf("%s must have at most %s item(s)", field, param))
			case "ton_address":
				errMsgs = append(errMsgs, fmt.Sprintf("%s is not a valid TON address", field))
			default:
				errMsgs = append(errMsgs, fmt.Sprintf("%s failed validation (%s)", field, tag))
			}
		}
		return strings.Join(errMsgs, "; ")
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s has an invalid type", typeErr.Field)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "request body is not valid JSON"
	}
	if err != nil && err.Error() != "" {
		return "invalid request: " + err.Error()
	}
	return "invalid request"
}
