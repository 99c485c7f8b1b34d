package validator

import (
	"errors"
	"fmt"

	v10 "github.com/go-playground/validator/v10"
)

var validate = v10.New()

// Structはバインド済みのリクエストDTOをタグで検証する。
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// Messageは最初のフィールドエラーを人間が読める文にする。
// 内部のエラー表現はクライアントへ出さない。
func Message(err error) string {
	var verrs v10.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
