package util

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ValidateNotBlank 验证字符串去掉首尾空白后不为空
func ValidateNotBlank(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

// RegisterValidators 向 gin 的校验引擎注册自定义规则
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", ValidateNotBlank)
	}
}
