package util

import (
	"errors"
	"fmt"
	"social-feed-backend/config"
	"strconv"

	"github.com/dgrijalva/jwt-go"
)

// ValidateToken 校验令牌并返回其中的用户ID
func ValidateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("无效的令牌")
	}

	// 兼容数字类型的用户ID
	switch v := claims["user_id"].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	}
	return "", errors.New("无效的用户ID")
}
