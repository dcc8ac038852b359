package util

import (
	"social-feed-backend/config"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaTypeFromFilename(t *testing.T) {
	tests := []struct {
		filename, reported, want string
	}{
		{"photo.PNG", "jpeg", "png"},
		{"archive.tar.gz", "", "gz"},
		{"noext", "WEBP", "webp"},
		{"noext", "", DefaultMediaType},
		{"", "", DefaultMediaType},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MediaTypeFromFilename(tt.filename, tt.reported), tt.filename)
	}
}

func TestFormatFromContentType(t *testing.T) {
	assert.Equal(t, "png", FormatFromContentType("image/png"))
	assert.Equal(t, "jpeg", FormatFromContentType("image/JPEG; charset=binary"))
	assert.Equal(t, "", FormatFromContentType("garbage"))
}

func TestGenerateObjectKeyRoundTrip(t *testing.T) {
	key := GenerateObjectKey("posts")
	require.True(t, strings.HasPrefix(key, "posts/"))
	assert.NotContains(t, strings.TrimPrefix(key, "posts/"), "-")

	// 任意驱动生成的 URL 都能反推出同一个 public id
	for _, url := range []string{
		"http://localhost:8080/uploads/" + key,
		"https://bucket.s3.amazonaws.com/" + key,
		"https://storage.googleapis.com/bucket/" + key + "?alt=media",
	} {
		assert.Equal(t, key, PublicIDFromURL(url, "posts"), url)
	}
}

func TestPublicIDFromURL(t *testing.T) {
	assert.Equal(t, "posts/abc", PublicIDFromURL("https://cdn.example.com/v1/posts/abc.jpg", "posts"))
	assert.Equal(t, "abc", PublicIDFromURL("https://cdn.example.com/abc.tar.gz", ""))
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/gif"))
	assert.False(t, IsImageContentType("application/pdf"))
	assert.False(t, IsImageContentType(""))
}

// signToken 模拟外部认证服务签发令牌
func signToken(userID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := signToken("user-42", time.Hour)
	require.NoError(t, err)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestValidateTokenRejects(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	expired, err := signToken("u1", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired)
	assert.Error(t, err)

	_, err = ValidateToken("")
	assert.Error(t, err)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"})
	forged, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = ValidateToken(forged)
	assert.Error(t, err)
}

func TestValidateTokenNumericUserID(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	userID, err := ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "7", userID)
}
