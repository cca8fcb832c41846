package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "Ripple", claims.Issuer)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateToken_TamperedSignature(t *testing.T) {
	token, err := GenerateToken(42)
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + "forgedsignature"

	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(42)
	assert.NoError(t, err)

	signature, err := ExtractSignature(token)
	assert.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], signature)

	_, err = ExtractSignature("malformed")
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, CheckPasswordHash("s3cret-password", hash))
	assert.Error(t, CheckPasswordHash("wrong-password", hash))
}
