package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntOrDefault(t *testing.T) {
	t.Setenv("PAGE_SIZE", "")
	assert.Equal(t, 12, intOrDefault("PAGE_SIZE", 12))

	t.Setenv("PAGE_SIZE", "24")
	assert.Equal(t, 24, intOrDefault("PAGE_SIZE", 12))

	t.Setenv("PAGE_SIZE", "many")
	assert.Equal(t, 12, intOrDefault("PAGE_SIZE", 12))

	t.Setenv("PAGE_SIZE", "-3")
	assert.Equal(t, 12, intOrDefault("PAGE_SIZE", 12))
}

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"APP_PORT", "APP_URL", "UPLOAD_DIR", "UPLOAD_URL", "PAGE_SIZE", "MAX_PRODUCT_IMAGES", "APP_ENV"} {
		t.Setenv(key, "")
	}

	env := LoadEnv()

	assert.Equal(t, ":8080", env.Port)
	assert.Equal(t, "http://localhost:8080", env.APP_URL)
	assert.Equal(t, "uploads", env.UploadDir)
	assert.Equal(t, "/uploads", env.UploadURL)
	assert.Equal(t, 12, env.PageSize)
	assert.Equal(t, 5, env.MaxProductImages)
	assert.False(t, env.IsProduction())
}

func TestLoadSessionKeys(t *testing.T) {
	_, err := LoadSessionKeysFromEnv(ENV{})
	assert.Error(t, err)

	env := ENV{
		AppAuthKey: "YXV0aC1rZXktYXV0aC1rZXktYXV0aC1rZXktYXV0aC1r",
		AppEncKey:  "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=",
		CSRFKey:    "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=",
	}
	keys, err := LoadSessionKeysFromEnv(env)
	if assert.NoError(t, err) {
		assert.Len(t, keys.EncKey, 32)
		assert.Len(t, keys.CSRFKey, 32)
	}

	env.CSRFKey = "c2hvcnQ="
	_, err = LoadSessionKeysFromEnv(env)
	assert.Error(t, err)
}
