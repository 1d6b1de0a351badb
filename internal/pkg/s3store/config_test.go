package s3store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDisabledByDefault(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled())
}

func TestLoadConfigEnabledRequiresCredentials(t *testing.T) {
	t.Setenv("S3_ENABLED", "true")
	t.Setenv("S3_ACCESS_KEY_ID", "")
	t.Setenv("S3_SECRET_ACCESS_KEY", "")
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("S3_ACCESS_KEY_ID", "key")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("S3_BUCKET_NAME", "avatars")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, "avatars", cfg.GetBucketName())
}

func TestAvatarObjectKey(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	assert.Equal(t, "avatars/42.jpg", cfg.AvatarObjectKey("42", ".jpg"))
}

func TestPublicURLPrecedence(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		BucketName:    "linkwhats",
		Region:        "us-east-1",
		EndpointURL:   "https://minio.internal:9000",
		PublicBaseURL: "https://cdn.linkwhats.app",
	}
	assert.Equal(t, "https://cdn.linkwhats.app/avatars/1.jpg", cfg.PublicURL("avatars/1.jpg"))

	cfg.PublicBaseURL = ""
	assert.Equal(t, "https://minio.internal:9000/linkwhats/avatars/1.jpg", cfg.PublicURL("avatars/1.jpg"))

	cfg.EndpointURL = ""
	assert.Equal(t, "https://linkwhats.s3.us-east-1.amazonaws.com/avatars/1.jpg", cfg.PublicURL("avatars/1.jpg"))
}
