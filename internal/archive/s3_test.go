package archive

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() S3Config {
	return S3Config{
		Endpoint:  "localhost:9000",
		AccessKey: "yassu",
		SecretKey: "yassu123",
		Bucket:    "yassu-plans",
	}
}

func TestNewS3Store_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*S3Config)
		errMsg string
	}{
		{"missing endpoint", func(c *S3Config) { c.Endpoint = " " }, "endpoint is required"},
		{"missing access key", func(c *S3Config) { c.AccessKey = "" }, "access key and secret key are required"},
		{"missing secret key", func(c *S3Config) { c.SecretKey = "" }, "access key and secret key are required"},
		{"missing bucket", func(c *S3Config) { c.Bucket = "" }, "bucket is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			store, err := NewS3Store(cfg)
			require.Error(t, err)
			assert.Nil(t, store)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewS3Store_DefaultRegion(t *testing.T) {
	store, err := NewS3Store(validConfig())
	require.NoError(t, err)
	assert.Equal(t, defaultRegion, store.region)
	assert.Equal(t, "yassu-plans", store.Bucket())
}

func TestObjectKey(t *testing.T) {
	runID := uuid.MustParse("6f1c1f7e-2f0b-4a35-9d1e-1c1a2b3c4d5e")

	key, err := objectKey(runID, "/business_plan.md")
	require.NoError(t, err)
	assert.Equal(t, "6f1c1f7e-2f0b-4a35-9d1e-1c1a2b3c4d5e/business_plan.md", key)

	_, err = objectKey(uuid.Nil, "business_plan.md")
	assert.Error(t, err)

	_, err = objectKey(runID, "  ")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/markdown; charset=utf-8", contentType("business_plan.md"))
	assert.Equal(t, "application/octet-stream", contentType("blob"))
}

func TestNilStore(t *testing.T) {
	var store *S3Store
	err := store.Archive(context.Background(), uuid.New(), "business_plan.md", []byte("x"))
	assert.Error(t, err)

	_, err = store.Get(context.Background(), uuid.New(), "business_plan.md")
	assert.Error(t, err)
}
