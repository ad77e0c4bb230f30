package storage

import (
	"testing"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoneProvider(t *testing.T) {
	store, err := New(config.StorageConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = New(config.StorageConfig{})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(config.StorageConfig{Provider: "ftp"})
	assert.Error(t, err)
}

func TestNew_MinioRequiresEndpointAndBucket(t *testing.T) {
	_, err := New(config.StorageConfig{Provider: "minio", Bucket: "reports"})
	assert.Error(t, err)

	_, err = New(config.StorageConfig{Provider: "minio", Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestNew_MinioBuildsClient(t *testing.T) {
	store, err := New(config.StorageConfig{
		Provider:  "MinIO",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "reports",
	})
	require.NoError(t, err)
	assert.IsType(t, &MinioClient{}, store)
}

func TestNewSevallaClient_Validation(t *testing.T) {
	_, err := NewSevallaClient(SevallaConfig{Bucket: "b", AccessKey: "k", SecretKey: "s"})
	assert.Error(t, err)

	_, err = NewSevallaClient(SevallaConfig{Endpoint: "e", Bucket: "b"})
	assert.Error(t, err)

	_, err = NewSevallaClient(SevallaConfig{Endpoint: "e", AccessKey: "k", SecretKey: "s"})
	assert.Error(t, err)
}

func TestWithScheme(t *testing.T) {
	assert.Equal(t, "https://s3.example.com", withScheme("s3.example.com", true))
	assert.Equal(t, "http://s3.example.com", withScheme("//s3.example.com", false))
	assert.Equal(t, "http://already", withScheme("http://already", true))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("reports/reorder.CSV"))
	assert.Equal(t, "application/octet-stream", contentType("reports/raw.bin"))
}
