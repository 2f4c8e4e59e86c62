package s3

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"

	"gpcaffidavit/internal/config"
	"gpcaffidavit/internal/port"
)

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(&types.NoSuchKey{}), port.ErrObjectNotFound)
	assert.ErrorIs(t, notFound(&types.NotFound{}), port.ErrObjectNotFound)

	other := errors.New("access denied")
	assert.Equal(t, other, notFound(other))
}

func TestObjectRef_String(t *testing.T) {
	assert.Equal(t, "s3://forms/form11.docx", port.ObjectRef{Bucket: "forms", Key: "form11.docx"}.String())
}

func TestNewS3Client_CustomEndpoint(t *testing.T) {
	c, err := NewS3Client(&config.S3Config{
		Region:    "ap-southeast-2",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	assert.NoError(t, err)
	assert.NotNil(t, c.api)
	assert.True(t, c.api.Options().UsePathStyle)
}
