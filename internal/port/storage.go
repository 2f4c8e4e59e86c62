package port

import (
	"context"
	"errors"
	"time"
)

// ErrObjectNotFound is returned by ObjectStorage when the bucket has no such key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectRef addresses one object in a bucket.
type ObjectRef struct {
	Bucket string
	Key    string
}

func (r ObjectRef) String() string {
	return "s3://" + r.Bucket + "/" + r.Key
}

// Object is a blob to store. FileName, when set, becomes the download name
// offered to whoever follows a presigned link.
type Object struct {
	Ref         ObjectRef
	Body        []byte
	ContentType string
	FileName    string
}

// ObjectStorage holds templates and published batch bundles.
type ObjectStorage interface {
	Put(ctx context.Context, obj Object) error
	Get(ctx context.Context, ref ObjectRef) ([]byte, error)
	PresignGet(ctx context.Context, ref ObjectRef, ttl time.Duration) (string, error)
}
