package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadPresigner issues presigned PUT URLs for object keys.
type UploadPresigner interface {
	PresignPut(ctx context.Context, key, contentType string) (string, map[string]string, error)
}

// S3Presigner presigns uploads into one bucket.
type S3Presigner struct {
	presigner *s3.PresignClient
	bucket    string
	expiry    time.Duration
}

func NewS3Presigner(cfg sdkaws.Config, bucket string, expiry time.Duration) *S3Presigner {
	return &S3Presigner{
		presigner: s3.NewPresignClient(s3.NewFromConfig(cfg)),
		bucket:    bucket,
		expiry:    expiry,
	}
}

// PresignPut returns the URL and the signed headers the client must send.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string) (string, map[string]string, error) {
	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(p.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := p.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = p.expiry
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return presigned.URL, headers, nil
}
