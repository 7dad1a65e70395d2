package archive

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/resume-builder-be/internal/config"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3_Put(t *testing.T) {
	fake := &fakeS3{}
	a := &S3{client: fake, bucket: "resumes-bucket"}

	require.NoError(t, a.Put(context.Background(), "jane@example.com", []byte("%PDF-1.3")))
	assert.Equal(t, "resumes-bucket", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "resumes/jane@example.com/resume_professional.pdf", aws.ToString(fake.in.Key))
	assert.Equal(t, "application/pdf", aws.ToString(fake.in.ContentType))
	assert.Equal(t, []byte("%PDF-1.3"), fake.body)
}

func TestS3_PutError(t *testing.T) {
	a := &S3{client: &fakeS3{err: errors.New("access denied")}, bucket: "b"}
	require.Error(t, a.Put(context.Background(), "jane@example.com", nil))
}

func TestNewS3_StaticCredentials(t *testing.T) {
	a, err := NewS3(context.Background(), config.S3Config{
		Bucket:          "resumes",
		Region:          "eu-west-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
	})
	require.NoError(t, err)
	assert.Equal(t, "resumes", a.bucket)
	assert.NotNil(t, a.client)
}
