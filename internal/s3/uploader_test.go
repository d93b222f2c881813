package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestUploadFile(t *testing.T) {
	fake := &fakeS3{}
	u := &Uploader{Client: fake, Bucket: "qa-reports", Region: "ap-southeast-1"}

	url, err := u.UploadFile(context.Background(), strings.NewReader("xlsx"), "reports/qa.xlsx", "application/test")
	require.NoError(t, err)
	assert.Equal(t, "https://qa-reports.s3.ap-southeast-1.amazonaws.com/reports/qa.xlsx", url)
	assert.Equal(t, "qa-reports", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "application/test", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "xlsx", fake.body)

	u.CloudFrontDomain = "cdn.example.com"
	assert.Equal(t, "https://cdn.example.com/reports/qa.xlsx", u.URL("reports/qa.xlsx"))
}

func TestUploadFileError(t *testing.T) {
	u := &Uploader{Client: &fakeS3{err: errors.New("denied")}, Bucket: "b", Region: "r"}
	_, err := u.UploadFile(context.Background(), strings.NewReader(""), "k", "text/plain")
	assert.ErrorContains(t, err, "denied")
}
