package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	input *s3.PutObjectInput
	err   error
}

func (u *stubUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	u.input = in
	if u.err != nil {
		return nil, u.err
	}
	return &manager.UploadOutput{Location: "s3://" + aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)}, nil
}

func TestS3ImageStorePut(t *testing.T) {
	up := &stubUploader{}
	store := &S3ImageStore{uploader: up, bucket: "campaign-images", publicBaseURL: "https://images.example.com/"}

	url, err := store.Put(context.Background(), "campaigns/7/abc.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/campaigns/7/abc.png", url)
	assert.Equal(t, "campaign-images", aws.ToString(up.input.Bucket))
	assert.Equal(t, "image/png", aws.ToString(up.input.ContentType))

	up.err = errors.New("access denied")
	_, err = store.Put(context.Background(), "campaigns/7/def.png", "image/png", strings.NewReader("png"))
	assert.EqualError(t, err, "access denied")
}
