package storage

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

type fakeObjectAPI struct {
	objects   map[string]string
	deleteErr error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store_SaveAndDelete(t *testing.T) {
	api := &fakeObjectAPI{objects: map[string]string{}}
	store := &S3Store{client: api, bucket: "geo"}
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a.png", strings.NewReader("img")))
	assert.Equal(t, "img", api.objects["geo/avatars/a.png"])

	require.NoError(t, store.Delete(ctx, "a.png"))
	assert.Empty(t, api.objects)
}

func TestS3Store_DeleteError(t *testing.T) {
	api := &fakeObjectAPI{objects: map[string]string{}, deleteErr: errors.New("access denied")}
	store := &S3Store{client: api, bucket: "geo"}

	err := store.Delete(context.Background(), "a.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Store_InvalidName(t *testing.T) {
	store := &S3Store{client: &fakeObjectAPI{objects: map[string]string{}}, bucket: "geo"}

	assert.ErrorIs(t, store.Save(context.Background(), "../x", strings.NewReader("")), ErrInvalidName)
}
