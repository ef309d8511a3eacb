package s3

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/hupe1980/kmeans/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func keyIs(bucket, key string) any {
	return mock.MatchedBy(func(input *s3.GetObjectInput) bool {
		return *input.Bucket == bucket && *input.Key == key
	})
}

func TestStore_Open(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	mockClient.On("GetObject", mock.Anything, keyIs("test-bucket", "prefix/data.csv")).Return(&s3.GetObjectOutput{
		Body: io.NopCloser(strings.NewReader("a,b\n1,2\n")),
	}, nil).Once()

	rc, err := store.Open(context.Background(), "data.csv")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
	mockClient.AssertExpectations(t)
}

func TestStore_Open_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"NoSuchKey", &types.NoSuchKey{}},
		{"NotFound", &types.NotFound{}},
		{"GenericAPIError", &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockS3Client)
			store := NewStore(mockClient, "test-bucket", "")

			mockClient.On("GetObject", mock.Anything, keyIs("test-bucket", "missing.csv")).Return(nil, tt.err).Once()

			_, err := store.Open(context.Background(), "missing.csv")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
			mockClient.AssertExpectations(t)
		})
	}
}

func TestStore_Open_Error(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "")
	boom := errors.New("connection reset")

	mockClient.On("GetObject", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := store.Open(context.Background(), "x.csv")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, blobstore.ErrNotFound)
	assert.Contains(t, err.Error(), "s3://test-bucket/x.csv")
}

func TestStore_ImplementsStore(t *testing.T) {
	var _ blobstore.Store = NewStore(new(MockS3Client), "b", "")
	var _ Client = (*s3.Client)(nil)
}

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	key := os.Getenv("S3_KEY")
	if bucket == "" || key == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET or S3_KEY not set")
	}

	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	store := NewStore(s3.NewFromConfig(cfg), bucket, "")

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	defer rc.Close()

	_, err = io.Copy(io.Discard, rc)
	require.NoError(t, err)

	_, err = store.Open(ctx, key+".missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
