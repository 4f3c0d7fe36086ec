package storage

import (
	"context"
	"strings"
	"testing"

	"erp-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestObjectURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  utils.StorageConfig
		want string
	}{
		{
			name: "public url wins",
			cfg:  utils.StorageConfig{Bucket: "b", Endpoint: "http://minio:9000", PublicURL: "https://cdn.example.com"},
			want: "https://cdn.example.com/user/p.png",
		},
		{
			name: "custom endpoint",
			cfg:  utils.StorageConfig{Bucket: "b", Endpoint: "http://minio:9000/"},
			want: "http://minio:9000/b/user/p.png",
		},
		{
			name: "aws default",
			cfg:  utils.StorageConfig{Bucket: "b", Region: "eu-west-1"},
			want: "https://b.s3.eu-west-1.amazonaws.com/user/p.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectURL(tt.cfg, "/user/p.png"))
		})
	}
}

func TestNewWithoutBucketIsDisabled(t *testing.T) {
	s, err := New(context.Background(), utils.StorageConfig{}, zap.NewNop())
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "k", strings.NewReader("x"), 1, "text/plain")
	assert.ErrorIs(t, err, ErrDisabled)
}
