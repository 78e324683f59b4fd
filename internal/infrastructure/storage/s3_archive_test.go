package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	infraconfig "github.com/strivehq/backend/internal/infrastructure/config"
)

func TestNewS3StatementArchive_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *infraconfig.StorageConfig
		wantErr string
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: "storage configuration is required",
		},
		{
			name:    "missing bucket",
			cfg:     &infraconfig.StorageConfig{AccessKey: "ak", SecretKey: "sk"},
			wantErr: "storage bucket is required",
		},
		{
			name:    "missing access key",
			cfg:     &infraconfig.StorageConfig{Bucket: "statements", SecretKey: "sk"},
			wantErr: "storage access key is required",
		},
		{
			name:    "missing secret key",
			cfg:     &infraconfig.StorageConfig{Bucket: "statements", AccessKey: "ak"},
			wantErr: "storage secret key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3StatementArchive(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewS3StatementArchive_ValidConfig(t *testing.T) {
	archive, err := NewS3StatementArchive(&infraconfig.StorageConfig{
		Bucket:       "statements",
		AccessKey:    "ak",
		SecretKey:    "sk",
		Endpoint:     "localhost:9000",
		Region:       "us-east-1",
		UsePathStyle: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, archive)
}
