package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ByteSize
		wantErr  bool
	}{
		{"bytes", "1024", 1024, false},
		{"kilobytes", "48KB", 48 * 1024, false},
		{"megabytes", "512MB", 512 * 1024 * 1024, false},
		{"gigabytes", "1GB", 1024 * 1024 * 1024, false},
		{"zero", "0", 0, false},
		{"invalid", "lots", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := ParseByteSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, size)
		})
	}
}

func TestByteSize_JSON(t *testing.T) {
	var cfg struct {
		A ByteSize `json:"a"`
		B ByteSize `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"5MB","b":1024}`), &cfg))
	assert.Equal(t, ByteSize(5<<20), cfg.A)
	assert.Equal(t, ByteSize(1024), cfg.B)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"5MB","b":"1KB"}`, string(out))
}

func TestByteSize_String(t *testing.T) {
	assert.Equal(t, "1GB", ByteSize(1<<30).String())
	assert.Equal(t, int64(1<<30), ByteSize(1<<30).Bytes())
}
