package linstor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVolumeSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1", 1 << 20},
		{"1g", 1 << 20},
		{"1G", 1 << 20},
		{"1GiB", 1 << 20},
		{"1.5GiB", 1572864},
		{"2TiB", 2 << 30},
		{"512m", 512 << 10},
		{"1GB", 976563},
		{"1025B", 2},
		{"1b", 1},
		{" 10 MiB ", 10 << 10},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVolumeSize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVolumeSizeInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "5x", "-1G", "10 parsecs"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseVolumeSize(in)
			var argErr *ArgumentError
			assert.ErrorAs(t, err, &argErr)
		})
	}
}

func TestSizeKiB(t *testing.T) {
	n, err := sizeKiB(2048)
	require.NoError(t, err)
	assert.Equal(t, int64(2048), n)

	n, err = sizeKiB(int64(7))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	n, err = sizeKiB("1m")
	require.NoError(t, err)
	assert.Equal(t, int64(1024), n)

	_, err = sizeKiB(1.5)
	assert.Error(t, err)
}
