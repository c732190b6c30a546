package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDestinations(t *testing.T) {
	testCases := []struct {
		name    string
		config  string
		want    []DestinationConfig
		wantErr bool
	}{
		{
			name: "ordered destinations",
			config: `
destinations:
  - name: Hospital 1
    lat: 18.6180
    lon: 73.8030
  - name: Hospital 2
    lat: 18.6350
    lon: 73.7900
`,
			want: []DestinationConfig{
				{Name: "Hospital 1", Lat: 18.6180, Lon: 73.8030},
				{Name: "Hospital 2", Lat: 18.6350, Lon: 73.7900},
			},
		},
		{
			name: "duplicate names",
			config: `
destinations:
  - name: Hospital 1
    lat: 18.6180
    lon: 73.8030
  - name: Hospital 1
    lat: 18.6350
    lon: 73.7900
`,
			wantErr: true,
		},
		{
			name: "latitude out of range",
			config: `
destinations:
  - name: Hospital 1
    lat: 98.6180
    lon: 73.8030
`,
			wantErr: true,
		},
		{
			name: "missing name",
			config: `
destinations:
  - lat: 18.6180
    lon: 73.8030
`,
			wantErr: true,
		},
		{
			name:    "no destinations",
			config:  "region:\n  radius_m: 3000\n",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			require.NoError(t, ReadConfig(writeConfig(t, tc.config)))

			got, err := ReadDestinations()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	require.NoError(t, ReadConfig(writeConfig(t, "region:\n  radius_m: 3000\n")))

	assert.Equal(t, 3000.0, viper.GetFloat64("region.radius_m"))
	assert.Equal(t, 18.6298, viper.GetFloat64("region.center_lat"))
	assert.Equal(t, "drive", viper.GetString("region.network_type"))
	assert.Equal(t, 10.0, viper.GetFloat64("traffic.max_intensity"))
	assert.Equal(t, 1, viper.GetInt("routing.workers"))
	assert.True(t, viper.GetBool("routing.left_hand_traffic"))
}

func TestReadConfigMissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	assert.Error(t, ReadConfig(filepath.Join(t.TempDir(), "nope.yaml")))
}
