package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadWithFS(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	require.Equal(t, DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, DefaultFormat, cfg.Format)
	require.Equal(t, DefaultStartDate, cfg.StartDate)
	require.Equal(t, DefaultEndDate, cfg.EndDate)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
	require.False(t, cfg.KeepGoing)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := afero.WriteFile(fs, "/config.yml", []byte(`
base_url: https://flow.example.com
email: user@example.com
format: gpx
keep_going: true
`), 0644)
	require.NoError(t, err)

	cfg, err := LoadWithFS(fs, "/config.yml")
	require.NoError(t, err)

	require.Equal(t, "https://flow.example.com", cfg.BaseURL)
	require.Equal(t, "user@example.com", cfg.Email)
	require.Equal(t, "gpx", cfg.Format)
	require.True(t, cfg.KeepGoing)
	// Untouched fields keep their defaults.
	require.Equal(t, DefaultStartDate, cfg.StartDate)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadWithFS(afero.NewMemMapFs(), "/nope.yml")
	require.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FLOW_EMAIL", "env@example.com")
	t.Setenv("FLOW_FORMAT", "csv")

	cfg, err := LoadWithFS(afero.NewMemMapFs(), "")
	require.NoError(t, err)

	require.Equal(t, "env@example.com", cfg.Email)
	require.Equal(t, "csv", cfg.Format)
}

func TestParseDay(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "valid",
			input:    "05.01.2023",
			expected: time.Date(2023, 1, 5, 0, 0, 0, 0, time.Local),
		},
		{
			name:     "default start",
			input:    DefaultStartDate,
			expected: time.Date(1970, 1, 1, 0, 0, 0, 0, time.Local),
		},
		{name: "unpadded", input: "5.1.2023", expectError: true},
		{name: "garbage", input: "2023-01-05", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			day, err := ParseDay(tc.input)
			if tc.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.True(t, tc.expected.Equal(day))
		})
	}
}
