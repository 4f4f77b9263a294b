package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	vi := GetVersion()
	assert.Equal(t, version, vi.Version)
	assert.Equal(t, prerelease, vi.Prerelease)
}

func TestVersion_SemanticVersion(t *testing.T) {
	testCases := []struct {
		name string
		vi   Version
	}{
		{
			name: "Test only Version",
			vi: Version{
				Version: "0.0.0",
			},
		},
		{
			name: "Test Prerelease",
			vi: Version{
				Version:    "0.0.0",
				Prerelease: "test",
			},
		},
		{
			name: "Test Metadata",
			vi: Version{
				Version:  "0.0.0",
				Metadata: "buildinfo",
			},
		},
		{
			name: "Test All",
			vi: Version{
				Version:    "0.0.0",
				Prerelease: "test",
				Metadata:   "buildinfo",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sv := tc.vi.SemanticVersion()
			assert.Contains(t, sv, tc.vi.Version)
			if tc.vi.Prerelease != "" {
				assert.Contains(t, sv, fmt.Sprintf("-%s", tc.vi.Prerelease))
			}
			if tc.vi.Metadata != "" {
				assert.Contains(t, sv, fmt.Sprintf("+%s", tc.vi.Metadata))
			}
		})
	}
}

func TestVersion_FullVersionNumber(t *testing.T) {
	vi := Version{Version: "1.2.3", Revision: "abc123", BuildDate: "2026-01-02"}

	assert.Equal(t, "hcensor v1.2.3 (abc123), built 2026-01-02", vi.FullVersionNumber(true))
	assert.Equal(t, "hcensor v1.2.3, built 2026-01-02", vi.FullVersionNumber(false))
}
