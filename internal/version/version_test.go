package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })

	Version = "1.0.0"
	Commit = "abc123def456"
	Date = "2024-01-01T12:00:00Z"

	info := GetInfo()
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abc123def456", info.Commit)
	assert.Equal(t, "2024-01-01T12:00:00Z", info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want []string
	}{
		{
			name: "full version info",
			info: Info{Version: "1.0.0", Commit: "abc123def456", Date: "2024-01-01", GoVersion: "go1.24.0", Platform: "linux/amd64"},
			want: []string{"cleanaid 1.0.0", "(abc123de)", "built 2024-01-01", "with go1.24.0", "for linux/amd64"},
		},
		{
			name: "short commit hash",
			info: Info{Version: "1.0.0", Commit: "abc123", Platform: "darwin/arm64"},
			want: []string{"(abc123)", "darwin/arm64"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.String()
			for _, substr := range tt.want {
				assert.Contains(t, got, substr)
			}
		})
	}
}

func TestInfoShort(t *testing.T) {
	assert.Equal(t, "1.0.0-rc1", Info{Version: "1.0.0-rc1"}.Short())
}

func TestUserAgent(t *testing.T) {
	info := Info{Version: "2.1.0", Platform: "linux/arm64"}
	assert.Equal(t, "cleanaid-cli/2.1.0 (linux/arm64)", info.UserAgent())
}

func TestDefaultValues(t *testing.T) {
	info := GetInfo()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.Commit)
	assert.NotEmpty(t, info.Date)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}
