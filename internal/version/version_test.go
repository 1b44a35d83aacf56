package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestDefaultVersionIsSet(t *testing.T) {
	require.NotEmpty(t, Version)
}

func TestStyledPreservesSuffix(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	Version = "1.2.3-rc.1"
	require.Equal(t, "1.2.3-rc.1", Styled())

	Version = "not-semver"
	require.Equal(t, "not-semver", Styled())
}

func TestFullIncludesCommitAndDate(t *testing.T) {
	origV, origC, origD := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origV, origC, origD }()

	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2026-01-15T10:30:00Z"
	require.Equal(t, "1.2.3 (abc123, 2026-01-15T10:30:00Z)", Full())

	GitCommit = ""
	require.Equal(t, "1.2.3 (2026-01-15T10:30:00Z)", Full())

	BuildDate = ""
	require.Equal(t, "1.2.3", Full())
}
