package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	Set("1.2.3", "abc123", "2025-01-01", "ci")

	info := Get()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2025-01-01", info.Date)
	assert.Equal(t, "ci", info.BuiltBy)
	assert.False(t, info.Dirty)
}

func TestEnrichFillsBuilder(t *testing.T) {
	Set("dev", "none", "unknown", "unknown")
	Enrich()

	// Test binaries always carry module build info, so at minimum the Go
	// version replaces the builder placeholder.
	assert.NotEqual(t, "unknown", Get().BuiltBy)
}

func TestEnrichPreservesExplicitValues(t *testing.T) {
	Set("v1.0.0", "deadbeef", "2025-06-01", "goreleaser")
	Enrich()

	info := Get()
	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "deadbeef", info.Commit)
	assert.Equal(t, "2025-06-01", info.Date)
	assert.Equal(t, "goreleaser", info.BuiltBy)
}
