package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFlags(t *testing.T) {
	flags := GetFlags()
	require.NotEmpty(t, flags)

	byName := make(map[string]FlagInfo, len(flags))
	for _, f := range flags {
		assert.NotEmpty(t, f.Name)
		assert.NotEmpty(t, f.Description)
		if f.HasValue {
			assert.NotEmpty(t, f.ValueHint, "value flag %s needs a hint", f.Name)
		}
		byName[f.Name] = f
	}

	themeFlag, ok := byName["theme"]
	require.True(t, ok)
	assert.Contains(t, themeFlag.Values, "dracula")
	assert.Contains(t, themeFlag.Values, "nord")
}
