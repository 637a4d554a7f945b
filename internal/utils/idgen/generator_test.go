package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/utils/idgen"
)

func TestGenerateSecureID_Format(t *testing.T) {
	id, err := idgen.GenerateSecureID("call", 16)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(id, "call_"))
	suffix := strings.TrimPrefix(id, "call_")
	assert.Len(t, suffix, 16)
	for _, c := range suffix {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z'), "unexpected character %q in %s", c, id)
	}
}

func TestGenerateSecureID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := idgen.GenerateSecureID("apt", 12)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
