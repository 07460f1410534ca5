package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateText(t *testing.T) {
	text, ok := ValidateText("  공지  ", MaxTitle)
	require.True(t, ok)
	require.Equal(t, "공지", text)

	_, ok = ValidateText("", MaxTitle)
	require.False(t, ok)

	_, ok = ValidateText("   \t\n", MaxTitle)
	require.False(t, ok)
}

func TestValidateText_LengthInRunes(t *testing.T) {
	// 80 Hangul syllables are 240 bytes but exactly 80 characters
	text, ok := ValidateText(strings.Repeat("가", MaxTitle), MaxTitle)
	require.True(t, ok)
	require.Equal(t, MaxTitle, len([]rune(text)))

	_, ok = ValidateText(strings.Repeat("가", MaxTitle+1), MaxTitle)
	require.False(t, ok)
}

func TestValidInterestCategory(t *testing.T) {
	require.True(t, ValidInterestCategory("card"))
	require.True(t, ValidInterestCategory("pension"))
	require.False(t, ValidInterestCategory("crypto"))
	require.False(t, ValidInterestCategory(""))
}
