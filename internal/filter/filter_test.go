package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContains_ExactToken(t *testing.T) {
	f := Default()

	require.True(t, f.Contains("시발"))
	require.True(t, f.Contains("아 시발!"))
	require.True(t, f.Contains("재테크 도박 정보"))
	require.True(t, f.Contains("AV 추천"))

	// same sentences with the banned token removed
	require.False(t, f.Contains("아 !"))
	require.False(t, f.Contains("재테크 정보"))
}

func TestContains_TokenBoundaries(t *testing.T) {
	f := Default()

	// "av" is banned as a whole token only; it must not fire inside a word
	require.False(t, f.Contains("have a nice day"))
	require.True(t, f.Contains("av"))
}

func TestContains_CompactObfuscation(t *testing.T) {
	f := Default()

	// spacing and punctuation between characters
	require.True(t, f.Contains("시 발"))
	require.True(t, f.Contains("ㅅ.ㅂ"))
	// short hostile jamo forms inside longer text
	require.True(t, f.Contains("ㅅㅐㅅㅐㅅㅐㅂㅅㅂ"))
}

func TestContains_RepetitionCollapse(t *testing.T) {
	f := Default()

	// runs of 3+ identical characters collapse to one before matching
	require.True(t, f.Contains("바카라라라라"))
	require.True(t, f.Contains("도박박박"))
}

func TestContains_CleanText(t *testing.T) {
	f := Default()

	require.False(t, f.Contains(""))
	require.False(t, f.Contains("연말정산 공제 질문입니다"))
	require.False(t, f.Contains("good morning 123"))
}

func TestContains_CustomLists(t *testing.T) {
	f := New([]string{"banned"}, []string{"zz"})

	require.True(t, f.Contains("this is banned text"))
	require.True(t, f.Contains("z z"))
	require.False(t, f.Contains("harmless"))
}

func TestNormalizeCompact(t *testing.T) {
	require.Equal(t, "bad", normalizeCompact("b-a-a-a-a-d"))
	require.Equal(t, "aabb", normalizeCompact("aabb"))
	require.Equal(t, "ab", normalizeCompact("aaab"))
	require.Equal(t, "", normalizeCompact("!?~ ..."))
}
