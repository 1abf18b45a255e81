package normalize

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

type NormalizeTest struct {
	Name     string
	Input    string
	Pattern  string
	Expected string
}

var normalizeTests = []NormalizeTest{
	{"empty", "", "", ""},
	{"hangul untouched", "가나다 라마", "", "가나다 라마"},
	{"latin dropped", "Seoul 서울 Korea", "", " 서울 "},
	{"digits and punctuation dropped", "서울, 2024년!", "", "서울 년"},
	{"newlines kept", "가\n나\t다", "", "가\n나\t다"},
	{"jamo only dropped", "ㄱㄴㄷ 가", "", " 가"},
	{"exclusion applied after filtering", "가나다A가나", "가나", "다"},
	{"exclusion sees normalized text", "서A울", "서울", ""},
}

func TestNormalize(t *testing.T) {
	for _, test := range normalizeTests {
		t.Run(test.Name, func(t *testing.T) {
			pattern, err := CompilePattern(test.Pattern)
			assert.NoError(t, err)
			assert.Equal(t, test.Expected, Normalize(test.Input, pattern))
		})
	}
}

func TestNormalizeComposesJamo(t *testing.T) {
	decomposed := norm.NFD.String("한국")
	assert.NotEqual(t, "한국", decomposed)
	assert.Equal(t, "한국", Normalize(decomposed, nil))
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	inputs := []string{
		"The 서울 Metropolitan 지하철 (Line 2) — 순환선.",
		"東京 도쿄 とうきょう",
		" 가 나\r\n",
	}
	for _, input := range inputs {
		out := Normalize(input, nil)
		for _, r := range out {
			assert.True(t, InAlphabet(r), "unexpected rune %q in %q", r, out)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	exclude := regexp.MustCompile("[0-9]+")
	inputs := []string{
		"",
		"가나다라 abc 마바사",
		"한국어 TEXT with 123 숫자",
		norm.NFD.String("정규화 테스트"),
	}
	for _, input := range inputs {
		once := Normalize(input, nil)
		assert.Equal(t, once, Normalize(once, nil))
		onceExcluded := Normalize(input, exclude)
		assert.Equal(t, onceExcluded, Normalize(onceExcluded, exclude))
	}
}

func TestCompilePattern(t *testing.T) {
	pattern, err := CompilePattern("")
	assert.NoError(t, err)
	assert.Nil(t, pattern)

	_, err = CompilePattern("[")
	assert.Error(t, err)
}

type SanitizerTest struct {
	Name     string
	Input    string
	Expected string
}

var sanitizerTests = []SanitizerTest{
	{"\\n handling", "\nfoobar\\n\n", "foobar"},
	{"\\r handling", "가\r\n\r\n나", "가\n나"},
	{"Trailing spaces handling", "foobar  ", "foobar"},
	{"Extra spaces handling", "foo  bar", "foo bar"},
	{"Tabs handling", "foo\t\tbar", "foo bar"},
	{"Extra spaces with newlines", " foo \n   bar\nfoo ", "foo\nbar\nfoo"},
}

func TestSanitize(t *testing.T) {
	for _, test := range sanitizerTests {
		t.Run(test.Name, func(t *testing.T) {
			assert.Equal(t, test.Expected, Sanitize(test.Input))
		})
	}
}
