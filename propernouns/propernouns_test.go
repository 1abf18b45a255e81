package propernouns

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/gpt_pairs/tokenizer"
	"github.com/wbrown/gpt_pairs/types"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// Splits Hangul text into single syllables, like a character-level model.
var syllableTokenizer = tokenizer.TokenizerFunc(
	func(text string) (types.Tokens, error) {
		tokens := make(types.Tokens, 0, len(text))
		for _, r := range text {
			if r != ' ' && r != '\n' {
				tokens = append(tokens, string(r))
			}
		}
		return tokens, nil
	})

var wordTokenizer = tokenizer.TokenizerFunc(
	func(text string) (types.Tokens, error) {
		return strings.Fields(text), nil
	})

func TestRegistryBasics(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, 0, registry.Len())
	assert.False(t, registry.IsKnown("서울"))

	assert.Equal(t, 2, registry.Add("서울", "부산", "서울", ""))
	assert.Equal(t, 0, registry.Add("부산"))
	assert.True(t, registry.IsKnown("서울"))
	assert.False(t, registry.IsKnown(""))
	assert.Equal(t, []string{"부산", "서울"}, registry.Nouns())

	var zero Registry
	assert.False(t, zero.IsKnown("서울"))
	assert.Equal(t, 1, zero.Add("서울"))
}

func TestLoadReplaces(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "nouns.json", `["가나", "다라", ""]`)

	registry := NewRegistry("서울")
	require.NoError(t, registry.Load(path))
	assert.Equal(t, []string{"가나", "다라"}, registry.Nouns())
	assert.False(t, registry.IsKnown("서울"))
}

func TestLoadFailureLeavesRegistryUntouched(t *testing.T) {
	dir := t.TempDir()
	loads := map[string]string{
		"malformed":  writeFile(t, dir, "bad.json", `["가나", `),
		"not array":  writeFile(t, dir, "object.json", `{"가나": 1}`),
		"non string": writeFile(t, dir, "numbers.json", `["가나", 3]`),
		"null":       writeFile(t, dir, "null.json", "null"),
		"missing":    filepath.Join(dir, "missing.json"),
	}
	for name, path := range loads {
		t.Run(name, func(t *testing.T) {
			registry := NewRegistry("서울", "부산")
			err := registry.Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrDictionaryLoad))
			var loadErr *types.DictionaryLoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, path, loadErr.Path)
			assert.Equal(t, []string{"부산", "서울"}, registry.Nouns())
		})
	}
}

func TestLoadEmptyArray(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.json", "[]")
	registry := NewRegistry("서울")
	require.NoError(t, registry.Load(path))
	assert.Equal(t, 0, registry.Len())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	require.NoError(t, NewRegistry("한강", "서울").Save(path))

	loaded := NewRegistry()
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, []string{"서울", "한강"}, loaded.Nouns())
}

func TestConcurrentAdds(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				registry.Add(string(rune('가' + worker*100 + i)))
				registry.IsKnown("가")
			}
		}(worker)
	}
	wg.Wait()
	assert.Equal(t, 800, registry.Len())
}

func TestExtractCandidates(t *testing.T) {
	texts := []string{
		"The trip from Seoul to Busan took three hours.",
		"그리고 서울에서 부산까지 KTX 를 탔다. And then Seoul again.",
		"그 사람은 이순신 장군을 존경한다.",
	}
	candidates := ExtractCandidates(texts)
	for _, expected := range []string{"Seoul", "Busan", "서울에서",
		"부산까지", "이순신", "장군을", "사람은"} {
		assert.Contains(t, candidates, expected)
	}
	for _, rejected := range []string{"The", "And", "그리고", "그", "KTX",
		"trip", "를"} {
		assert.NotContains(t, candidates, rejected)
	}
	// Union: duplicates across texts collapse.
	seoul := 0
	for _, candidate := range candidates {
		if candidate == "Seoul" {
			seoul++
		}
	}
	assert.Equal(t, 1, seoul)
}

func TestExtractCandidatesMixedScript(t *testing.T) {
	// Word boundaries are ASCII, so a Latin word glued to a Hangul
	// particle is still split off.
	candidates := ExtractCandidates([]string{"Seoul에서 Busan으로"})
	assert.Equal(t, []string{"Busan", "Seoul"}, candidates)
}

func TestExtractCandidatesEmpty(t *testing.T) {
	assert.Empty(t, ExtractCandidates(nil))
	assert.Empty(t, ExtractCandidates([]string{"", "123 !!"}))
}

func TestIsStopword(t *testing.T) {
	assert.True(t, IsStopword("The"))
	assert.True(t, IsStopword("THE"))
	assert.True(t, IsStopword("그러나"))
	assert.False(t, IsStopword("Seoul"))
	assert.False(t, IsStopword("서울"))
}

func TestExtractEntities(t *testing.T) {
	entities, err := ExtractEntities([]string{
		"Yi Sun-sin defended Korea at the Battle of Myeongnyang.",
		"",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entities)
	for _, entity := range entities {
		assert.False(t, IsStopword(entity))
	}
}

func TestAugmentFromCorpusOnlyConfirmsKnown(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", "서울 서울 서울 부산 부산")
	second := writeFile(t, dir, "b.txt", "서울 서울 대구 대구 대구 대구 대구")

	registry := NewRegistry("서울", "부산")
	confirmed, err := registry.AugmentFromCorpus([]string{first, second},
		wordTokenizer, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, confirmed)
	// 대구 is frequent but unknown, so it is not discovered.
	assert.False(t, registry.IsKnown("대구"))
	assert.Equal(t, []string{"부산", "서울"}, registry.Nouns())
}

func TestAugmentFromCorpusEmptyRegistryIsNoop(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", strings.Repeat("가", 20))
	registry := NewRegistry()
	confirmed, err := registry.AugmentFromCorpus([]string{path},
		syllableTokenizer, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, confirmed)
	assert.Equal(t, 0, registry.Len())
}

func TestAugmentFromCorpusNormalizes(t *testing.T) {
	dir := t.TempDir()
	// Latin text is stripped before tokenizing.
	path := writeFile(t, dir, "a.txt", "가A가B가C가D가E")
	registry := NewRegistry("가", "A")
	confirmed, err := registry.AugmentFromCorpus([]string{path},
		syllableTokenizer, DefaultMinFrequency)
	require.NoError(t, err)
	assert.Equal(t, 1, confirmed)
}

func TestAugmentFromCorpusMissingFile(t *testing.T) {
	registry := NewRegistry("가")
	_, err := registry.AugmentFromCorpus(
		[]string{filepath.Join(t.TempDir(), "missing.txt")},
		syllableTokenizer, 1)
	assert.Error(t, err)
}

func TestAugmentFromModelBadDirectory(t *testing.T) {
	registry := NewRegistry("가")
	_, err := registry.AugmentFromModel(nil,
		filepath.Join(t.TempDir(), "no-model"), 1)
	assert.True(t, errors.Is(err, types.ErrTokenizerLoad))
}
