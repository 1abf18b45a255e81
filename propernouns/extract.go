package propernouns

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// A capitalized Latin word, or a maximal run of Hangul syllables. `\b` is
// ASCII-only, so `Seoul에서` yields `Seoul` and `에서`.
var candidatePattern = regexp.MustCompile(`\b[A-Z][a-z]+\b|[가-힣]+`)

// Conjunctions, particles and other function words in English and Korean.
var stopwords = map[string]struct{}{}

func init() {
	for _, word := range strings.Fields(englishStopwords + " " +
		koreanStopwords) {
		stopwords[word] = struct{}{}
	}
}

const englishStopwords = `a an the and or but nor so yet if then else
	of in on at to for with by from as into onto upon about over under
	is are was were be been being am do does did has have had
	this that these those it its he she they we you i me him her them us
	his their our my your not no yes there here when where what who whom
	which why how also however therefore thus after before while because
	although though during since until unless all any each every some
	such than too very can could will would shall should may might must
	mr mrs ms dr`

const koreanStopwords = `그리고 그러나 하지만 그래서 그런데 그러므로 따라서 또는 또한
	및 즉 혹은 게다가 왜냐하면 그러면 그래도 그러니까 다만 단 만약
	이 그 저 것 수 등 때 중 더 곳 점 바 데 뿐 듯
	은 는 가 을 를 의 에 에서 에게 께 한테 으로 로 와 과 도 만 까지 부터
	보다 처럼 같이 마다 이나 나 이며 며 하고 이다 하다 있다 없다 되다
	그것 이것 저것 여기 거기 저기 우리 저희 너희 그들 나 너 당신
	매우 아주 너무 다시 모두 모든 각 한 두 세 몇 어느 무슨 어떤`

// IsStopword reports whether the case-folded word is a stopword.
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// ExtractCandidates
// Proposes proper nouns from raw text: every capitalized Latin word and
// every maximal Hangul run that is not a stopword. Returns the union over
// all texts, deduplicated and sorted. This favors recall; many common
// words come back and the result should be reviewed before use.
func ExtractCandidates(texts []string) []string {
	seen := make(map[string]struct{})
	for _, text := range texts {
		for _, candidate := range candidatePattern.FindAllString(text, -1) {
			if !IsStopword(candidate) {
				seen[candidate] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// ExtractEntities
// Proposes proper nouns from Latin-script text with prose: named entities
// and tokens tagged NNP/NNPS, stopword-filtered, as a sorted union.
func ExtractEntities(texts []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, text := range texts {
		doc, err := prose.NewDocument(text,
			prose.WithSegmentation(false))
		if err != nil {
			return nil, err
		}
		for _, entity := range doc.Entities() {
			addEntity(seen, entity.Text)
		}
		for _, token := range doc.Tokens() {
			if token.Tag == "NNP" || token.Tag == "NNPS" {
				addEntity(seen, token.Text)
			}
		}
	}
	return sortedKeys(seen), nil
}

func addEntity(seen map[string]struct{}, text string) {
	text = strings.TrimSpace(text)
	if text == "" || IsStopword(text) || !strings.ContainsFunc(text,
		unicode.IsLetter) {
		return
	}
	seen[text] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
