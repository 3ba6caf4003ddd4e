package recommend

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Document is a corpus entry for the analyzer.
type Document struct {
	ID   string
	Text string
}

var stopwords = map[string]struct{}{
	"the": {}, "is": {}, "at": {}, "which": {}, "on": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "with": {}, "to": {}, "for": {},
	"of": {}, "as": {}, "by": {},
}

// semanticCluster is a hand-curated group of related terms. The key term is
// the canonical label; membership earns a reduced similarity weight.
type semanticCluster struct {
	canonical string
	members   []string
}

var semanticClusters = []semanticCluster{
	{"action", []string{"adventure", "thriller", "fighting", "chase", "explosive", "intense"}},
	{"comedy", []string{"funny", "humor", "laugh", "hilarious", "entertaining", "witty"}},
	{"drama", []string{"emotional", "serious", "touching", "powerful", "deep", "moving"}},
	{"horror", []string{"scary", "frightening", "terror", "suspense", "creepy", "dark"}},
	{"romance", []string{"love", "romantic", "passion", "relationship", "heart", "intimate"}},
}

// ContentAnalyzer builds a TF-IDF vector space over a document corpus and
// provides cosine similarity with a semantic-cluster bonus. BuildCorpus must
// be re-run in full whenever the corpus changes; there is no incremental
// update path.
type ContentAnalyzer struct {
	idfScores  map[string]float64
	vocabulary map[string]int
	totalDocs  int
}

func NewContentAnalyzer() *ContentAnalyzer {
	return &ContentAnalyzer{
		idfScores:  make(map[string]float64),
		vocabulary: make(map[string]int),
	}
}

// BuildCorpus computes per-term document frequency and IDF scores over the
// given documents, replacing any previous corpus state.
func (a *ContentAnalyzer) BuildCorpus(documents []Document) {
	a.totalDocs = len(documents)
	a.idfScores = make(map[string]float64)
	a.vocabulary = make(map[string]int)

	docFrequency := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, word := range a.tokenize(doc.Text) {
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			docFrequency[word]++
		}
	}

	for word, freq := range docFrequency {
		a.idfScores[word] = math.Log(float64(a.totalDocs) / float64(freq))
		a.vocabulary[word] = freq
	}
}

// VocabularySize reports the number of distinct terms in the trained corpus.
func (a *ContentAnalyzer) VocabularySize() int {
	return len(a.vocabulary)
}

// InVocabulary reports whether a stemmed term was observed during BuildCorpus.
func (a *ContentAnalyzer) InVocabulary(term string) bool {
	_, ok := a.vocabulary[term]
	return ok
}

// Vectorize converts text into a sparse TF-IDF vector. Terms absent from
// the trained corpus carry zero IDF and contribute nothing; this is the
// accepted cold-vocabulary behavior, not an error.
func (a *ContentAnalyzer) Vectorize(text string) map[string]float64 {
	words := a.tokenize(text)
	if len(words) == 0 {
		return map[string]float64{}
	}

	termFreq := make(map[string]int)
	for _, word := range words {
		termFreq[word]++
	}

	vector := make(map[string]float64, len(termFreq))
	for term, tf := range termFreq {
		idf := a.idfScores[term]
		if idf == 0 {
			continue
		}
		vector[term] = (float64(tf) / float64(len(words))) * idf
	}
	return vector
}

// SemanticWeight scores how related two terms are: 1.0 for identical terms,
// 0.8 when one is a cluster's canonical label and the other a member, 0.7
// when both are members of the same cluster, 0 otherwise.
func (a *ContentAnalyzer) SemanticWeight(t1, t2 string) float64 {
	if t1 == t2 {
		return 1.0
	}
	for _, cluster := range semanticClusters {
		m1 := containsString(cluster.members, t1)
		m2 := containsString(cluster.members, t2)
		if m1 && m2 {
			return 0.7
		}
		if (t1 == cluster.canonical && m2) || (t2 == cluster.canonical && m1) {
			return 0.8
		}
	}
	return 0
}

// CosineSimilarity computes cosine similarity over the union of keys plus an
// additive cross-term semantic bonus, clamped to [0, 1]. A zero-magnitude
// vector on either side yields 0.
func (a *ContentAnalyzer) CosineSimilarity(vecA, vecB map[string]float64) float64 {
	var dot, magA, magB float64

	union := make(map[string]struct{}, len(vecA)+len(vecB))
	for k := range vecA {
		union[k] = struct{}{}
	}
	for k := range vecB {
		union[k] = struct{}{}
	}
	for k := range union {
		vA := vecA[k]
		vB := vecB[k]
		dot += vA * vB
		magA += vA * vA
		magB += vB * vB
	}

	// Cross-term bonus for distinct terms in the same semantic cluster,
	// weighted lower than exact matches.
	for t1, vA := range vecA {
		for t2, vB := range vecB {
			if t1 == t2 {
				continue
			}
			if w := a.SemanticWeight(t1, t2); w > 0 {
				dot += vA * vB * w * 0.3
			}
		}
	}

	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0
	}
	return math.Min(dot/(magA*magB), 1.0)
}

// tokenize lowercases, strips punctuation, drops stopwords and short
// tokens, and applies a crude suffix stemmer.
func (a *ContentAnalyzer) tokenize(text string) []string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tokens := make([]string, 0, len(fields))
	for _, word := range fields {
		if len(word) <= 2 {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		tokens = append(tokens, stem(word))
	}
	return tokens
}

// stem removes common English suffixes. Deliberately crude: the corpus is
// small enough that a full stemmer buys nothing.
func stem(word string) string {
	switch {
	case strings.HasSuffix(word, "ing"):
		return word[:len(word)-3]
	case strings.HasSuffix(word, "ed"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ly"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "tion"):
		return word[:len(word)-4]
	case strings.HasSuffix(word, "ness"):
		return word[:len(word)-4]
	}
	return word
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
