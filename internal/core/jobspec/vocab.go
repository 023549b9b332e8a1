package jobspec

import (
	"regexp"
	"sort"
	"strings"

	"github.com/predator4hack/gitscout/internal/core/textfold"
)

// term is one vocabulary entry: a canonical value and the folded phrases that name it
// raw is matched against the unfolded text, for names that are only unambiguous when cased
type term struct {
	canon   string
	phrases []string
	raw     *regexp.Regexp

	res []*regexp.Regexp
}

var languageAliases = map[string]string{
	"js":          "JavaScript",
	"javascript":  "JavaScript",
	"ecmascript":  "JavaScript",
	"node":        "JavaScript",
	"nodejs":      "JavaScript",
	"node.js":     "JavaScript",
	"ts":          "TypeScript",
	"typescript":  "TypeScript",
	"py":          "Python",
	"python":      "Python",
	"python3":     "Python",
	"go":          "Go",
	"golang":      "Go",
	"rust":        "Rust",
	"java":        "Java",
	"kotlin":      "Kotlin",
	"scala":       "Scala",
	"c++":         "C++",
	"cpp":         "C++",
	"c#":          "C#",
	"csharp":      "C#",
	"ruby":        "Ruby",
	"php":         "PHP",
	"swift":       "Swift",
	"elixir":      "Elixir",
	"haskell":     "Haskell",
	"clojure":     "Clojure",
	"dart":        "Dart",
	"julia":       "Julia",
	"lua":         "Lua",
	"objective-c": "Objective-C",
	"objc":        "Objective-C",
	"shell":       "Shell",
	"bash":        "Shell",
}

// CanonicalLanguage maps an alias to the GitHub language name
// unknown names are returned trimmed
func CanonicalLanguage(s string) string {
	s = strings.TrimSpace(s)
	if c, ok := languageAliases[textfold.Fold(s)]; ok {
		return c
	}
	return s
}

var languageVocab = compile([]term{
	{canon: "Python", phrases: []string{"python", "django", "flask", "fastapi"}},
	{canon: "Go", phrases: []string{"golang"}, raw: regexp.MustCompile(`(^|[^A-Za-z0-9])Go($|[^A-Za-z0-9])`)},
	{canon: "TypeScript", phrases: []string{"typescript"}},
	{canon: "JavaScript", phrases: []string{"javascript", "node.js", "nodejs"}},
	{canon: "Rust", phrases: []string{"rust"}},
	{canon: "Java", phrases: []string{"java", "spring boot"}},
	{canon: "Kotlin", phrases: []string{"kotlin"}},
	{canon: "Scala", phrases: []string{"scala"}},
	{canon: "C++", phrases: []string{"c++", "cpp"}},
	{canon: "C#", phrases: []string{"c#", ".net", "csharp"}},
	{canon: "Ruby", phrases: []string{"ruby", "rails"}},
	{canon: "PHP", phrases: []string{"php", "laravel"}},
	{canon: "Swift", phrases: []string{"swift"}},
	{canon: "Elixir", phrases: []string{"elixir"}},
	{canon: "Haskell", phrases: []string{"haskell"}},
	{canon: "Dart", phrases: []string{"dart", "flutter"}},
})

var domainVocab = compile([]term{
	{canon: "machine-learning", phrases: []string{"machine learning", "machine-learning", "ml"}},
	{canon: "deep-learning", phrases: []string{"deep learning", "deep-learning", "neural network", "neural networks"}},
	{canon: "nlp", phrases: []string{"nlp", "natural language processing"}},
	{canon: "computer-vision", phrases: []string{"computer vision", "computer-vision"}},
	{canon: "data-engineering", phrases: []string{"data engineering", "data engineer", "data pipeline", "data pipelines", "etl"}},
	{canon: "data-science", phrases: []string{"data science", "data scientist"}},
	{canon: "backend", phrases: []string{"backend", "back-end", "back end", "server-side"}},
	{canon: "frontend", phrases: []string{"frontend", "front-end", "front end"}},
	{canon: "devops", phrases: []string{"devops", "sre", "site reliability"}},
	{canon: "distributed-systems", phrases: []string{"distributed systems", "distributed system"}},
	{canon: "security", phrases: []string{"security", "appsec", "infosec"}},
	{canon: "mobile", phrases: []string{"mobile", "ios", "android"}},
	{canon: "blockchain", phrases: []string{"blockchain", "web3", "smart contracts"}},
	{canon: "cloud-native", phrases: []string{"cloud native", "cloud-native"}},
	{canon: "database", phrases: []string{"database internals", "databases", "storage engine"}},
	{canon: "game-development", phrases: []string{"game development", "gamedev", "game engine"}},
	{canon: "embedded", phrases: []string{"embedded", "firmware"}},
})

var keywordVocab = compile([]term{
	{canon: "kafka", phrases: []string{"kafka"}},
	{canon: "kubernetes", phrases: []string{"kubernetes", "k8s"}},
	{canon: "docker", phrases: []string{"docker", "containers"}},
	{canon: "grpc", phrases: []string{"grpc"}},
	{canon: "graphql", phrases: []string{"graphql"}},
	{canon: "microservices", phrases: []string{"microservices", "microservice"}},
	{canon: "react", phrases: []string{"react", "react.js", "reactjs"}},
	{canon: "vue", phrases: []string{"vue", "vue.js", "vuejs"}},
	{canon: "angular", phrases: []string{"angular"}},
	{canon: "nextjs", phrases: []string{"next.js", "nextjs"}},
	{canon: "nodejs", phrases: []string{"node.js", "nodejs"}},
	{canon: "django", phrases: []string{"django"}},
	{canon: "flask", phrases: []string{"flask"}},
	{canon: "fastapi", phrases: []string{"fastapi"}},
	{canon: "spring", phrases: []string{"spring", "spring boot"}},
	{canon: "rails", phrases: []string{"rails", "ruby on rails"}},
	{canon: "tensorflow", phrases: []string{"tensorflow"}},
	{canon: "pytorch", phrases: []string{"pytorch"}},
	{canon: "scikit-learn", phrases: []string{"scikit-learn", "sklearn"}},
	{canon: "pandas", phrases: []string{"pandas"}},
	{canon: "spark", phrases: []string{"spark", "pyspark"}},
	{canon: "airflow", phrases: []string{"airflow"}},
	{canon: "llm", phrases: []string{"llm", "llms", "large language models"}},
	{canon: "langchain", phrases: []string{"langchain"}},
	{canon: "postgresql", phrases: []string{"postgres", "postgresql"}},
	{canon: "mysql", phrases: []string{"mysql"}},
	{canon: "redis", phrases: []string{"redis"}},
	{canon: "mongodb", phrases: []string{"mongodb", "mongo"}},
	{canon: "elasticsearch", phrases: []string{"elasticsearch", "opensearch"}},
	{canon: "rabbitmq", phrases: []string{"rabbitmq"}},
	{canon: "terraform", phrases: []string{"terraform"}},
	{canon: "aws", phrases: []string{"aws", "amazon web services"}},
	{canon: "gcp", phrases: []string{"gcp", "google cloud"}},
	{canon: "azure", phrases: []string{"azure"}},
	{canon: "celery", phrases: []string{"celery"}},
	{canon: "webassembly", phrases: []string{"webassembly", "wasm"}},
})

// nice-to-have section markers; keywords seen only after one go to NiceKeywords
var niceMarkers = []string{"nice to have", "nice-to-have", "bonus", "preferred qualifications", "a plus", "good to have"}

var (
	locationRe = regexp.MustCompile(`\b(?i:location|based in|located in)\s*[:\-]?\s*([A-Z][A-Za-z .'-]*[A-Za-z](?:,\s*[A-Z][A-Za-z .'-]*[A-Za-z])?)`)
	titleRe    = regexp.MustCompile(`(?i)\b(engineer|developer|scientist|architect|programmer|sre|devops)\b`)
)

// ExtractLocal builds a spec from fixed vocabularies without any model call
// matches keep the order in which they first appear in text
func ExtractLocal(text string) Spec {
	s := Defaults()
	if strings.TrimSpace(text) == "" {
		return Normalize(s, text)
	}
	folded := textfold.Fold(text)

	s.RoleTitle = guessTitle(text)
	s.Languages = matchAll(languageVocab, folded, text)
	s.CoreDomains = matchAll(domainVocab, folded, text)

	head, tail := folded, ""
	if i := firstMarker(folded); i >= 0 {
		head, tail = folded[:i], folded[i:]
	}
	s.CoreKeywords = matchAll(keywordVocab, head, "")
	core := make(map[string]struct{}, len(s.CoreKeywords))
	for _, k := range s.CoreKeywords {
		core[k] = struct{}{}
	}
	for _, k := range matchAll(keywordVocab, tail, "") {
		if _, ok := core[k]; !ok {
			s.NiceKeywords = append(s.NiceKeywords, k)
		}
	}

	if m := locationRe.FindStringSubmatch(text); m != nil {
		s.LocationHint = strings.TrimSpace(m[1])
	}
	return Normalize(s, text)
}

func compile(terms []term) []term {
	for i := range terms {
		for _, p := range terms[i].phrases {
			re := regexp.MustCompile(`(^|[^a-z0-9+#])` + regexp.QuoteMeta(p) + `($|[^a-z0-9+#])`)
			terms[i].res = append(terms[i].res, re)
		}
	}
	return terms
}

// matchAll returns the canonical values found in folded (or raw, for cased entries)
// ordered by first position
func matchAll(vocab []term, folded, raw string) []string {
	type hit struct {
		canon string
		pos   int
	}
	var hits []hit
	for _, t := range vocab {
		pos := -1
		for _, re := range t.res {
			if loc := re.FindStringIndex(folded); loc != nil && (pos < 0 || loc[0] < pos) {
				pos = loc[0]
			}
		}
		if t.raw != nil && raw != "" {
			if loc := t.raw.FindStringIndex(raw); loc != nil && (pos < 0 || loc[0] < pos) {
				pos = loc[0]
			}
		}
		if pos >= 0 {
			hits = append(hits, hit{canon: t.canon, pos: pos})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.canon)
	}
	return out
}

func firstMarker(folded string) int {
	best := -1
	for _, m := range niceMarkers {
		if i := strings.Index(folded, m); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best
}

// guessTitle takes the first short line that reads like a role
func guessTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#*- "))
		if line == "" {
			continue
		}
		if len(line) <= 80 && titleRe.MatchString(line) {
			return strings.TrimRight(line, ":.")
		}
		return ""
	}
	return ""
}
