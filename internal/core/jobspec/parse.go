package jobspec

import (
	"encoding/json"
	"strings"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"

	"github.com/mitchellh/mapstructure"
)

// wire is the loose shape models reply with
// numbers may arrive as strings and lists as comma separated strings
type wire struct {
	RoleTitle        string   `json:"role_title"`
	Languages        []string `json:"languages"`
	CoreDomains      []string `json:"core_domains"`
	CoreKeywords     []string `json:"core_keywords"`
	NiceKeywords     []string `json:"nice_keywords"`
	RecencyDays      *int     `json:"recency_days"`
	MinRepoStars     *int     `json:"min_repo_stars"`
	ExcludeForks     *bool    `json:"exclude_forks"`
	ExcludeArchived  *bool    `json:"exclude_archived"`
	MinFollowers     *int     `json:"min_followers"`
	LocationHint     string   `json:"location_hint"`
	MaxRepoQueries   *int     `json:"max_repo_queries"`
	MaxReposPerQuery *int     `json:"max_repos_per_query"`
}

// ParseLLM decodes a model reply into a spec
//
// The reply may be wrapped in markdown fences or surrounded by prose; the first JSON object
// wins. Absent fields take their defaults; thresholds the reply names are kept through
// Normalize. The result is not normalized.
func ParseLLM(reply string) (Spec, error) {
	obj, ok := FirstObject(StripFences(reply))
	if !ok {
		return Spec{}, perr.JSONErrf("no json object in model reply")
	}

	var m map[string]any
	if err := json.Unmarshal([]byte(obj), &m); err != nil {
		return Spec{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode model reply")
	}

	var w wire
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           &w,
	})
	if err != nil {
		return Spec{}, perr.Wrap(err, perr.ErrorCodeUnknown, "build decoder")
	}
	if err := dec.Decode(m); err != nil {
		return Spec{}, perr.Wrap(err, perr.ErrorCodeJSON, "decode spec fields")
	}
	return w.spec(), nil
}

func (w wire) spec() Spec {
	s := Defaults()
	s.RoleTitle = w.RoleTitle
	s.LocationHint = w.LocationHint
	s.Languages = trimAll(w.Languages)
	s.CoreDomains = trimAll(w.CoreDomains)
	s.CoreKeywords = trimAll(w.CoreKeywords)
	s.NiceKeywords = trimAll(w.NiceKeywords)
	setInt(&s.RecencyDays, w.RecencyDays)
	if w.MinRepoStars != nil {
		s = s.WithMinRepoStars(*w.MinRepoStars)
	}
	if w.MinFollowers != nil {
		s = s.WithMinFollowers(*w.MinFollowers)
	}
	setInt(&s.MaxRepoQueries, w.MaxRepoQueries)
	setInt(&s.MaxReposPerQuery, w.MaxReposPerQuery)
	if w.ExcludeForks != nil {
		s.ExcludeForks = *w.ExcludeForks
	}
	if w.ExcludeArchived != nil {
		s.ExcludeArchived = *w.ExcludeArchived
	}
	return s
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// StripFences removes a surrounding markdown code fence, with or without a language tag
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// FirstObject returns the first balanced {...} in s, honouring string literals
func FirstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inStr, esc := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
