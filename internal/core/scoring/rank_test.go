package scoring

import (
	"testing"
	"time"

	"github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

func TestRankStableDescending(t *testing.T) {
	profiles := []domain.CandidateProfile{
		{Login: "low", Followers: 100},
		{Login: "tie-a", Followers: 300},
		{Login: "high", Followers: 700},
		{Login: "tie-b", Followers: 300},
	}
	got := Rank(profiles, now)
	order := []string{"high", "tie-a", "tie-b", "low"}
	for i, want := range order {
		if got[i].Profile.Login != want {
			t.Fatalf("rank[%d] = %s want %s", i, got[i].Profile.Login, want)
		}
	}
	if got[0].Score != 7 {
		t.Fatalf("score %v", got[0].Score)
	}
}

func TestRankTopRepos(t *testing.T) {
	var repos []domain.RepoSummary
	for _, n := range []string{"a", "b", "c", "d", "e", "f"} {
		repos = append(repos, domain.RepoSummary{FullName: "u/" + n})
	}
	got := Rank([]domain.CandidateProfile{{Login: "u", Repositories: repos}}, now)
	if len(got[0].TopRepos) != TopReposPerCandidate || got[0].TopRepos[3].FullName != "u/d" {
		t.Fatalf("top repos %+v", got[0].TopRepos)
	}
	if Rank(nil, now) == nil || len(Rank(nil, now)) != 0 {
		t.Fatalf("nil input should give an empty slice")
	}
}

func TestMatchReason(t *testing.T) {
	day := 24 * time.Hour
	cases := []struct {
		name string
		p    domain.CandidateProfile
		want string
	}{
		{
			name: "empty",
			p:    domain.CandidateProfile{},
			want: DefaultReason,
		},
		{
			name: "languages in first seen order",
			p: domain.CandidateProfile{Repositories: []domain.RepoSummary{
				repo("x/1", 1, false, day, []string{"Rust", "Go"}, nil),
				repo("x/2", 1, false, day, []string{"Go", "Python", "C"}, nil),
			}},
			want: "Expertise in Rust, Go, Python",
		},
		{
			name: "first three reasons only",
			p: domain.CandidateProfile{
				TotalCommits: 250,
				Repositories: []domain.RepoSummary{
					repo("x/1", 80, false, day, []string{"Go"}, []string{"kafka", "grpc"}),
				},
			},
			want: "Expertise in Go; Experience with kafka, grpc; 250 contributions",
		},
		{
			name: "stars from own repos",
			p: domain.CandidateProfile{
				TotalCommits: 100,
				Repositories: []domain.RepoSummary{
					repo("x/1", 40, false, day, nil, nil),
					repo("x/2", 20, false, day, nil, nil),
					repo("x/3", 500, true, day, nil, nil),
				},
			},
			want: "60 stars earned",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MatchReason(c.p); got != c.want {
				t.Fatalf("MatchReason = %q want %q", got, c.want)
			}
		})
	}
}
