package service

import (
	"context"
	"math"
	"testing"

	"github.com/predator4hack/gitscout/internal/platform/logger"
	"github.com/predator4hack/gitscout/internal/platform/testkit"
	dom "github.com/predator4hack/gitscout/internal/services/discovery/domain"
)

func newTestPipeline(gh dom.GitHubPort, cfg Config) *Pipeline {
	nop := logger.Nop()
	cfg.Log = &nop
	return New(gh, cfg)
}

func TestRepoWeight(t *testing.T) {
	cases := []struct {
		stars int
		want  float64
	}{
		{0, 0},
		{-4, 0},
		{50, 0.5},
		{500, 5},
		{1000, 10},
		{250000, 10},
	}
	for _, c := range cases {
		testkit.MustNear(t, "weight", RepoWeight(c.stars), c.want, 1e-9)
	}
}

func TestSeedDelta(t *testing.T) {
	testkit.MustNear(t, "rank0", SeedDelta(5, 0, 50), 5*math.Log(51), 1e-9)
	testkit.MustNear(t, "rank1", SeedDelta(5, 1, 10), 2.5*math.Log(11), 1e-9)
	testkit.MustNear(t, "zero contributions", SeedDelta(5, 0, 0), 0, 1e-12)
}

func TestAggregateContributorsFormula(t *testing.T) {
	gh := &fakeGitHub{
		contributors: map[string][]dom.Contributor{
			"acme/a": {user("alice", "U_alice", 50), user("bob", "U_bob", 10)},
			"acme/b": {user("bob", "U_bob", 5)},
		},
	}
	p := newTestPipeline(gh, Config{})
	ids, scores := p.aggregateContributors(context.Background(),
		[]dom.RepoCandidate{repo("acme", "a", 500), repo("acme", "b", 50)}, 30, 2)

	if len(scores) != 2 {
		t.Fatalf("scores = %d want 2", len(scores))
	}
	if scores[0].Login != "alice" || scores[1].Login != "bob" {
		t.Fatalf("order = %s,%s want alice,bob", scores[0].Login, scores[1].Login)
	}
	testkit.MustNear(t, "alice", scores[0].Score, 19.659, 1e-3)
	testkit.MustNear(t, "bob", scores[1].Score, 6.8906, 1e-3)
	if ids["alice"] != "U_alice" || ids["bob"] != "U_bob" {
		t.Fatalf("ids = %v", ids)
	}
	for _, n := range gh.perPage {
		if n != 30 {
			t.Fatalf("perPage = %d want 30", n)
		}
	}
}

func TestAggregateContributorsSkipsNonUsersBeforeRanking(t *testing.T) {
	gh := &fakeGitHub{
		contributors: map[string][]dom.Contributor{
			"acme/a": {
				{Login: "dependabot[bot]", NodeID: "B1", Type: "Bot", Contributions: 900},
				{Login: "acme-org", NodeID: "O1", Type: "Organization", Contributions: 300},
				user("carol", "U_carol", 20),
			},
		},
	}
	p := newTestPipeline(gh, Config{})
	_, scores := p.aggregateContributors(context.Background(), []dom.RepoCandidate{repo("acme", "a", 1000)}, 30, 1)

	if len(scores) != 1 || scores[0].Login != "carol" {
		t.Fatalf("scores = %+v want only carol", scores)
	}
	// carol ranks first among humans, so the divisor is 1
	testkit.MustNear(t, "carol", scores[0].Score, 10*math.Log(21), 1e-9)
}

func TestAggregateContributorsFirstSeenNodeID(t *testing.T) {
	gh := &fakeGitHub{
		contributors: map[string][]dom.Contributor{
			"acme/a": {user("dave", "U_first", 3)},
			"acme/b": {user("dave", "U_second", 3)},
		},
	}
	p := newTestPipeline(gh, Config{})
	ids, _ := p.aggregateContributors(context.Background(),
		[]dom.RepoCandidate{repo("acme", "a", 300), repo("acme", "b", 300)}, 30, 2)
	if ids["dave"] != "U_first" {
		t.Fatalf("node id = %q want U_first", ids["dave"])
	}
}

func TestAggregateContributorsFailedRepoSkipped(t *testing.T) {
	gh := &fakeGitHub{
		contributors: map[string][]dom.Contributor{
			"acme/b": {user("erin", "U_erin", 7)},
		},
		contribErr: map[string]error{"acme/a": errBoom},
	}
	p := newTestPipeline(gh, Config{})
	_, scores := p.aggregateContributors(context.Background(),
		[]dom.RepoCandidate{repo("acme", "a", 300), repo("acme", "b", 300)}, 30, 2)
	if len(scores) != 1 || scores[0].Login != "erin" {
		t.Fatalf("scores = %+v want only erin", scores)
	}
}

func TestAggregateContributorsTopN(t *testing.T) {
	var cs []dom.Contributor
	for i, login := range []string{"u1", "u2", "u3", "u4"} {
		cs = append(cs, user(login, "N_"+login, 100-i*10))
	}
	gh := &fakeGitHub{contributors: map[string][]dom.Contributor{"acme/a": cs}}
	p := newTestPipeline(gh, Config{TopContributors: 2})
	ids, scores := p.aggregateContributors(context.Background(), []dom.RepoCandidate{repo("acme", "a", 400)}, 30, 1)
	if len(scores) != 2 || scores[0].Login != "u1" || scores[1].Login != "u2" {
		t.Fatalf("scores = %+v want u1,u2", scores)
	}
	if len(ids) != 4 {
		t.Fatalf("ids = %d want every seen login", len(ids))
	}
}

func TestAggregateContributorsTiesKeepFirstSeenOrder(t *testing.T) {
	gh := &fakeGitHub{
		contributors: map[string][]dom.Contributor{
			"acme/a": {user("zed", "U_zed", 4)},
			"acme/b": {user("amy", "U_amy", 4)},
		},
	}
	p := newTestPipeline(gh, Config{})
	_, scores := p.aggregateContributors(context.Background(),
		[]dom.RepoCandidate{repo("acme", "a", 200), repo("acme", "b", 200)}, 30, 2)
	if len(scores) != 2 || scores[0].Login != "zed" || scores[1].Login != "amy" {
		t.Fatalf("scores = %+v want zed then amy", scores)
	}
}
