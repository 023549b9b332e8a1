package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/predator4hack/gitscout/internal/adapters/llm"
	"github.com/predator4hack/gitscout/internal/core/filtering"
	"github.com/predator4hack/gitscout/internal/core/scoring"
	"github.com/predator4hack/gitscout/internal/modkit"
	"github.com/predator4hack/gitscout/internal/modkit/module"
	"github.com/predator4hack/gitscout/internal/platform/config"
	"github.com/predator4hack/gitscout/internal/platform/logger"
	pstrings "github.com/predator4hack/gitscout/internal/platform/strings"
	discoverymod "github.com/predator4hack/gitscout/internal/services/discovery/module"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
	searchmod "github.com/predator4hack/gitscout/internal/services/search/module"

	"github.com/spf13/cobra"
)

type searchFlags struct {
	jd          string
	provider    string
	maxRepos    int
	perRepo     int
	location    string
	hasEmail    bool
	asJSON      bool
	interactive bool
}

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find candidates for a job description",
		Example: "  gitscout search --jd job.txt\n" +
			"  cat job.txt | gitscout search --jd - --provider gemini --json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.jd, "jd", "", "job description file, - for stdin")
	fl.StringVar(&f.provider, "provider", "", "text backend: gemini, vertex or mock (default LLM_PROVIDER)")
	fl.IntVar(&f.maxRepos, "max-repos", 0, "repositories kept after discovery (default GITSCOUT_MAX_REPOS)")
	fl.IntVar(&f.perRepo, "per-repo", 0, "contributors taken per repository (default GITSCOUT_CONTRIBUTORS_PER_REPO)")
	fl.StringVar(&f.location, "location", "", "keep candidates whose location contains this")
	fl.BoolVar(&f.hasEmail, "has-email", false, "keep candidates with a public email")
	fl.BoolVar(&f.asJSON, "json", false, "print candidates as JSON")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "browse candidates in a prompt")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}

func runSearch(ctx context.Context, stdin io.Reader, out io.Writer, f searchFlags) error {
	text, err := readJD(f.jd, stdin)
	if err != nil {
		return err
	}
	if f.provider != "" {
		if _, err := llm.ParseKind(f.provider); err != nil {
			return err
		}
	}

	deps := modkit.DepsFrom(config.New(), nil, *logger.Get())
	disc := discoverymod.New(deps, discoverymod.Options{})
	search := searchmod.New(deps, searchmod.Options{
		MaxRepos:            f.maxRepos,
		ContributorsPerRepo: f.perRepo,
	}, modkit.WithPorts(module.MustPortsOf[discoverymod.Ports](disc)))
	defer func() { _ = search.Close() }()

	var filters *filtering.Filters
	if fl := (filtering.Filters{Location: f.location, HasEmail: f.hasEmail}); !fl.IsZero() {
		filters = &fl
	}

	svc := search.Service()
	all, sessionID, err := collect(ctx, svc, dom.SearchInput{JobText: text, Provider: f.provider, Filters: filters})
	if err != nil {
		return err
	}

	switch {
	case f.asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	case f.interactive:
		if len(all) == 0 {
			_, err := fmt.Fprintln(out, "no candidates found")
			return err
		}
		return browse(ctx, out, svc, sessionID, f.provider, all)
	default:
		return writeTable(out, all)
	}
}

// collect walks every page of a new session
func collect(ctx context.Context, svc dom.ServicePort, in dom.SearchInput) ([]scoring.ScoredCandidate, string, error) {
	in.PageSize = dom.MaxPageSize
	page, err := svc.Search(ctx, in)
	if err != nil {
		return nil, "", err
	}
	all := append([]scoring.ScoredCandidate{}, page.Candidates...)
	for page.HasMore {
		page, err = svc.Page(ctx, page.SessionID, page.Page+1, dom.MaxPageSize)
		if err != nil {
			return nil, "", err
		}
		all = append(all, page.Candidates...)
	}
	return all, page.SessionID, nil
}

func readJD(path string, stdin io.Reader) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", fmt.Errorf("job description %s is empty", path)
	}
	return text, nil
}

func writeTable(out io.Writer, cs []scoring.ScoredCandidate) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLOGIN\tSCORE\tFOLLOWERS\tLOCATION\tWHY")
	for i, c := range cs {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\t%s\t%s\n",
			i+1, c.Profile.Login, c.Score, c.Profile.Followers,
			pstrings.Truncate(c.Profile.Location, 24), pstrings.Truncate(c.MatchReason, 60))
	}
	return tw.Flush()
}
