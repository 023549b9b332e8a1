package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/predator4hack/gitscout/internal/core/scoring"
	dom "github.com/predator4hack/gitscout/internal/services/search/domain"
	searchsvc "github.com/predator4hack/gitscout/internal/services/search/service"

	"github.com/manifoldco/promptui"
)

const (
	promptQuit    = "Quit"
	promptBack    = "Back"
	promptAnalyze = "Ask the model for a skills breakdown"
)

// browse lets the user pick candidates and read their details until they quit
func browse(ctx context.Context, out io.Writer, svc dom.ServicePort, sessionID, provider string, cs []scoring.ScoredCandidate) error {
	items := make([]string, 0, len(cs)+1)
	for i, c := range cs {
		items = append(items, label(i, c))
	}
	items = append(items, promptQuit)

	for {
		pick := promptui.Select{Label: "Candidates", Items: items, Size: 15}
		i, choice, err := pick.Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || choice == promptQuit {
			return nil
		}
		if err != nil {
			return err
		}
		c := cs[i]
		fmt.Fprintln(out, searchsvc.Brief(c, ""))

		next := promptui.Select{Label: c.Profile.Login, Items: []string{promptAnalyze, promptBack}}
		_, action, err := next.Run()
		if err != nil || action == promptBack {
			continue
		}
		a, err := svc.Analyze(ctx, sessionID, c.Profile.Login, provider)
		if err != nil {
			fmt.Fprintf(out, "analysis failed: %v\n", err)
			continue
		}
		writeAnalysis(out, a)
	}
}

func writeAnalysis(out io.Writer, a dom.Analysis) {
	fmt.Fprintf(out, "%s\n", a.ProfileSummary)
	section := func(title string, skills []dom.Skill) {
		if len(skills) == 0 {
			return
		}
		fmt.Fprintf(out, "\n%s:\n", title)
		for _, s := range skills {
			fmt.Fprintf(out, "  %-24s %-12s %s\n", s.Name, s.Level, strings.Join(s.Repositories, ", "))
		}
	}
	section("Domains", a.DomainExpertise)
	section("Technologies", a.TechnicalExpertise)
	if len(a.BehavioralPatterns) > 0 {
		fmt.Fprintln(out, "\nPatterns:")
		for _, p := range a.BehavioralPatterns {
			fmt.Fprintf(out, "  %s: %s\n", p.Name, p.Description)
		}
	}
	fmt.Fprintln(out)
}

func label(i int, c scoring.ScoredCandidate) string {
	return fmt.Sprintf("%2d. %-20s %6.2f  %s", i+1, c.Profile.Login, c.Score, c.MatchReason)
}
