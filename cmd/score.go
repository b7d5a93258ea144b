package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/reposcore/reposcore/config"
	"github.com/reposcore/reposcore/internal/ghclient"
	"github.com/reposcore/reposcore/internal/log"
	"github.com/reposcore/reposcore/internal/model"
	"github.com/reposcore/reposcore/internal/output"
	"github.com/reposcore/reposcore/internal/repourl"
	"github.com/reposcore/reposcore/internal/score"
	"github.com/reposcore/reposcore/internal/tui"
)

// scoreRuntime bundles TUI-related state for one scoring run.
type scoreRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
}

// start launches the TUI goroutine if TUI mode is enabled.
func (rt *scoreRuntime) start(repoName string) {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, 100)
	rt.tuiDone = make(chan error, 1)
	go func() {
		rt.tuiDone <- tui.Run(rt.events, tui.WithRepoName(repoName))
	}()
}

// close closes the event channel and waits for the TUI to finish.
func (rt *scoreRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	rt.events = nil
	if rt.tuiDone != nil {
		<-rt.tuiDone
	}
}

// sendEvent sends a task event to the TUI channel if it exists.
func (rt *scoreRuntime) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if rt.events == nil {
		return
	}
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

// NewCmdScore creates the score command.
func NewCmdScore(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [repository...]",
		Short: "Score repository engagement quality (same as root reposcore)",
		Long: `Collects a repository's stargazers, watchers, and forkers, classifies
each engaged user by their activity and affiliation, and reports the
share of significant users. Repositories can be given as URLs or as
owner/name. With no arguments and an interactive terminal, addresses
are read from a prompt.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, opts)
		},
	}

	addScoreFlags(cmd, opts)
	return cmd
}

// addScoreFlags adds the score-specific flags to a command.
func addScoreFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent classification workers (default from config)")

	// Significance rule overrides
	cmd.Flags().StringVar(&opts.Org, "org", "", "Company substring that marks a user as org-affiliated")
	cmd.Flags().IntVar(&opts.MinContributions, "min-contributions", 0, "Contributions in the last year required for significance")
	cmd.Flags().IntVar(&opts.MinRepositories, "min-repositories", 0, "Owned repositories required for significance")

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable TUI progress (default: auto-detect)")

	// Profiling flags
	cmd.Flags().StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	cmd.Flags().StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	cmd.Flags().StringVar(&opts.Trace, "trace", "", "Write execution trace to file")
}

func runScore(cmd *cobra.Command, args []string, opts *Options) error {
	ctx := cmd.Context()

	profiler := NewProfiler(opts.CPUProfile, opts.MemProfile, opts.Trace)
	if err := profiler.Start(); err != nil {
		return err
	}
	defer profiler.Stop()

	useTUI := shouldUseTUI(opts)

	// Suppress logs during TUI to avoid interleaving with the display
	if useTUI {
		log.Initialize(opts.Verbosity, io.Discard)
	} else {
		log.Initialize(opts.Verbosity, os.Stderr)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	format := output.Format(opts.Format)
	if format == "" {
		format = output.Format(cfg.DefaultFormat)
	}
	if !output.ValidFormat(format) {
		return fmt.Errorf("invalid format: %s (must be table, json, or markdown)", format)
	}

	client, err := ghclient.NewClient(ctx, cfg.GetGitHubToken())
	if err != nil {
		return err
	}

	login, err := client.AuthenticatedUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate with GitHub: %w", err)
	}
	log.Info("authenticated", "login", login)

	rule, workers := resolveRule(cmd, cfg, opts)

	if len(args) == 0 {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no repository specified (pass owner/name or a repository URL)")
		}
		return runInteractive(ctx, client, rule, workers, useTUI, login, format)
	}

	formatter := output.NewFormatter(format)
	results := make([]model.ScoreResult, 0, len(args))
	for _, address := range args {
		result, err := scoreOne(ctx, client, address, rule, workers, useTUI, login)
		if err != nil {
			return err
		}
		results = append(results, *result)
	}

	return formatter.Format(results, os.Stdout)
}

// resolveRule merges config thresholds with any explicit flag overrides.
func resolveRule(cmd *cobra.Command, cfg *config.Config, opts *Options) (score.Rule, int) {
	thresholds := cfg.GetThresholds()

	rule := score.Rule{
		OrgSubstring:     thresholds.OrgSubstring,
		MinContributions: thresholds.MinContributions,
		MinRepositories:  thresholds.MinRepositories,
	}

	flags := cmd.Flags()
	if flags.Changed("org") {
		rule.OrgSubstring = opts.Org
	}
	if flags.Changed("min-contributions") {
		rule.MinContributions = opts.MinContributions
	}
	if flags.Changed("min-repositories") {
		rule.MinRepositories = opts.MinRepositories
	}

	workers := thresholds.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}

	return rule, workers
}

// runInteractive reads repository addresses from a prompt, scoring each
// one, until a blank line or EOF.
func runInteractive(ctx context.Context, client *ghclient.Client, rule score.Rule, workers int, useTUI bool, login string, format output.Format) error {
	formatter := output.NewFormatter(format)
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Repository URL (blank to quit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		result, err := scoreOne(ctx, client, line, rule, workers, useTUI, login)
		if err != nil {
			if errors.Is(err, repourl.ErrInvalidAddress) {
				fmt.Fprintf(os.Stderr, "invalid repository address: %s\n", line)
				continue
			}
			return err
		}

		if err := formatter.Format([]model.ScoreResult{*result}, os.Stdout); err != nil {
			return err
		}
		fmt.Println()
	}
}

// scoreOne runs the full pipeline for one address, driving the TUI if
// it is enabled.
func scoreOne(ctx context.Context, client *ghclient.Client, address string, rule score.Rule, workers int, useTUI bool, login string) (*model.ScoreResult, error) {
	rt := &scoreRuntime{useTUI: useTUI}
	rt.start(address)
	defer rt.close()

	rt.sendEvent(tui.TaskAuth, tui.StatusComplete, tui.WithMessage(login))
	rt.sendEvent(tui.TaskCounts, tui.StatusRunning)

	var collected int64
	var countsDone sync.Once

	engine := score.NewEngine(client,
		score.WithRule(rule),
		score.WithWorkers(workers),
		score.WithCollectProgress(func(kind model.RelationKind, count int) {
			// Counts are fetched before collection starts, so the first
			// collection callback means that step is behind us.
			countsDone.Do(func() {
				rt.sendEvent(tui.TaskCounts, tui.StatusComplete)
			})
			total := atomic.AddInt64(&collected, int64(count))
			rt.sendEvent(tui.TaskCollect, tui.StatusRunning, tui.WithCount(int(total)))
		}),
		score.WithClassifyProgress(func(completed, total int) {
			if total == 0 {
				return
			}
			rt.sendEvent(tui.TaskClassify, tui.StatusRunning,
				tui.WithProgress(float64(completed)/float64(total)),
				tui.WithMessage(fmt.Sprintf("%d/%d", completed, total)))
			if !useTUI {
				log.Progress("Classifying users: %d/%d...", completed, total)
			}
		}),
	)

	result, err := engine.Score(ctx, address)
	if err != nil {
		if errors.Is(err, repourl.ErrInvalidAddress) {
			return nil, err
		}
		// Cancellation: the partial result is still worth rendering if
		// the caller wants it, but the run itself failed.
		return nil, fmt.Errorf("scoring %s interrupted: %w", address, err)
	}
	if !useTUI {
		log.ProgressDone()
	}

	countsDone.Do(func() {
		rt.sendEvent(tui.TaskCounts, tui.StatusComplete)
	})
	rt.sendEvent(tui.TaskCollect, tui.StatusComplete, tui.WithCount(result.TotalEngaged))
	rt.sendEvent(tui.TaskClassify, tui.StatusComplete,
		tui.WithMessage(fmt.Sprintf("%d significant", result.SignificantCount)))

	if _, _, resetAt, limited := ghclient.GetRateLimitStatus(); limited {
		tui.SendEvent(rt.events, tui.RateLimitEvent{Limited: true, ResetAt: resetAt})
		log.Warn("rate limit exhausted during scoring, results may undercount", "resets_at", resetAt)
	}

	return result, nil
}
