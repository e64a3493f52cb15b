// Command evalgate evaluates RAG, agent, and chatbot systems against
// their datasets and gates on the results: exit 0 when everything
// passed, 1 when any case failed, 2 on configuration or runtime errors.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/evalgate/evalgate/internal/config"
	"github.com/evalgate/evalgate/internal/dataset"
	"github.com/evalgate/evalgate/internal/evaluator"
	"github.com/evalgate/evalgate/internal/history"
	"github.com/evalgate/evalgate/internal/llm"
	"github.com/evalgate/evalgate/internal/oracle"
	"github.com/evalgate/evalgate/internal/report"
	"github.com/evalgate/evalgate/pkg/types"
)

const version = "0.1.0"

const (
	exitPass = 0
	exitFail = 1
	exitErr  = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	code := exitPass
	root := newRootCmd(ctx, &code)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitErr
	}
	return code
}

func newRootCmd(ctx context.Context, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "evalgate",
		Short:         "Threshold-gated LLM evaluation for RAG, agent, and chatbot systems",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(ctx, code), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the evalgate version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "evalgate %s\n", version)
		},
	}
}

func newRunCmd(ctx context.Context, code *int) *cobra.Command {
	var (
		threshold   float64
		datasetsDir string
		reportDir   string
	)

	cmd := &cobra.Command{
		Use:       "run [rag|agent|chatbot|all]",
		Short:     "Evaluate a system's dataset and gate on the results",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"rag", "agent", "chatbot", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				if threshold <= 0 || threshold > 1 {
					return fmt.Errorf("--threshold %v out of range (0, 1]", threshold)
				}
				settings.Threshold = threshold
			}
			if datasetsDir != "" {
				settings.DatasetsDir = datasetsDir
			}
			if reportDir != "" {
				settings.ReportDir = reportDir
			}
			if err := settings.Validate(); err != nil {
				return err
			}

			rt, err := newRuntime(ctx, settings)
			if err != nil {
				return err
			}
			defer rt.Close()

			if args[0] == "all" {
				*code = rt.runAll(ctx)
				return nil
			}

			result, err := rt.runOne(ctx, types.System(args[0]))
			if err != nil {
				return err
			}
			*code = result
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", evaluator.DefaultThreshold, "pass threshold override")
	cmd.Flags().StringVar(&datasetsDir, "datasets", "", "datasets directory override")
	cmd.Flags().StringVar(&reportDir, "reports", "", "report directory override")
	return cmd
}

// runtime holds the assembled collaborators shared by every evaluation
// in one invocation.
type runtime struct {
	settings *config.Settings
	scorer   oracle.Scorer
	loader   *dataset.Loader
	writer   *report.Writer
	store    *history.Store
}

func newRuntime(ctx context.Context, settings *config.Settings) (*runtime, error) {
	provider, model, err := buildProvider(ctx, settings)
	if err != nil {
		return nil, err
	}

	loader, err := dataset.NewLoader(settings.DatasetsDir)
	if err != nil {
		return nil, err
	}
	writer, err := report.NewWriter(settings.ReportDir)
	if err != nil {
		return nil, err
	}

	var store *history.Store
	if settings.HistoryDB != "" {
		if store, err = history.Open(settings.HistoryDB); err != nil {
			return nil, err
		}
	}

	return &runtime{
		settings: settings,
		scorer:   oracle.New(provider, model),
		loader:   loader,
		writer:   writer,
		store:    store,
	}, nil
}

func (rt *runtime) Close() {
	if rt.store != nil {
		rt.store.Close()
	}
}

func buildProvider(ctx context.Context, s *config.Settings) (llm.Provider, string, error) {
	var (
		provider llm.Provider
		model    string
		err      error
	)
	switch s.Provider {
	case config.ProviderGemini:
		provider, err = llm.NewGeminiProvider(ctx, s.GeminiAPIKey, s.GeminiModel)
		model = s.GeminiModel
	case config.ProviderOpenAI:
		provider, err = llm.NewOpenAIProvider(s.OpenAIAPIKey, s.OpenAIModel)
		model = s.OpenAIModel
	case config.ProviderMock:
		provider = llm.NewJudgeMockProvider()
	default:
		err = fmt.Errorf("unknown provider %q", s.Provider)
	}
	if err != nil {
		return nil, "", err
	}

	if s.RequestsPerMinute > 0 {
		cfg := llm.DefaultRateLimiterConfig
		cfg.RequestsPerMinute = s.RequestsPerMinute
		provider, err = llm.NewRateLimitedProvider(provider, cfg)
		if err != nil {
			return nil, "", err
		}
	}
	return provider, model, nil
}

// runOne evaluates a single system end to end: load, evaluate, print,
// persist. The returned code is exitPass or exitFail.
func (rt *runtime) runOne(ctx context.Context, sys types.System) (int, error) {
	fmt.Printf("Running %s System Evaluation\n", sys.DisplayName())

	cases, err := rt.loader.Load(sys)
	if err != nil {
		return 0, err
	}
	fmt.Printf("Loaded %d test cases\n", len(cases))

	eval, err := evaluator.New(sys, rt.scorer, rt.settings.Threshold)
	if err != nil {
		return 0, err
	}

	rs, err := eval.Evaluate(ctx, cases)
	if err != nil {
		return 0, err
	}

	fmt.Println()
	fmt.Println(eval.GenerateReport(rs))
	fmt.Println()

	if rt.settings.SaveJSON {
		path, err := rt.writer.SaveJSON(rs)
		if err != nil {
			return 0, err
		}
		fmt.Printf("JSON report saved: %s\n", path)
	}
	if rt.settings.SaveHTML {
		path, err := rt.writer.SaveHTML(rs)
		if err != nil {
			return 0, err
		}
		fmt.Printf("HTML report saved: %s\n", path)
	}

	if rt.store != nil {
		if err := rt.store.RecordRun(rs); err != nil {
			return 0, err
		}
	}

	if !rs.Passed {
		return exitFail, nil
	}
	return exitPass, nil
}

// runAll evaluates all three systems independently and returns the
// worst exit code. A failure in one system never stops the others.
func (rt *runtime) runAll(ctx context.Context) int {
	systems := []types.System{types.SystemRAG, types.SystemAgent, types.SystemChatbot}
	codes := make(map[types.System]int, len(systems))

	worst := exitPass
	for _, sys := range systems {
		code, err := rt.runOne(ctx, sys)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s evaluation failed: %v\n", sys.DisplayName(), err)
			code = exitErr
		}
		codes[sys] = code
		if code > worst {
			worst = code
		}
		fmt.Println()
	}

	fmt.Println("EVALUATION SUMMARY")
	for _, sys := range systems {
		status := "PASSED"
		if codes[sys] != exitPass {
			status = "FAILED"
		}
		fmt.Printf("  %s: %s\n", sys.DisplayName(), status)
	}
	return worst
}
