package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rahul/drishti/internal/agent"
	"github.com/rahul/drishti/internal/dataset"
	"github.com/rahul/drishti/internal/gateway"
	"github.com/rahul/drishti/internal/governance"
	"github.com/rahul/drishti/internal/observability"
	"github.com/rahul/drishti/internal/store"
	"github.com/rahul/drishti/internal/tools"
	"github.com/rahul/drishti/pkg/config"
)

var (
	flagQuery    string
	flagExamples bool
	flagGraph    bool
	flagConfig   string
)

func main() {
	root := &cobra.Command{
		Use:   "drishti",
		Short: "Goal-directed analysis over Amazon product and review data",
		Long: "Drishti answers natural-language questions about a product and review\n" +
			"dataset by planning a sequence of search, analysis and statistics\n" +
			"operations and synthesizing the results into one answer.",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringVarP(&flagQuery, "query", "q", "", "run a single query and exit")
	root.Flags().BoolVarP(&flagExamples, "example", "e", false, "run the example queries and exit")
	root.Flags().BoolVarP(&flagGraph, "graph", "g", false, "print the workflow graph and exit")
	root.Flags().StringVar(&flagConfig, "config", "config.yaml", "path to config file")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flagGraph {
		fmt.Println(agent.DescribeWorkflow())
		return nil
	}

	cfg := config.LoadConfig(flagConfig)

	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		fmt.Fprintln(os.Stderr, "Error: no API key configured. Set OPENAI_API_KEY or OPENROUTER_API_KEY.")
		os.Exit(1)
	}

	var model llms.Model
	var err error
	switch pName {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(pCfg.APIKey),
			openai.WithModel(pCfg.Model),
		}
		if pCfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(pCfg.BaseURL))
		}
		model, err = openai.New(opts...)
	default:
		return fmt.Errorf("provider %s not supported", pName)
	}
	if err != nil {
		return err
	}

	data, err := dataset.Load(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", cfg.Dataset.Path, err)
	}
	log.Printf("Loaded %d review rows (%d unique products) from %s",
		len(data.Rows()), len(data.Products()), cfg.Dataset.Path)

	registry := tools.NewRegistry(
		tools.NewSearchTool(data),
		tools.NewAnalyzeTool(data),
		tools.NewStatsTool(data),
	)

	gov := governance.NewDefaultPolicyEngine()
	for _, name := range cfg.Agent.DeniedTools {
		gov.DenyTool(name)
	}

	logger := observability.NewLogger()
	prompts := agent.NewPromptManager(cfg.Agent.PromptDir)
	oracle := agent.NewLLMOracle(model, pCfg.Temperature, logger)

	var archive agent.RunArchive
	runs, err := store.NewRunStore(cfg.Store.Path)
	if err != nil {
		log.Printf("Warning: run archive unavailable (%v), continuing without it", err)
	} else {
		defer runs.Close()
		archive = runs
	}

	controller := agent.NewController(oracle, registry, prompts, gov, archive, logger, agent.Options{
		MaxIterations:     cfg.Agent.MaxIterations,
		HaltOnEmptySubset: cfg.Agent.OnEmptySubset == "halt",
		Verbose:           cfg.Agent.Verbose,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Periodic phase heartbeat while a run is in flight.
	if cfg.Agent.Verbose {
		go func() {
			ticker := time.NewTicker(5 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					phase, step, since := observability.Status()
					if phase == "IDLE" || phase == "DONE" {
						continue
					}
					if step != "" {
						log.Printf("[%s] %s (%s)", phase, step, time.Since(since).Round(time.Second))
					} else {
						log.Printf("[%s] (%s)", phase, time.Since(since).Round(time.Second))
					}
				}
			}
		}()
	}

	if flagExamples {
		for i, query := range gateway.ExampleQueries {
			fmt.Printf("\nExample %d/%d: %s\n", i+1, len(gateway.ExampleQueries), query)
			answer, err := controller.Answer(ctx, query)
			if err != nil {
				log.Printf("Error running example %d: %v", i+1, err)
				continue
			}
			fmt.Println("\n" + answer)
		}
		return nil
	}

	if flagQuery != "" {
		answer, err := controller.Answer(ctx, flagQuery)
		if err != nil {
			return err
		}
		fmt.Println("\n" + answer)
		return nil
	}

	if observability.IsInteractive() {
		observability.PrintBanner()
	}
	if err := gateway.NewConsole(controller).Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
