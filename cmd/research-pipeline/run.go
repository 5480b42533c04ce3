// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-pipeline/internal/analyze"
	"github.com/pdiddy/research-pipeline/internal/pipeline"
	"github.com/pdiddy/research-pipeline/internal/plan"
	"github.com/pdiddy/research-pipeline/internal/report"
	"github.com/pdiddy/research-pipeline/internal/runstore"
	"github.com/pdiddy/research-pipeline/internal/websearch"
	"github.com/pdiddy/research-pipeline/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the research pipeline end to end",
	Long: `Run executes the full pipeline: plan the research, gather web search
records, produce a validated analysis object via the language model, and
render a markdown report.

Overview mode researches a single topic:

  research-pipeline run --mode overview --topic "vector databases"

Compare mode researches two items side by side:

  research-pipeline run --mode compare --item-a PostgreSQL --item-b MySQL --depth detailed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := types.Request{
			Mode:  types.Mode(flagString(cmd, "mode")),
			Topic: flagString(cmd, "topic"),
			ItemA: flagString(cmd, "item-a"),
			ItemB: flagString(cmd, "item-b"),
			Depth: types.Depth(flagString(cmd, "depth")),
		}

		cfg := loadPipelineConfig(cmd)

		searcher := websearch.NewService(&websearch.TavilyBackend{}, cfg.Search)
		analyzer := analyze.NewAgent(analyze.NewGeminiBackend(cfg.Analysis.AIConfig), cfg.Analysis)
		reporter := report.NewRenderer(cfg.Report)

		orch := pipeline.New(planAdapter{}, searcher, analyzer, reporter)

		result, err := orch.Run(cmd.Context(), req, os.Stderr)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Report: %s\n", result.Report.ReportPath)
		if result.Report.DataPath != "" {
			fmt.Fprintf(os.Stdout, "Data:   %s\n", result.Report.DataPath)
		}

		if !cfg.Archive.Disabled {
			if err := archiveRun(cmd, cfg.Archive, result); err != nil {
				// Archiving is bookkeeping; a failure must not fail the run.
				fmt.Fprintf(os.Stderr, "warning: could not archive run: %v\n", err)
			}
		}
		return nil
	},
}

// planAdapter exposes the static plan templates through the orchestrator's
// Planner interface.
type planAdapter struct{}

func (planAdapter) Plan(_ context.Context, mode types.Mode) ([]string, error) {
	return plan.Steps(string(mode)), nil
}

func init() {
	runCmd.Flags().String("mode", "overview", "research mode: overview or compare")
	runCmd.Flags().String("topic", "", "topic to research (overview mode)")
	runCmd.Flags().String("item-a", "", "first item to compare (compare mode)")
	runCmd.Flags().String("item-b", "", "second item to compare (compare mode)")
	runCmd.Flags().String("depth", "short", "analysis depth: short or detailed")
	runCmd.Flags().String("model", "", "AI model identifier for analysis")
	runCmd.Flags().Int("max-retries", 0, "correction attempts for invalid generator output (default 1)")
	runCmd.Flags().Int("max-results", 0, "search records per query (default 5)")
	runCmd.Flags().String("reports-dir", "", "directory for rendered reports (default reports)")
	runCmd.Flags().Bool("write-data", false, "also write the analysis object as a YAML sidecar")
	runCmd.Flags().Bool("no-archive", false, "skip recording the run in the archive")

	rootCmd.AddCommand(runCmd)
}

// loadPipelineConfig merges flags, the viper config file, and loaded secrets
// into the stage configuration. Flags win over the config file; secrets fill
// API keys the config leaves empty.
func loadPipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	var cfg types.PipelineConfig

	cfg.Search.APIKey = secretDefault("tavily-api-key", viper.GetString("search.api_key"))
	cfg.Search.MaxResults = intOr(flagInt(cmd, "max-results"), viper.GetInt("search.max_results"))
	cfg.Search.Timeout = viper.GetDuration("search.timeout")
	cfg.Search.UserAgent = stringOr(viper.GetString("search.user_agent"), "research-pipeline/"+version)

	cfg.Analysis.APIKey = secretDefault("gemini-api-key", viper.GetString("analysis.api_key"))
	cfg.Analysis.Model = stringOr(flagString(cmd, "model"), viper.GetString("analysis.model"))
	cfg.Analysis.MaxRetries = intOr(flagInt(cmd, "max-retries"), viper.GetInt("analysis.max_retries"))

	cfg.Report.ReportsDir = stringOr(flagString(cmd, "reports-dir"), viper.GetString("report.reports_dir"))
	cfg.Report.WriteData = flagBool(cmd, "write-data") || viper.GetBool("report.write_data")

	cfg.Archive.Dir = viper.GetString("archive.dir")
	cfg.Archive.Disabled = flagBool(cmd, "no-archive") || viper.GetBool("archive.disabled")

	return cfg
}

// archiveRun records a completed run in the archive database.
func archiveRun(cmd *cobra.Command, cfg types.ArchiveConfig, result types.PipelineResult) error {
	store, err := runstore.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(cmd.Context(), result)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "archived run %d\n", id)
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func stringOr(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func intOr(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
