package commands

import (
	"finsim-mcp/internal/config"
	"finsim-mcp/internal/logging"
	"finsim-mcp/internal/mcp"
	"finsim-mcp/internal/recorder"
	"finsim-mcp/internal/simulation"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	engine *simulation.Engine
	rec    recorder.Recorder
)

var rootCmd = &cobra.Command{
	Use:   "finsim-mcp",
	Short: "finsim-mcp is a Monte-Carlo simulation MCP server for personal finance",
	Long: `A specialized MCP server that simulates personal-finance scenarios (emergency
funds, student loans, medical crises, market crashes) with vectorized Monte-Carlo
trials and percentile-based risk summaries.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		engine = simulation.NewEngine(cfg.Sim, simulation.NewGenerator(cfg.Sim))

		rec = recorder.Recorder(recorder.NewNoopRecorder())
		if cfg.SQLitePath != "" {
			sqlRec, err := recorder.NewSQLiteRecorder(cfg.SQLitePath)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to open sqlite recorder")
			}
			rec = sqlRec
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("finsim-mcp starting")
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rec != nil {
			_ = rec.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg, engine, rec)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("MCP server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
