package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"finsim-mcp/internal/profile"
	"finsim-mcp/internal/scenario"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	runProfilePath      string
	runTransactionsPath string
	runScenarioName     string
	runIterations       int
	runAll              bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from the command line and print the frontend JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.Load(runProfilePath)
		if err != nil {
			return err
		}
		if runTransactionsPath != "" {
			txs, err := profile.LoadTransactionsCSV(runTransactionsPath)
			if err != nil {
				return err
			}
			p.Transactions = append(p.Transactions, txs...)
		}
		p.DeriveCashflow()

		out := make([]map[string]any, 0, 1)

		if runAll {
			scenarios, err := scenario.NewAll(cfg.Tuning)
			if err != nil {
				return err
			}
			results, err := engine.RunBatch(context.Background(), scenarios, p, runIterations)
			if err != nil {
				return err
			}
			for _, res := range results {
				if err := rec.RecordRun(p.CustomerID, res); err != nil {
					log.Warn().Err(err).Msg("Failed to record run")
				}
				out = append(out, res.FrontendFormat())
			}
		} else {
			kind, err := scenario.ParseKind(runScenarioName)
			if err != nil {
				return err
			}
			sc, err := scenario.New(kind, cfg.Tuning)
			if err != nil {
				return err
			}
			res, err := engine.RunScenario(sc, p, runIterations)
			if err != nil {
				return err
			}
			if err := rec.RecordRun(p.CustomerID, res); err != nil {
				log.Warn().Err(err).Msg("Failed to record run")
			}
			out = append(out, res.FrontendFormat())
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runProfilePath, "profile", "p", "", "path to the profile JSON file (required)")
	runCmd.Flags().StringVarP(&runTransactionsPath, "transactions", "t", "", "optional transactions CSV to merge into the profile")
	runCmd.Flags().StringVarP(&runScenarioName, "scenario", "s", "", "scenario name (see 'finsim-mcp scenarios')")
	runCmd.Flags().IntVarP(&runIterations, "iterations", "n", 0, "trial count (0 = configured default)")
	runCmd.Flags().BoolVarP(&runAll, "all", "a", false, "run the full scenario set")
	_ = runCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scenariosCmd)
}

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the supported scenarios and their required profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, kind := range scenario.AllKinds() {
			sc, err := scenario.New(kind, cfg.Tuning)
			if err != nil {
				return err
			}
			fmt.Printf("%-16s requires: %v\n", sc.Name(), sc.RequiredFields())
		}
		return nil
	},
}
