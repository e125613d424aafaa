package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"finsim-mcp/internal/scenario"
	"finsim-mcp/internal/simulation"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration. Constructed once at
// startup and treated as read-only thereafter.
type AppConfig struct {
	Sim        simulation.Config
	Tuning     scenario.Tuning
	DataPath   string
	LogDir     string
	SQLitePath string
}

// assumptionsFile is the YAML override surface for the statistical and
// scenario parameters. Every field is optional; zero values mean "keep the
// default".
type assumptionsFile struct {
	Market struct {
		MeanReturn float64 `yaml:"mean_return"`
		StdReturn  float64 `yaml:"std_return"`
	} `yaml:"market"`
	Inflation struct {
		Mean float64 `yaml:"mean"`
		Std  float64 `yaml:"std"`
	} `yaml:"inflation"`
	Shocks struct {
		Probability     float64 `yaml:"probability"`
		Scale           float64 `yaml:"scale"`
		MedicalBillMean float64 `yaml:"medical_bill_mean"`
		RepairCostMean  float64 `yaml:"repair_cost_mean"`
	} `yaml:"shocks"`
	Tuning *scenario.Tuning `yaml:"tuning"`
}

// Load loads the configuration from .env files, environment variables and an
// optional YAML assumptions file.
func Load() (*AppConfig, error) {
	// Binary directory first (MCP hosts launch with arbitrary CWDs), then
	// working directory for development runs.
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	sim := simulation.DefaultConfig()
	tun := scenario.DefaultTuning()

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED %q: %w", v, err)
		}
		sim.Seed = seed
	}
	if v := os.Getenv("DEFAULT_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid DEFAULT_ITERATIONS %q", v)
		}
		sim.DefaultIterations = n
	}

	if path := os.Getenv("ASSUMPTIONS_FILE"); path != "" {
		if err := applyAssumptions(path, &sim, &tun); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("Applied assumptions file")
	}

	cfg := &AppConfig{
		Sim:        sim,
		Tuning:     tun,
		DataPath:   dataPath,
		LogDir:     logDir,
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}

	return cfg, nil
}

func applyAssumptions(path string, sim *simulation.Config, tun *scenario.Tuning) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read assumptions file: %w", err)
	}

	// Pointing the tuning section at the live defaults makes the YAML a
	// sparse overlay: fields the file omits keep their default values.
	f := assumptionsFile{Tuning: tun}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse assumptions file %s: %w", path, err)
	}

	if f.Market.MeanReturn != 0 {
		sim.MarketReturnMean = f.Market.MeanReturn
	}
	if f.Market.StdReturn != 0 {
		sim.MarketReturnStd = f.Market.StdReturn
	}
	if f.Inflation.Mean != 0 {
		sim.InflationMean = f.Inflation.Mean
	}
	if f.Inflation.Std != 0 {
		sim.InflationStd = f.Inflation.Std
	}
	if f.Shocks.Probability != 0 {
		sim.ShockProbability = f.Shocks.Probability
	}
	if f.Shocks.Scale != 0 {
		sim.ShockScale = f.Shocks.Scale
	}
	if f.Shocks.MedicalBillMean != 0 {
		sim.MedicalBillMean = f.Shocks.MedicalBillMean
	}
	if f.Shocks.RepairCostMean != 0 {
		sim.RepairCostMean = f.Shocks.RepairCostMean
	}

	return nil
}
