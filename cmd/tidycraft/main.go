package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Lynthar/Tidycraft/internal/analyzer"
	"github.com/Lynthar/Tidycraft/internal/config"
	"github.com/Lynthar/Tidycraft/internal/engine"
	"github.com/Lynthar/Tidycraft/internal/report"
	"github.com/Lynthar/Tidycraft/internal/scanner"
	"github.com/Lynthar/Tidycraft/internal/watch"
	"github.com/Lynthar/Tidycraft/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[38;5;220m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[38;5;245m"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tidycraft",
		Short: "Tidycraft - Game Asset Catalog and Hygiene Scanner",
		Long: `Concurrent cataloger for game project directories. Builds an asset
inventory with per-format metadata, keeps it fresh with a fingerprint cache,
and checks assets against configurable hygiene rules.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(inspectCmd())
	rootCmd.AddCommand(cacheCmd())
	rootCmd.AddCommand(rulesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s%sTIDYCRAFT%s %sv%s%s\n", colorBold, colorCyan, colorReset, colorGray, version, colorReset)
	fmt.Printf("%sGame asset catalog and hygiene scanner%s\n", colorGray, colorReset)
	fmt.Println()
}

// initLogger builds the process logger. Verbose mode uses the development
// encoder; otherwise only errors reach stderr.
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}
	return err
}

// loadConfig loads the environment configuration and applies CLI overrides
func loadConfig(workers int, exclude []string, cacheDir string, noCache bool, rulesFile string) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if len(exclude) > 0 {
		cfg.Exclude = exclude
	}
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if noCache {
		cfg.DisableCache = true
	}
	if rulesFile != "" {
		cfg.RulesFile = rulesFile
	}
	return cfg, nil
}

// watchProgress polls the scan state and renders a progress line until done
// is closed. Returns after the final repaint.
func watchProgress(state *models.ScanState, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	started := false
	render := func() {
		p := state.Progress()
		if p.Phase != models.PhaseParsing || p.Total == 0 {
			return
		}
		if started {
			fmt.Print("\033[1A\033[K")
		}
		started = true

		pct := float64(p.Current) / float64(p.Total) * 100
		barWidth := 30
		filled := int(float64(barWidth) * float64(p.Current) / float64(p.Total))
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Printf("  %sParsing:%s  [%s%s%s] %s%.1f%%%s (%d/%d)\n",
			colorGray, colorReset, colorCyan, bar, colorReset, colorCyan, pct, colorReset, p.Current, p.Total)
	}

	for {
		select {
		case <-done:
			render()
			return
		case <-ticker.C:
			render()
		}
	}
}

// runScan executes one scan with progress rendering and Ctrl-C cancellation
func runScan(s *scanner.Scanner, path string, incremental bool) (*models.ScanResult, error) {
	state := models.NewScanState()
	s.SetState(state)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			fmt.Printf("\n  %sCancelling...%s\n", colorYellow, colorReset)
			state.Cancel()
		}
	}()

	done := make(chan struct{})
	progressDone := make(chan struct{})
	go func() {
		watchProgress(state, done)
		close(progressDone)
	}()

	var result *models.ScanResult
	var err error
	if incremental {
		result, _, err = s.ScanIncremental(path)
	} else {
		result, err = s.Scan(path)
	}

	close(done)
	<-progressDone
	return result, err
}

// loadRules resolves the rule configuration from the given flag or config
func loadRules(cfg *config.Config) (*analyzer.RuleConfig, error) {
	if cfg.RulesFile == "" {
		return analyzer.DefaultRuleConfig(), nil
	}
	rules, err := analyzer.LoadRuleConfig(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", cfg.RulesFile, err)
	}
	return rules, nil
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		incremental  bool
		workers      int
		exclude      []string
		cacheDir     string
		noCache      bool
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Catalog the assets of a project directory",
		Long:  `Recursively catalog a game project directory, extracting per-format metadata for textures, models, and audio.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := validateFormat(reportFormat); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			printBanner()
			fmt.Printf("  %sScanning:%s %s\n\n", colorGray, colorReset, path)

			cfg, err := loadConfig(workers, exclude, cacheDir, noCache, "")
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			s := scanner.NewScanner(cfg, logger)
			result, err := runScan(s, path, incremental && !cfg.DisableCache)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			gen := report.NewGenerator(logger)
			reportPath, err := gen.Generate(result, nil, reportFormat, outputFile)
			if err != nil {
				return err
			}
			if reportPath != "" {
				fmt.Printf("  %sReport:%s %s\n\n", colorGray, colorReset, reportPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&incremental, "incremental", "i", false, "Reuse the fingerprint cache, reparsing only changed files")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parse workers (default: CPU cores)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directories to exclude (names or glob patterns, comma-separated)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Override the per-user cache directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Force a full scan even with --incremental")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: txt, json, csv (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

// analyzeCmd creates the analyze command
func analyzeCmd() *cobra.Command {
	var (
		incremental  bool
		workers      int
		exclude      []string
		cacheDir     string
		noCache      bool
		rulesFile    string
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Scan a project and check assets against hygiene rules",
		Long: `Catalog a project directory, then evaluate every asset against the
configured rule set: naming conventions, texture dimensions, model complexity,
audio specs, and duplicate content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := validateFormat(reportFormat); err != nil {
				fmt.Printf("\n  %s✗ Invalid parameter:%s %s\n\n", colorRed, colorReset, err.Error())
				return err
			}
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			printBanner()
			fmt.Printf("  %sAnalyzing:%s %s\n\n", colorGray, colorReset, path)

			cfg, err := loadConfig(workers, exclude, cacheDir, noCache, rulesFile)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			rules, err := loadRules(cfg)
			if err != nil {
				logger.Error("Failed to load rules", zap.Error(err))
				return err
			}

			s := scanner.NewScanner(cfg, logger)
			result, err := runScan(s, path, incremental && !cfg.DisableCache)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			a := analyzer.NewAnalyzerWithConfig(rules, logger)
			analysis := a.AnalyzeProject(result)

			gen := report.NewGenerator(logger)
			reportPath, err := gen.Generate(result, analysis, reportFormat, outputFile)
			if err != nil {
				return err
			}
			if reportPath != "" {
				fmt.Printf("  %sReport:%s %s\n\n", colorGray, colorReset, reportPath)
			}
			if analysis.ErrorCount > 0 {
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&incremental, "incremental", "i", false, "Reuse the fingerprint cache, reparsing only changed files")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parse workers (default: CPU cores)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directories to exclude (names or glob patterns, comma-separated)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Override the per-user cache directory")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Force a full scan even with --incremental")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "Path to a YAML rule configuration file")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: txt, json, csv (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")

	return cmd
}

// watchCmd creates the watch command
func watchCmd() *cobra.Command {
	var (
		workers  int
		exclude  []string
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a project directory and rescan on changes",
		Long: `Keep the asset catalog fresh: watch the directory tree for file changes
and run an incremental rescan after each quiet period.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			printBanner()

			cfg, err := loadConfig(workers, exclude, cacheDir, false, "")
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			s := scanner.NewScanner(cfg, logger)

			// Initial scan primes the cache.
			fmt.Printf("  %sInitial scan:%s %s\n\n", colorGray, colorReset, path)
			result, err := runScan(s, path, true)
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}
			fmt.Printf("  %s✓ %d assets cataloged%s\n\n", colorGreen, result.TotalCount, colorReset)

			debounce := time.Duration(cfg.DebounceMillis) * time.Millisecond
			w, err := watch.NewWatcher(path, cfg.Exclude, debounce, logger)
			if err != nil {
				logger.Error("Failed to start watcher", zap.Error(err))
				return err
			}
			defer w.Close()
			go w.Start()

			fmt.Printf("  %sWatching for changes (Ctrl-C to stop)...%s\n\n", colorGray, colorReset)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			for {
				select {
				case <-sigCh:
					fmt.Printf("\n  %sStopped.%s\n\n", colorGray, colorReset)
					return nil
				case batch := <-w.Events():
					fmt.Printf("  %s%s%s %d change(s) detected, rescanning...\n",
						colorGray, time.Now().Format("15:04:05"), colorReset, len(batch))

					s.SetState(models.NewScanState())
					result, _, err := s.ScanIncremental(path)
					if err != nil {
						logger.Warn("Rescan failed", zap.Error(err))
						continue
					}
					stats := result.Incremental
					fmt.Printf("  %s✓%s %d assets (%d reparsed, %d cached)\n",
						colorGreen, colorReset, result.TotalCount, stats.RescannedFiles, stats.CachedFiles)
				}
			}
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parse workers (default: CPU cores)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Directories to exclude (names or glob patterns, comma-separated)")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Override the per-user cache directory")

	return cmd
}

// inspectCmd creates the inspect command
func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [path]",
		Short: "Print engine project or asset file details as JSON",
		Long: `Parse an engine-specific file and print the structured view: a .uproject
or project.godot project descriptor, or a Unity YAML asset (.prefab, .unity,
.mat, .controller, .asset). Given a project directory, the project descriptor
is located automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := inspectPath(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

// inspectPath resolves a path to its parsed engine view
func inspectPath(path string) (interface{}, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		if uproject := engine.FindUProjectFile(path); uproject != "" {
			path = uproject
		} else if godot := filepath.Join(path, "project.godot"); fileExists(godot) {
			path = godot
		} else {
			return nil, fmt.Errorf("no .uproject or project.godot found in %s", path)
		}
	}

	name := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(name), ".")

	switch {
	case strings.EqualFold(ext, "uproject"):
		if doc := engine.ParseUProject(path); doc != nil {
			return doc, nil
		}
	case name == "project.godot":
		if doc := engine.ParseProjectGodot(path); doc != nil {
			return doc, nil
		}
	case engine.UnityFileTypeFromExtension(ext) != engine.UnityUnknown:
		if doc := engine.ParseUnityFile(path); doc != nil {
			return doc, nil
		}
	default:
		return nil, fmt.Errorf("don't know how to inspect %s", name)
	}

	return nil, fmt.Errorf("failed to parse %s", path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// cacheCmd creates the cache command group
func cacheCmd() *cobra.Command {
	var cacheDir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persisted scan cache",
	}

	clearCmd := &cobra.Command{
		Use:   "clear [path]",
		Short: "Remove the persisted cache for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := loadConfig(0, nil, cacheDir, false, "")
			if err != nil {
				return err
			}

			s := scanner.NewScanner(cfg, logger)
			if err := s.ClearCache(args[0]); err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}
			fmt.Printf("  %s✓ Cache cleared%s\n", colorGreen, colorReset)
			return nil
		},
	}
	clearCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Override the per-user cache directory")

	cmd.AddCommand(clearCmd)
	return cmd
}

// rulesCmd creates the rules command group
func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage hygiene rule configuration",
	}

	defaultCmd := &cobra.Command{
		Use:   "default",
		Short: "Print the default rule configuration as YAML",
		Long:  `Print the built-in rule configuration. Redirect to a file and pass it back with --rules to customize.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			yaml, err := analyzer.DefaultRuleConfig().YAML()
			if err != nil {
				return err
			}
			fmt.Print(yaml)
			return nil
		},
	}

	cmd.AddCommand(defaultCmd)
	return cmd
}

// validateFormat validates the report format flag
func validateFormat(format string) error {
	if format == "" {
		return nil
	}
	valid := []string{"txt", "text", "json", "csv"}
	for _, f := range valid {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(valid, ", "), format)
}
