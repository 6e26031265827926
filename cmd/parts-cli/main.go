// Package main provides the parts engine CLI entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fgauto/parts-engine/internal/cache"
	"github.com/fgauto/parts-engine/internal/catalog"
	"github.com/fgauto/parts-engine/internal/config"
	"github.com/fgauto/parts-engine/internal/diagnose"
	"github.com/fgauto/parts-engine/internal/fitment"
	"github.com/fgauto/parts-engine/internal/match"
	"github.com/fgauto/parts-engine/internal/observability"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool
	noColor    bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
	ui     *UI
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "parts-cli",
	Short: "Parts engine CLI for catalog search, diagnosis, and fitment",
	Long: `Parts engine CLI provides commands for working with the auto parts catalog.

Use this tool to:
- Search and filter the parts catalog
- Match free-text complaints against the symptom library
- Walk diagnostic wizards to an outcome
- Decode VINs and inspect fitment coverage
- Validate catalog datasets before deployment

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       cfg.Observability.LogLevel,
			Format:      logFormat,
			ServiceName: "parts-cli",
		})
		ui = NewUI(outputJSON, noColor)

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSymptomsCmd())
	rootCmd.AddCommand(newDiagnoseCmd())
	rootCmd.AddCommand(newVinCmd())
	rootCmd.AddCommand(newFitmentCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadCatalog reads the configured catalog dataset.
func loadCatalog() (*catalog.Dataset, error) {
	ds, err := catalog.LoadDataset(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Catalog.Path, err)
	}
	return ds, nil
}

// newSearchCmd creates the search subcommand.
func newSearchCmd() *cobra.Command {
	var (
		text     string
		category string
		sortKey  string
		vehicle  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search and filter the parts catalog",
		Long: `Search applies the storefront's catalog filter: free-text match over
name, category, tags and fitment notes, an optional category filter, and an
optional vehicle fitment key to restrict results to eligible parts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadCatalog()
			if err != nil {
				return err
			}

			q := catalog.Query{
				Text:     text,
				Category: category,
				Sort:     catalog.SortKey(sortKey),
			}
			if vehicle != "" {
				overlay := fitment.NewOverlay(ds.Fitment)
				ids, ok := overlay.EligibleParts(vehicle)
				if !ok {
					ui.Warning("No fitment data for %s; showing no parts", vehicle)
				}
				q.Restriction = &catalog.Restriction{IDs: ids}
			}

			results := catalog.Filter(ds.Parts, q)

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			if len(results) == 0 {
				ui.Info("No parts matched")
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, p := range results {
				rows = append(rows, []string{
					p.ID, p.Name, p.Category,
					ds.Currency.Format(p.Price, ds.Currency.Base),
					p.Stock,
				})
			}
			ui.Table([]string{"ID", "NAME", "CATEGORY", "PRICE", "STOCK"}, rows)
			ui.Success("%d part(s)", len(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "free-text query")
	cmd.Flags().StringVar(&category, "category", "all", "category filter")
	cmd.Flags().StringVar(&sortKey, "sort", "relevance", "sort order (relevance, priceAsc, priceDesc, nameAsc)")
	cmd.Flags().StringVar(&vehicle, "vehicle", "", "fitment key (MAKE|MODEL|YEAR|ENGINE) to restrict results")

	return cmd
}

// newSymptomsCmd creates the symptoms subcommand.
func newSymptomsCmd() *cobra.Command {
	var (
		text     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "List and search the symptom library",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadCatalog()
			if err != nil {
				return err
			}

			results := catalog.SearchSymptoms(ds.Symptoms, text, category)

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			rows := make([][]string, 0, len(results))
			for _, s := range results {
				rows = append(rows, []string{s.ID, s.Title, s.Category, fmt.Sprintf("%d", len(s.Wizard.Questions))})
			}
			ui.Table([]string{"ID", "TITLE", "CATEGORY", "QUESTIONS"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "free-text query")
	cmd.Flags().StringVar(&category, "category", "all", "category filter")

	return cmd
}

// newDiagnoseCmd creates the diagnose subcommand.
func newDiagnoseCmd() *cobra.Command {
	var (
		symptomID string
		text      string
		answers   []string
	)

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Match a complaint or walk a wizard to an outcome",
		Long: `Diagnose either matches a free-text complaint against the symptom
library (--text) or resolves a wizard outcome for a known symptom
(--symptom with repeated --answer question=option flags).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadCatalog()
			if err != nil {
				return err
			}

			if symptomID == "" && text == "" {
				return fmt.Errorf("either --symptom or --text is required")
			}

			if symptomID == "" {
				result := match.BestSymptom(ds.Symptoms, text)
				if outputJSON {
					enc := json.NewEncoder(os.Stdout)
					enc.SetIndent("", "  ")
					return enc.Encode(map[string]interface{}{
						"symptomId": result.Symptom.ID,
						"score":     result.Score,
						"confident": result.Confident,
					})
				}
				if !result.Confident {
					ui.Warning("No confident match (best: %s, score %d)", result.Symptom.ID, result.Score)
					return nil
				}
				ui.Success("Matched: %s (score %d)", result.Symptom.Title, result.Score)
				symptomID = result.Symptom.ID
				if len(answers) == 0 {
					return nil
				}
			}

			var sym catalog.Symptom
			found := false
			for _, s := range ds.Symptoms {
				if s.ID == symptomID {
					sym = s
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("unknown symptom: %s", symptomID)
			}

			parsed := diagnose.Answers{}
			for _, a := range answers {
				k, v, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("invalid --answer %q, expected question=option", a)
				}
				if !diagnose.ValidAnswer(sym, k, v) {
					return fmt.Errorf("invalid answer %q for question %q", v, k)
				}
				parsed[k] = v
			}

			outcome, resolved := diagnose.Resolve(sym, parsed)
			state := diagnose.StateOf(sym, parsed)

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"symptomId": sym.ID,
					"state":     state,
					"resolved":  resolved,
					"outcome":   outcome,
				})
			}

			if !resolved {
				ui.Info("Not yet resolved (%d of %d questions answered)", len(parsed), len(sym.Wizard.Questions))
				for _, q := range sym.Wizard.Questions {
					if _, ok := parsed[q.ID]; !ok {
						ui.KeyValue(q.ID, q.Text+" ["+strings.Join(q.Options, ", ")+"]")
					}
				}
				return nil
			}

			ui.Section("Diagnosis")
			ui.KeyValue("Diagnosis", outcome.Diagnosis)
			ui.KeyValue("Severity", outcome.Severity)
			if len(outcome.Causes) > 0 {
				ui.KeyValue("Likely causes", strings.Join(outcome.Causes, "; "))
			}
			if len(outcome.RecommendedParts) > 0 {
				ui.KeyValue("Recommended parts", strings.Join(outcome.RecommendedParts, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&symptomID, "symptom", "", "symptom id to diagnose")
	cmd.Flags().StringVarP(&text, "text", "t", "", "free-text complaint to match")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "wizard answer as question=option (repeatable)")

	return cmd
}

// newVinCmd creates the vin subcommand.
func newVinCmd() *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "vin <vin>",
		Short: "Decode a VIN through the NHTSA vPIC service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			decoder := fitment.NewDecoder(fitment.DecoderConfig{
				BaseURL:  cfg.VinDecoder.BaseURL,
				Timeout:  cfg.VinDecoder.Timeout,
				CacheTTL: cfg.VinDecoder.CacheTTL,
			}, cache.NewMemoryClient(16))

			stop := ui.Spinner("Decoding VIN...")
			decoded, err := decoder.Decode(ctx, args[0], year)
			stop()
			if err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(decoded)
			}

			ui.Section("Decoded Vehicle")
			ui.KeyValue("Make", decoded.Make)
			ui.KeyValue("Model", decoded.Model)
			ui.KeyValue("Year", decoded.ModelYear)
			ui.KeyValue("Engine", decoded.EngineLabel())
			if decoded.BodyClass != "" {
				ui.KeyValue("Body", decoded.BodyClass)
			}
			if decoded.FuelTypePrimary != "" {
				ui.KeyValue("Fuel", decoded.FuelTypePrimary)
			}
			ui.KeyValue("Fitment key", decoded.FitmentKey())
			return nil
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "model year hint for partial VINs")

	return cmd
}

// newFitmentCmd creates the fitment subcommand.
func newFitmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitment",
		Short: "List fitment coverage in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadCatalog()
			if err != nil {
				return err
			}
			overlay := fitment.NewOverlay(ds.Fitment)

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(overlay.Snapshot())
			}

			keys := overlay.Keys()
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				ids, _ := overlay.EligibleParts(k)
				rows = append(rows, []string{k, fmt.Sprintf("%d", len(ids))})
			}
			ui.Table([]string{"FITMENT KEY", "ELIGIBLE PARTS"}, rows)
			ui.Success("%d vehicle(s) covered", len(keys))
			return nil
		},
	}

	return cmd
}

// newValidateCmd creates the validate subcommand.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadCatalog()
			if err != nil {
				ui.Error("Catalog invalid: %v", err)
				return err
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"status":   "valid",
					"parts":    len(ds.Parts),
					"symptoms": len(ds.Symptoms),
					"fitment":  len(ds.Fitment.Fitment),
				})
			}

			ui.Success("Catalog valid")
			ui.KeyValue("Parts", len(ds.Parts))
			ui.KeyValue("Symptoms", len(ds.Symptoms))
			ui.KeyValue("Mechanics", len(ds.Mechanics))
			ui.KeyValue("Fitment entries", len(ds.Fitment.Fitment))
			ui.KeyValue("Currencies", len(ds.Currency.Rates))
			return nil
		},
	}

	return cmd
}

// newVersionCmd creates the version subcommand.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.Encode(map[string]string{
					"version": "0.1.0",
				})
				return
			}
			fmt.Println("parts-cli v0.1.0")
		},
	}
}
