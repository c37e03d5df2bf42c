package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/ringside/internal/catalog"
	"github.com/arcanaland/ringside/internal/config"
	"github.com/arcanaland/ringside/internal/deck"
	"github.com/arcanaland/ringside/internal/logging"
)

var (
	verbose   bool
	cardFiles []string
	deckFlag  string

	logger = zap.NewNop()
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ringside",
	Short: "Build legal decks from a wrestling card game database",
	Long: `Ringside loads tab-separated card exports, classifies every card as persona,
kit or pool content, and builds starting and purchase decks that follow the
deck-construction rules.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringSliceVarP(&cardFiles, "cards", "c", nil,
		"Card TSV files, in load order (default: card_files from config)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// addDeckFlag registers the --deck flag on cmd.
func addDeckFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&deckFlag, "deck", "d", "", "Deck name in the deck library or path to a deck listing (default: default_deck from config)")
}

// loadCatalog reads the configured card files.
func loadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Database, error) {
	files := cardFiles
	if len(files) == 0 {
		files = cfg.CardFiles
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no card files: pass --cards or set card_files in %s", config.GetConfigFilePath())
	}
	return catalog.NewLoader(nil, logger).LoadFiles(ctx, files...)
}

// workspace bundles what deck commands operate on.
type workspace struct {
	cfg      *config.Config
	cards    *catalog.Database
	session  *deck.Session
	deckPath string
}

// openWorkspace loads config and cards, then restores the selected deck
// listing into a fresh session. A missing listing yields an empty session.
func openWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	cards, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("error loading cards: %w", err)
	}

	name := deckFlag
	if name == "" {
		name = cfg.DefaultDeck
	}

	ws := &workspace{
		cfg:      cfg,
		cards:    cards,
		session:  deck.NewSession(cards, cfg.Rules, logger),
		deckPath: config.GetDeckPath(name),
	}

	data, err := os.ReadFile(ws.deckPath)
	if errors.Is(err, os.ErrNotExist) {
		return ws, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading deck: %w", err)
	}

	state, err := deck.ParseExport(string(data))
	if err != nil {
		return nil, fmt.Errorf("error reading deck %s: %w", ws.deckPath, err)
	}
	ws.session.Restore(state)
	return ws, nil
}

// save writes the session listing back to the deck file.
func (ws *workspace) save() error {
	if err := os.MkdirAll(filepath.Dir(ws.deckPath), 0755); err != nil {
		return fmt.Errorf("error creating deck directory: %w", err)
	}
	if err := os.WriteFile(ws.deckPath, []byte(ws.session.Export()), 0644); err != nil {
		return fmt.Errorf("error writing deck: %w", err)
	}
	return nil
}
