package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/config"
	"github.com/arcanaland/ringside/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Build decks in your deck library",
	Long: `Commands for building decks. Each deck is stored as a plain-text listing in
your deck library (XDG_DATA_HOME/ringside/decks) and can be shared as is.`,
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library and config",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()

		// Create the library directory
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}
		fmt.Println("Deck library initialized at:", libraryPath)

		// Loading writes a default config when none exists
		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

// deckListCmd represents the deck ls command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if deck library exists
		names, err := config.ListDecks()
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("Deck library at %s does not exist.\n", config.GetDeckLibraryPath())
			fmt.Println("Run 'ringside deck init' to create it.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		if len(names) == 0 {
			fmt.Println("No decks found in your deck library.")
			return nil
		}

		// Get default deck
		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			return fmt.Errorf("error getting default deck: %w", err)
		}

		for _, name := range names {
			if name == defaultDeck {
				fmt.Printf("* %s [DEFAULT]\n", name)
			} else {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetDefaultDeck(args[0]); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}
		fmt.Printf("Default deck set to: %s\n", args[0])
		return nil
	},
}

// deckNewCmd represents the deck new command
var deckNewCmd = &cobra.Command{
	Use:   "new [deck_name]",
	Short: "Create an empty deck listing",
	Long: `New writes an empty listing to the deck library, or to the given path when
deck_name contains a path separator or ends in .txt. An existing listing is
never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		path := config.GetDeckPath(args[0])
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("error creating deck directory: %w", err)
		}

		// O_EXCL refuses an existing listing
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("deck %s already exists", path)
		}
		if err != nil {
			return fmt.Errorf("error creating deck: %w", err)
		}
		defer f.Close()

		listing := deck.FormatExport(deck.State{}, nil, cfg.Rules.StartingMaxSize)
		if _, err := f.WriteString(listing); err != nil {
			return fmt.Errorf("error writing deck: %w", err)
		}

		fmt.Println("Created deck:", path)
		return nil
	},
}

// deckAddCmd represents the deck add command
var deckAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a card to the starting or purchase deck",
	Long: `Add checks every deck-construction rule before adding the card. Kit cards are
refused, copies of a title across both decks are capped, and the starting deck
takes only zero-cost cards up to its size and per-title limits. Limits come
from the [rules] section of the config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetDeck(cmd)
		if err != nil {
			return err
		}

		copies, _ := cmd.Flags().GetInt("copies")
		if copies < 1 {
			return fmt.Errorf("--copies must be at least 1, got %d", copies)
		}

		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		// Stop at the first rejected copy and keep the ones already added
		for i := 0; i < copies; i++ {
			if err := ws.session.AddCard(args[0], target); err != nil {
				if i == 0 {
					return err
				}
				fmt.Printf("Added %d of %d copies: %v\n", i, copies, err)
				break
			}
		}

		if err := ws.save(); err != nil {
			return err
		}
		cards, _ := ws.session.Cards(target)
		fmt.Printf("%s deck: %d cards\n", target, len(cards))
		return nil
	},
}

// deckRemoveCmd represents the deck rm command
var deckRemoveCmd = &cobra.Command{
	Use:   "rm [title]",
	Short: "Remove the most recently added copy of a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := targetDeck(cmd)
		if err != nil {
			return err
		}

		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		removed, err := ws.session.RemoveCard(args[0], target)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("%s is not in the %s deck.\n", args[0], target)
			return nil
		}
		return ws.save()
	},
}

// deckClearCmd represents the deck clear command
var deckClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty both decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to clear without --yes")
		}

		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		ws.session.Clear()
		return ws.save()
	},
}

// deckPersonaCmd represents the deck persona command
var deckPersonaCmd = &cobra.Command{
	Use:   "persona [title]",
	Short: "Select a wrestler, manager, call name or faction",
	Long: `Persona selects the persona card named by title, replacing any earlier
selection of the same type. Use --clear with a type to drop a selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		// Drop a selection instead of making one
		if drop, _ := cmd.Flags().GetString("clear"); drop != "" {
			t := card.ParseType(drop)
			if !t.IsPersona() {
				return fmt.Errorf("%w: %s", deck.ErrNotPersona, drop)
			}
			ws.session.ClearPersona(t)
			return ws.save()
		}

		if len(args) == 0 {
			return fmt.Errorf("a persona title is required")
		}

		c, err := ws.session.SelectPersona(args[0])
		if err != nil {
			return err
		}
		if err := ws.save(); err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", c.Type, colorize.HiWhiteString(c.Title))
		for _, k := range ws.cards.KitFor(c.Title) {
			fmt.Printf("  kit: %s\n", k.Title)
		}
		return nil
	},
}

// deckShowCmd represents the deck show command
var deckShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the deck listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(ws.session.Export())
		return nil
	},
}

// targetDeck reads the --to flag.
func targetDeck(cmd *cobra.Command) (deck.Name, error) {
	name, _ := cmd.Flags().GetString("to")
	return deck.ParseName(name)
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckInitCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckNewCmd)
	deckCmd.AddCommand(deckAddCmd)
	deckCmd.AddCommand(deckRemoveCmd)
	deckCmd.AddCommand(deckClearCmd)
	deckCmd.AddCommand(deckPersonaCmd)
	deckCmd.AddCommand(deckShowCmd)

	for _, c := range []*cobra.Command{deckAddCmd, deckRemoveCmd, deckClearCmd, deckPersonaCmd, deckShowCmd} {
		addDeckFlag(c)
	}

	deckAddCmd.Flags().StringP("to", "t", string(deck.Purchase), "Target deck: starting or purchase")
	deckAddCmd.Flags().IntP("copies", "n", 1, "Number of copies to add")
	deckRemoveCmd.Flags().StringP("to", "t", string(deck.Purchase), "Deck to remove from: starting or purchase")
	deckClearCmd.Flags().Bool("yes", false, "Confirm clearing both decks")
	deckPersonaCmd.Flags().String("clear", "", "Drop the selected persona of this type")
}
