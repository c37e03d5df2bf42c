package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a deck listing",
	Long: `Validate checks a deck listing against the deck-construction rules.
Every rule is recomputed from the listing and the card database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		results := ws.session.Validate()

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if results.Valid() {
			fmt.Printf("✅ Deck '%s' is legal.\n", ws.deckPath)
		} else {
			fmt.Printf("❌ Deck '%s' has %d rule violations:\n", ws.deckPath, len(results.Errors))
			for i, v := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, v)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
	addDeckFlag(validateCmd)
}
