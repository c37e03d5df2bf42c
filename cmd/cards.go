package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/config"
	"github.com/arcanaland/ringside/internal/validator"
)

// cardsCmd represents the cards command
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List cards in the card database",
	Long: `Cards lists the loaded cards. By default it lists the pool: cards that can be
picked into the purchase deck. Use --personas or --kit for the other groups,
or --for to list the kit of one persona.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		db, err := loadCatalog(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("error loading cards: %w", err)
		}

		personas, _ := cmd.Flags().GetBool("personas")
		kits, _ := cmd.Flags().GetBool("kit")
		persona, _ := cmd.Flags().GetString("for")

		var list []*card.Card
		switch {
		case persona != "":
			list = db.KitFor(persona)
		case personas:
			for _, t := range card.PersonaTypes() {
				list = append(list, db.PersonasOf(t)...)
			}
		case kits:
			list = db.Kits()
		default:
			list = db.Pool()
		}

		if typeFilter, _ := cmd.Flags().GetString("type"); typeFilter != "" {
			want := card.ParseType(typeFilter)
			filtered := list[:0:0]
			for _, c := range list {
				if c.Type == want {
					filtered = append(filtered, c)
				}
			}
			list = filtered
		}

		for _, c := range list {
			fmt.Printf("%-32s %-12s %s\n", c.Title, c.Type, colorize.HiBlackString("cost %s", validator.FormatCost(c.Cost)))
		}
		fmt.Printf("%d cards\n", len(list))

		if n := len(db.Collisions()); n > 0 {
			fmt.Println(colorize.YellowString("%d duplicate titles were shadowed by later rows (run with -v for details)", n))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cardsCmd)
	cardsCmd.Flags().Bool("personas", false, "List persona cards")
	cardsCmd.Flags().Bool("kit", false, "List kit and starter cards")
	cardsCmd.Flags().String("for", "", "List the kit of a persona")
	cardsCmd.Flags().String("type", "", "Only list cards of this type")
}
