package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/config"
	"github.com/arcanaland/ringside/internal/validator"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [title]",
	Short: "Display information about a specific card",
	Long: `Show displays a card's canonical record and classification.
Titles are matched case-insensitively.

Examples:
  ringside show fireball
  ringside show "Bobby Lashley" --cards personas.tsv,cards.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		cards, err := loadCatalog(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("error loading cards: %w", err)
		}

		c, ok := cards.Lookup(args[0])
		if !ok {
			return fmt.Errorf("card not found: %s", args[0])
		}

		displayCard(c, cards.KitFor(c.Title))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
}

// terminalWidth returns the stdout width, 80 when it cannot be determined.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

// classLabels lists the facets that are set, for display.
func classLabels(c *card.Card) []string {
	var labels []string
	if c.IsPersona() {
		labels = append(labels, "persona")
	}
	if c.IsStarter() {
		labels = append(labels, "starter")
	}
	if c.IsKit() {
		labels = append(labels, "kit")
	}
	if c.PoolEligible() {
		labels = append(labels, "pool")
	}
	return labels
}

// displayCard displays the card information
func displayCard(c *card.Card, kits []*card.Card) {
	label := func(s string) string { return colorize.CyanString("%-10s", s) }
	width := terminalWidth() - 12

	fmt.Println()
	fmt.Println(label("Card:") + colorize.HiWhiteString(c.Title))

	typeName := c.Type.String()
	if c.Type == card.Unknown && c.RawType != "" {
		typeName = fmt.Sprintf("Unknown (%s)", c.RawType)
	}
	fmt.Println(label("Type:") + colorize.HiWhiteString(typeName))
	fmt.Println(label("Cost:") + colorize.HiWhiteString(validator.FormatCost(c.Cost)))
	fmt.Println(label("Damage:") + colorize.HiWhiteString(formatStat(c.Damage)))
	fmt.Println(label("Momentum:") + colorize.HiWhiteString(formatStat(c.Momentum)))
	if target := c.Target(); target != "" {
		fmt.Println(label("Target:") + colorize.HiWhiteString(target))
	}
	fmt.Println(label("Class:") + colorize.HiWhiteString(strings.Join(classLabels(c), ", ")))

	if len(c.StartingFor) > 0 {
		fmt.Println(label("Starts:") + colorize.HiWhiteString(strings.Join(c.StartingFor, ", ")))
	}
	if c.Set != "" {
		fmt.Println(label("Set:") + colorize.HiWhiteString(c.Set))
	}
	fmt.Println(label("Source:") + fmt.Sprintf("%s:%d", c.SourceFile, c.Line))

	if c.Text != "" {
		fmt.Println()
		fmt.Println(colorize.CyanString("Game text:"))
		for _, line := range wrapText(c.Text, width) {
			fmt.Println("  " + line)
		}
	}

	if len(kits) > 0 {
		fmt.Println()
		fmt.Println(colorize.CyanString("Kit:"))
		for _, k := range kits {
			fmt.Printf("  %s (%s)\n", k.Title, k.Type)
		}
	}

	if len(c.Extra) > 0 {
		keys := make([]string, 0, len(c.Extra))
		for k := range c.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Println()
		fmt.Println(colorize.CyanString("Other columns:"))
		for _, k := range keys {
			if c.Extra[k] != "" {
				fmt.Printf("  %s: %s\n", k, c.Extra[k])
			}
		}
	}

	fmt.Println()
}
