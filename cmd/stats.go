package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/deck"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show deck statistics",
	Long: `Stats prints card counts, cost and type distributions, and average momentum
and damage for both decks combined.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(cmd.Context())
		if err != nil {
			return err
		}

		stats := ws.session.Statistics()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			b, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}

		displayStats(stats, ws.session.Rules().StartingMaxSize)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
	addDeckFlag(statsCmd)
	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
}

// sortedCosts orders cost keys numerically with "N/A" last.
func sortedCosts(dist map[string]int) []string {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseFloat(keys[i], 64)
		b, errB := strconv.ParseFloat(keys[j], 64)
		switch {
		case errA != nil && errB != nil:
			return keys[i] < keys[j]
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return a < b
	})
	return keys
}

// bar draws a histogram bar scaled so top fills width.
func bar(n, top, width int) string {
	if top == 0 || width <= 0 {
		return ""
	}
	return strings.Repeat("█", n*width/top)
}

func maxCount(dist map[string]int) int {
	m := 0
	for _, n := range dist {
		if n > m {
			m = n
		}
	}
	return m
}

func displayStats(stats deck.Statistics, startingMax int) {
	label := func(s string) string { return colorize.CyanString("%-18s", s) }
	barWidth := terminalWidth() - 30

	fmt.Println(label("Total cards:") + strconv.Itoa(stats.Total))
	fmt.Println(label("Starting deck:") + fmt.Sprintf("%d/%d", stats.Starting, startingMax))
	fmt.Println(label("Purchase deck:") + strconv.Itoa(stats.Purchase))
	fmt.Println(label("Unique titles:") + strconv.Itoa(stats.Unique))
	fmt.Println(label("Avg momentum:") + fmt.Sprintf("%.2f", stats.AverageMomentum))
	fmt.Println(label("Avg damage:") + fmt.Sprintf("%.2f", stats.AverageDamage))

	if len(stats.CostDistribution) > 0 {
		fmt.Println()
		fmt.Println(colorize.CyanString("Cost distribution:"))
		top := maxCount(stats.CostDistribution)
		for _, k := range sortedCosts(stats.CostDistribution) {
			n := stats.CostDistribution[k]
			fmt.Printf("  %-6s %3d %s\n", k, n, bar(n, top, barWidth))
		}
	}

	if len(stats.TypeDistribution) > 0 {
		fmt.Println()
		fmt.Println(colorize.CyanString("Type distribution:"))
		byName := make(map[string]int, len(stats.TypeDistribution))
		for t, n := range stats.TypeDistribution {
			byName[t.String()] = n
		}
		top := maxCount(byName)
		for _, t := range append(card.Types(), card.Unknown) {
			if n, ok := stats.TypeDistribution[t]; ok {
				fmt.Printf("  %-12s %3d %s\n", t, n, bar(n, top, barWidth-6))
			}
		}
	}
}
