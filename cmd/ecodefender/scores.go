package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/eco-defender/internal/registry"
	"github.com/vovakirdan/eco-defender/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show best runs for a map",
	Long: `Display the best runs for the specified map (default: ecodefender).

Examples:
  ecodefender scores
  ecodefender scores ecodefender_city --limit 20
  ecodefender scores --recent
  ecodefender scores ecodefender_city --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the most recent runs across all maps")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs for the map")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		logger.Info("cleared scores", "game", gameID)
		return nil
	}

	var (
		runs  []storage.Run
		title string
	)
	if flagScoresRecent {
		runs, err = store.RecentRuns(flagScoresLimit)
		title = "Recent runs"
	} else {
		runs, err = store.TopRuns(gameID, flagScoresLimit)
		title = "Best runs - " + gameTitle(gameID)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	fmt.Println(titleStyle.Render(title))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'ecodefender play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Println(runsTable(runs, flagScoresRecent))

	// Show totals for the map
	if !flagScoresRecent {
		if stats, err := store.GetGameStats(gameID); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d  |  Games: %d  |  Trees planted: %d\n",
				stats.HighScore, stats.GamesCount, stats.TotalTrees)
		}
	}
	return nil
}

// runsTable renders runs as a bordered table.
func runsTable(runs []storage.Run, withGame bool) string {
	headers := []string{"Rank", "XP", "Money", "Trees", "Trash", "Stopped", "Time", "Player", "Date"}
	if withGame {
		headers = append(headers, "Map")
	}

	rows := make([][]string, 0, len(runs))
	for i, r := range runs {
		row := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			fmt.Sprintf("$%d", r.Money),
			strconv.Itoa(r.TreesPlanted),
			strconv.Itoa(r.TrashCollected),
			strconv.Itoa(r.PollutersStopped),
			r.Duration.Round(time.Second).String(),
			r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
		if withGame {
			row = append(row, r.GameID)
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

// gameTitle returns the display title for a registered game id.
func gameTitle(gameID string) string {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title
		}
	}
	return gameID
}
