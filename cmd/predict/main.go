package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jstittsworth/fpl-predictor/internal/difficulty"
	"github.com/jstittsworth/fpl-predictor/internal/eligibility"
	"github.com/jstittsworth/fpl-predictor/internal/features"
	"github.com/jstittsworth/fpl-predictor/internal/ranking"
	"github.com/jstittsworth/fpl-predictor/internal/scoring"
	"github.com/jstittsworth/fpl-predictor/internal/store"
	"github.com/jstittsworth/fpl-predictor/pkg/logger"
)

func main() {
	var (
		snapshotPath = flag.String("snapshot", "data/snapshot.json", "Path to the season snapshot JSON")
		weightsPath  = flag.String("weights", "", "Path to model weights JSON (baseline weights when empty)")
		gameweek     = flag.Int("gameweek", 0, "Gameweek to predict")
		topN         = flag.Int("top", 20, "Number of top predictions to show")
		showExcluded = flag.Bool("show-excluded", false, "Show unavailable players")
	)
	flag.Parse()

	log := logger.InitLogger("warn", true)

	if *gameweek < 1 {
		fmt.Fprintln(os.Stderr, "A positive -gameweek is required")
		os.Exit(1)
	}

	snapshot, err := store.LoadSnapshot(*snapshotPath)
	if err != nil {
		log.Fatalf("Failed to load snapshot: %v", err)
	}

	var scorer scoring.Scorer
	if *weightsPath != "" {
		scorer, err = scoring.LoadLinearModel(*weightsPath)
		if err != nil {
			log.Fatalf("Failed to load model weights: %v", err)
		}
	} else {
		scorer = scoring.DefaultLinearModel()
	}

	estimator := difficulty.NewEstimator(snapshot, nil, 0)
	computer := features.NewComputer(snapshot, estimator, features.Config{})
	engine := ranking.NewEngine(snapshot, computer, eligibility.NewFilter(), scorer, ranking.Config{})

	result, err := engine.Rank(context.Background(), *gameweek, *topN)
	if err != nil {
		log.Fatalf("Ranking failed: %v", err)
	}

	if result.Status == ranking.StatusNoFixtures {
		fmt.Printf("No fixtures found for gameweek %d\n", *gameweek)
		return
	}

	printPredictions(result, *topN)

	if *showExcluded && len(result.Excluded) > 0 {
		printExcluded(result.Excluded)
	}
}

func printPredictions(result *ranking.Result, topN int) {
	title := fmt.Sprintf("TOP %d PREDICTIONS FOR GAMEWEEK %d", topN, result.Gameweek)
	line := strings.Repeat("=", 100)

	fmt.Println(line)
	fmt.Printf("%*s\n", (100+len(title))/2, title)
	fmt.Println(line)
	fmt.Printf("%-25s %-6s %-6s %-5s %-4s %-12s %-8s\n",
		"Player", "Team", "Opp", "Pos", "H/A", "Predicted", "Form")
	fmt.Println(strings.Repeat("-", 100))

	for _, p := range result.Predictions {
		venue := "AWAY"
		if p.IsHome {
			venue = "HOME"
		}
		fmt.Printf("%-25s %-6s %-6s %-5s %-4s %-12.2f %-8.2f\n",
			p.PlayerName, p.Team, p.Opponent, p.Position, venue,
			p.PredictedPoints, p.Features.AvgPointsLast5)
	}

	fmt.Println(line)
}

func printExcluded(excluded []ranking.Excluded) {
	line := strings.Repeat("=", 100)

	fmt.Println(line)
	fmt.Println("UNAVAILABLE PLAYERS")
	fmt.Println(line)

	for _, ex := range excluded {
		ret := "unknown"
		if ex.ExpectedReturn != nil {
			ret = fmt.Sprintf("GW%d", *ex.ExpectedReturn)
		}
		fmt.Printf("  %-30s %-15s (Return: %s)\n", ex.PlayerName, ex.Reason, ret)
	}

	fmt.Println(line)
}
