package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"connect4/config"
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/player"
	"connect4/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: connect4 <command> [flags]

commands:
  play        play against the computer in the terminal
  selfplay    let two computers play each other
  experiment  run a tournament and store the results as CSV
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch command, args := os.Args[1], os.Args[2:]; command {
	case "play":
		err = play(cfg, args)
	case "selfplay":
		err = selfplay(cfg, args)
	case "experiment":
		err = experiment(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", os.Args[1])
	}
}

func play(cfg config.Config, args []string) error {
	flags := flag.NewFlagSet("play", flag.ExitOnError)
	depth := flags.Int("depth", cfg.Depth, "Search depth of the computer")
	aiColor := flags.String("ai-color", cfg.AIColor.String(), "Colour played by the computer (red or yellow)")
	drawPolicy := flags.String("draw-policy", cfg.DrawPolicy.String(), "How the computer scores a full board (penalize or neutral)")
	goroutines := flags.Int("goroutines", cfg.Goroutines, "Number of goroutines searching root columns")
	flags.Parse(args)

	var err error
	if cfg.AIColor, err = game.ParsePlayer(*aiColor); err != nil {
		return err
	}
	if cfg.DrawPolicy, err = searcher.ParseDrawPolicy(*drawPolicy); err != nil {
		return err
	}
	cfg.Depth, cfg.Goroutines = *depth, *goroutines
	if err := cfg.Validate(); err != nil {
		return err
	}

	g := game.NewGame(cfg.Columns, cfg.Rows)
	console := player.NewConsole(os.Stdout, g)
	defer console.Close()
	g.Reset() // draw the empty board

	computer := player.NewComputer(cfg.SearchOptions()...)
	human := player.NewHuman(os.Stdin, os.Stdout)
	red, yellow := player.Agent(human), player.Agent(computer)
	if computer.Identity() == game.Red {
		red, yellow = computer, human
	}

	_, err = engine.LocalEngine(g, red, yellow).Run()
	if errors.Is(err, player.ErrQuit) || errors.Is(err, player.ErrNoInput) {
		fmt.Println("bye")
		return nil
	}
	return err
}

func selfplay(cfg config.Config, args []string) error {
	flags := flag.NewFlagSet("selfplay", flag.ExitOnError)
	games := flags.Int("games", 1, "Number of games to play")
	depthRed := flags.Int("depth-red", cfg.Depth, "Search depth of red")
	depthYellow := flags.Int("depth-yellow", cfg.Depth, "Search depth of yellow")
	flags.Parse(args)

	wins := map[game.Player]int{}
	for i := 0; i < *games; i++ {
		redOptions := append(cfg.SearchOptions(), searcher.WithIdentity(game.Red), searcher.WithDepth(*depthRed))
		yellowOptions := append(cfg.SearchOptions(), searcher.WithIdentity(game.Yellow), searcher.WithDepth(*depthYellow))
		if cfg.Seed != 0 {
			redOptions = append(redOptions, searcher.WithSeed(cfg.Seed+uint64(2*i)))
			yellowOptions = append(yellowOptions, searcher.WithSeed(cfg.Seed+uint64(2*i+1)))
		}

		g := game.NewGame(cfg.Columns, cfg.Rows)
		result, err := engine.LocalEngine(g, player.NewComputer(redOptions...), player.NewComputer(yellowOptions...)).Run()
		if err != nil {
			return err
		}
		wins[result.Winner]++
		log.Info().Msgf("game %d of %d over after %d moves, winner: %s\n%s", i+1, *games, result.Game.TotalMoves, result.Winner, g)
	}

	log.Info().Msgf("red %d, yellow %d, draws %d", wins[game.Red], wins[game.Yellow], wins[game.None])
	return nil
}

func experiment(args []string) error {
	flags := flag.NewFlagSet("experiment", flag.ExitOnError)
	setupPath := flags.String("setup", "", "YAML file describing the tournament")
	preset := flags.String("preset", "", "Built-in tournament: depth, draw-policy or throughput")
	out := flags.String("out", "results", "Directory to store results in")
	flags.Parse(args)

	var setup experiments.Setup
	var err error
	switch {
	case *setupPath != "":
		setup, err = experiments.LoadSetup(*setupPath)
	case *preset != "":
		setup, err = experiments.Preset(*preset)
	default:
		return errors.New("either -setup or -preset is required")
	}
	if err != nil {
		return err
	}

	dir, err := experiments.Run(setup, *out)
	if err != nil {
		return err
	}
	fmt.Println(dir)
	return nil
}
