package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/gui"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/storage/sqlite"
)

const leaderboardSize = 10


func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var (
		themesPath string
		showScores bool
		logDebug   bool
		logVerbose bool
	)

	flags := flag.NewFlagSet("tetris", flag.ContinueOnError)

	flags.IntVar(&cfg.Rows, "rows", cfg.Rows, "board rows")
	flags.IntVar(&cfg.Columns, "cols", cfg.Columns, "board columns")
	flags.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "time between gravity steps")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "piece randomizer seed, 0 for random")
	flags.StringVar(&cfg.Nick, "nick", cfg.Nick, "nickname")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to high score database")
	flags.StringVar(&cfg.LogPath, "log", cfg.LogPath, "path to log file")
	flags.StringVar(&cfg.Theme, "theme", cfg.Theme, "theme name")
	flags.StringVar(&themesPath, "themes", "", "path to a JSON file of custom themes")
	flags.BoolVar(&showScores, "scores", false, "print the leaderboard and exit")
	flags.BoolVar(&logDebug, "debug", false, "enable debug logging")
	flags.BoolVar(&logVerbose, "verbose", false, "enable verbose logging")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open high score database: %w", err)
	}
	defer store.Close()

	if showScores {
		return printScores(store)
	}

	theme, err := loadTheme(cfg.Theme, themesPath)
	if err != nil {
		return fmt.Errorf("failed to load theme %s: %w", cfg.Theme, err)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("failed to start tetris: non-interactive terminals are not supported")
	}

	// The terminal belongs to the UI while the game runs
	if cfg.LogPath != "" {
		if err := game.InitLog(cfg.LogPath, "tetris: "); err != nil {
			return err
		}
	} else {
		log.SetOutput(io.Discard)
	}

	logLevel := game.LogStandard
	if logVerbose {
		logLevel = game.LogVerbose
	} else if logDebug {
		logLevel = game.LogDebug
	}

	nick := game.Nickname(cfg.Nick)

	engine, err := game.NewEngine(context.Background(), game.Options{
		Rows:         cfg.Rows,
		Columns:      cfg.Columns,
		FallTime:     cfg.TickInterval,
		ScorePerLine: cfg.ScorePerLine,
		Source:       mino.NewRandomSource(cfg.Seed),
		Store:        store.Player(nick),
		Logger:       log.Default(),
		LogLevel:     logLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	ui := gui.New(engine, nick, theme)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)
	go func() {
		if _, ok := <-sigc; ok {
			ui.Stop()
		}
	}()

	log.Printf("%s started a game", nick)
	engine.Start()

	err = ui.Run()
	engine.Stop()
	if err != nil {
		return fmt.Errorf("failed to run application: %w", err)
	}

	color.New(color.Bold).Printf("%s", nick)
	fmt.Printf(" scored %d, best %d\n", engine.Score(), engine.HighScore())
	return nil
}

func loadTheme(name string, path string) (gui.Theme, error) {
	var custom []gui.ThemeHex
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return gui.Theme{}, err
		}

		custom, err = gui.LoadThemes(data)
		if err != nil {
			return gui.Theme{}, err
		}
	}

	return gui.ImportThemes(name, custom)
}

func printScores(store *sqlite.Store) error {
	entries, err := store.Top(context.Background(), leaderboardSize)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		color.Yellow("No scores yet")
		return nil
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Printf("%-4s %-16s %8s\n", "#", "Player", "Score")
	for i, e := range entries {
		rank := color.New(color.FgWhite)
		if i == 0 {
			rank = color.New(color.FgYellow, color.Bold)
		}

		rank.Printf("%-4d %-16s %8d\n", i+1, e.Player, e.Score)
	}

	return nil
}
