package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/saulo-duarte/quizzy/internal/catalog"
	"github.com/saulo-duarte/quizzy/internal/config"
	"github.com/saulo-duarte/quizzy/internal/console"
	"github.com/saulo-duarte/quizzy/internal/container"
	"github.com/saulo-duarte/quizzy/internal/timer"
	"github.com/urfave/cli/v2"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "quizzy:", err)
		stop()
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:    "quizzy",
		Usage:   "timed multiple-choice quizzes in the terminal",
		Version: Version,
		Reader:  in,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage:   "path to a YAML quiz catalog (embedded catalog when empty)",
				EnvVars: []string{"QUIZZY_CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "logrus level (panic, fatal, error, warn, info, debug, trace)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play a quiz",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "quiz", Aliases: []string{"q"}, Usage: "start this quiz id right away"},
					&cli.BoolFlag{Name: "json", Usage: "print each result as a JSON line"},
					&cli.BoolFlag{Name: "no-color", Usage: "disable ANSI colours (also honours NO_COLOR)"},
				},
				Action: playAction,
			},
			{
				Name:   "list",
				Usage:  "list the quizzes in the catalog",
				Action: listAction,
			},
			{
				Name:      "validate",
				Usage:     "check a catalog file and report every problem",
				ArgsUsage: "[PATH]",
				Action:    validateAction,
			},
			{
				Name:      "theme",
				Usage:     "show or change the display theme",
				ArgsUsage: "[show|toggle|dark|light]",
				Action:    themeAction,
			},
		},
		DefaultCommand: "play",
	}
}

func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	if c.IsSet("catalog") {
		settings.CatalogPath = c.String("catalog")
	}
	if c.IsSet("log-level") {
		settings.LogLevel = c.String("log-level")
	}
	return settings, nil
}

func build(c *cli.Context) (*container.Container, error) {
	settings, err := loadSettings(c)
	if err != nil {
		return nil, err
	}
	return container.New(c.Context, settings)
}

func playAction(c *cli.Context) error {
	app, err := build(c)
	if err != nil {
		return err
	}

	loop := timer.NewLoopScheduler(64)
	cfg := console.Config{
		Out:         c.App.Writer,
		Sessions:    app.SessionContainer,
		Preferences: app.PreferenceContainer.Service,
		Scheduler:   loop,
		Color:       !c.Bool("no-color") && os.Getenv("NO_COLOR") == "",
	}
	if c.Bool("json") {
		cfg.ResultOut = c.App.Writer
	}

	return console.New(c.Context, cfg).Run(c.Context, c.App.Reader, loop, c.String("quiz"))
}

func listAction(c *cli.Context) error {
	app, err := build(c)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tQUESTIONS\tSECONDS")
	for _, q := range app.CatalogContainer.Repo.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", q.ID, q.Title, q.Category, len(q.Questions), q.TimePerQuestion)
	}
	return w.Flush()
}

func validateAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = c.String("catalog")
	}

	var (
		repo catalog.CatalogRepository
		err  error
	)
	if path == "" {
		repo, err = catalog.LoadDefault()
		path = "embedded catalog"
	} else {
		repo, err = catalog.LoadFile(path)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(c.App.Writer, "%s: %d quizzes ok\n", path, repo.Count())
	return nil
}

var errUnknownTheme = errors.New("expected show, toggle, dark or light")

func themeAction(c *cli.Context) error {
	app, err := build(c)
	if err != nil {
		return err
	}
	prefs := app.PreferenceContainer.Service
	ctx := c.Context

	switch arg := strings.ToLower(c.Args().First()); arg {
	case "", "show":
	case "toggle":
		if _, err := prefs.ToggleDarkMode(ctx); err != nil {
			return err
		}
	case "dark", "light":
		if err := prefs.SetDarkMode(ctx, arg == "dark"); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w, got %q", errUnknownTheme, arg)
	}

	name := "light"
	if prefs.DarkMode(ctx) {
		name = "dark"
	}
	fmt.Fprintln(c.App.Writer, name)
	return nil
}
