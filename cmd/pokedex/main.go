// Command pokedex browses the Pokedex through PokeAPI from the terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Sternrassler/pokedex-client/pkg/metrics"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "pokedex:", err)
		os.Exit(1)
	}
}

// newApp builds the CLI. Each command loads the configuration and wires its
// collaborators on demand through the shared env.
func newApp(stdout, stderr io.Writer) *cli.App {
	e := &env{}

	return &cli.App{
		Name:      "pokedex",
		Usage:     "Browse Pokemon, species, types, and evolutions from PokeAPI",
		Version:   "1.0.0",
		Compiled:  time.Now(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file (default ./pokedex.yaml if present)",
				EnvVars: []string{"CONFIG_PATH"},
			},
			&cli.StringFlag{
				Name:    "locale",
				Usage:   "language for flavor text and genus (overrides config)",
				EnvVars: []string{"POKEDEX_LOCALE"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   string(formatText),
				Usage:   "output format (text, json, yaml)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error); overrides config",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print client metrics in Prometheus text format after the command",
			},
		},
		Before: e.setup,
		After: func(c *cli.Context) error {
			defer e.close()
			if c.Bool("metrics") {
				return metrics.WriteText(c.App.ErrWriter, "pokeapi_", "pokedex_")
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List one page of Pokemon",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "offset", Usage: "index of the first Pokemon"},
					&cli.IntFlag{Name: "limit", Usage: "page size (default from config)"},
				},
				Action: e.list,
			},
			{
				Name:      "type",
				Usage:     "List the Pokemon of one type",
				ArgsUsage: "<name>",
				Action:    e.listByType,
			},
			{
				Name:   "types",
				Usage:  "List all type names",
				Action: e.types,
			},
			{
				Name:      "show",
				Usage:     "Show the full profile of a Pokemon",
				ArgsUsage: "<idOrName>",
				Action:    e.show,
			},
			{
				Name:      "species",
				Usage:     "Show species information",
				ArgsUsage: "<idOrName>",
				Action:    e.species,
			},
			{
				Name:      "evolution",
				Usage:     "Show the evolution chain of a species",
				ArgsUsage: "<idOrName>",
				Action:    e.evolution,
			},
			{
				Name:      "search",
				Usage:     "Suggest Pokemon names by prefix",
				ArgsUsage: "<query>",
				Action:    e.search,
			},
			{
				Name:      "compare",
				Usage:     "Compare the base stats of two Pokemon",
				ArgsUsage: "<a> <b>",
				Action:    e.compare,
			},
			{
				Name:  "favorites",
				Usage: "Manage favorite Pokemon",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List favorites",
						Action: e.favoritesList,
					},
					{
						Name:      "add",
						Usage:     "Add a favorite",
						ArgsUsage: "<idOrName>",
						Action:    e.favoritesAdd,
					},
					{
						Name:      "remove",
						Usage:     "Remove a favorite",
						ArgsUsage: "<idOrName>",
						Action:    e.favoritesRemove,
					},
					{
						Name:      "toggle",
						Usage:     "Add a favorite, or remove it if already present",
						ArgsUsage: "<idOrName>",
						Action:    e.favoritesToggle,
					},
				},
			},
		},
	}
}
