package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/evanbei/nodegen/internal"
	pkgconfig "github.com/evanbei/nodegen/pkg/config"
)

var version = "dev"

func runCommand(name string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		configPath := cmd.String("config")

		cfg := internal.NewDefaultConfig()
		if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}

		opts := []internal.Option{
			internal.WithConfig(cfg),
			internal.WithConfigFile(configPath),
			internal.WithCommand(name),
			internal.WithVersion(version),
		}

		if err := internal.Run(ctx, opts...); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "nodegen",
		Usage:   "Derive the node descriptor, node page and checksum manifest of a static site",
		Version: version,
		Action:  runCommand(internal.CommandBuild),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (optional; defaults apply when missing)",
				DefaultText: "nodegen.yaml",
				Value:       "nodegen.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   internal.CommandBuild,
				Usage:  "Derive node files, then the checksum manifest (default)",
				Action: runCommand(internal.CommandBuild),
			},
			{
				Name:   internal.CommandNode,
				Usage:  "Derive .well-known/node.json and node/index.html from portal/portal.json",
				Action: runCommand(internal.CommandNode),
			},
			{
				Name:   internal.CommandChecksums,
				Usage:  "Write node/checksums.json for the published files",
				Action: runCommand(internal.CommandChecksums),
			},
			{
				Name:   internal.CommandVerify,
				Usage:  "Check published files against the portal and the checksum manifest",
				Action: runCommand(internal.CommandVerify),
			},
			{
				Name:   internal.CommandWatch,
				Usage:  "Rebuild whenever the portal document changes",
				Action: runCommand(internal.CommandWatch),
			},
			{
				Name:   internal.CommandServe,
				Usage:  "Serve the site locally and rebuild on portal changes",
				Action: runCommand(internal.CommandServe),
			},
			{
				Name:   internal.CommandMCP,
				Usage:  "Expose the derivations as MCP tools over stdio",
				Action: runCommand(internal.CommandMCP),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
