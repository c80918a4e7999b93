package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"tourdesk/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "tourctl",
		Usage: "manage tours on a tourdesk backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "backend base URL",
				EnvVars: []string{"TOURDESK_API_URL"},
				Value:   cfg.Client.APIURL,
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token for write routes",
				EnvVars: []string{"TOURDESK_TOKEN"},
				Value:   cfg.Client.Token,
			},
			&cli.BoolFlag{
				Name:    "nested-activities",
				Usage:   "allow adding or removing activities of an existing tour",
				EnvVars: []string{"TOURDESK_NESTED_ACTIVITIES"},
				Value:   cfg.Client.NestedActivities,
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "HTTP timeout",
				EnvVars: []string{"TOURDESK_HTTP_TIMEOUT"},
				Value:   cfg.Client.Timeout,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log requests and session events",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "check a tour file without contacting the backend",
				Flags:  []cli.Flag{fileFlag()},
				Action: validateAction,
			},
			{
				Name:   "show",
				Usage:  "print a stored tour",
				Flags:  []cli.Flag{idFlag()},
				Action: showAction,
			},
			{
				Name:   "create",
				Usage:  "create a tour from a file",
				Flags:  []cli.Flag{fileFlag()},
				Action: createAction,
			},
			{
				Name:   "update",
				Usage:  "load a tour, apply the values of a file and submit the change",
				Flags:  []cli.Flag{idFlag(), fileFlag()},
				Action: updateAction,
			},
			{
				Name:   "delete",
				Usage:  "delete a tour",
				Flags:  []cli.Flag{idFlag()},
				Action: deleteAction,
			},
			{
				Name:   "join",
				Usage:  "add the members listed in a file to a tour",
				Flags:  []cli.Flag{idFlag(), fileFlag()},
				Action: joinAction,
			},
			{
				Name:  "token",
				Usage: "issue a bearer token signed with JWT_SECRET",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Value: "operator"},
					&cli.StringFlag{Name: "role", Value: "admin"},
					&cli.DurationFlag{Name: "ttl", Value: cfg.JWT.TokenTTL},
				},
				Action: func(c *cli.Context) error {
					return tokenAction(c, cfg.JWT.Secret)
				},
			},
		},
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "JSON file, - for stdin", Required: true}
}

func idFlag() cli.Flag {
	return &cli.StringFlag{Name: "id", Usage: "tour id", Required: true}
}
