package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface/fdbadapter"
	"github.com/foundationdb/fdb-go-stacktester/internal/tester"
)

func main() {
	app := &cli.App{
		Name:      "fdb-go-stacktester",
		Usage:     "Go binding conformance test stack machine",
		ArgsUsage: "<command-prefix> <api-version> [<cluster-file>]",
		Action:    doRun,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func doRun(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("usage: %s <command-prefix> <api-version> [<cluster-file>]", c.App.Name)
	}

	prefix := c.Args().Get(0)
	apiVersion, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid api-version %q: %w", c.Args().Get(1), err)
	}

	clusterFile := "./fdb.cluster"
	if c.Args().Len() >= 3 {
		clusterFile = c.Args().Get(2)
	}

	db, err := fdbadapter.OpenDatabase(clusterFile, apiVersion)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	return tester.RunProgram(context.Background(), db, []byte(prefix))
}
