package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"manoscerca.app/internal/config"
	"manoscerca.app/internal/directory"
	"manoscerca.app/internal/report"
	"manoscerca.app/internal/store"
	"manoscerca.app/internal/utils"
)

// cli carries the state shared by every subcommand.
type cli struct {
	cfg     *config.Config
	verbose bool

	in  *bufio.Reader
	out io.Writer
	err io.Writer
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{
		cfg: config.NewConfig(),
		in:  bufio.NewReader(in),
		out: out,
		err: errOut,
	}
	c.cfg.ApplyEnv(os.LookupEnv)

	root := &cobra.Command{
		Use:          "manoscercactl",
		Short:        "Manage the ManosCerca provider directory",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.SentryDSN != "" {
				if err := report.SetupSentry(c.cfg.SentryDSN, c.cfg.Env, version); err != nil {
					return err
				}
				report.ConfigureScope(c.cfg.Env, version)
			}
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&c.cfg.DBPath, "db", c.cfg.DBPath, "Path to the SQLite database file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log directory activity to stderr")

	root.AddCommand(
		c.categoriesCmd(),
		c.listCmd(),
		c.showCmd(),
		c.addCmd(),
		c.shareCmd(),
		c.exportCmd(),
		c.importLinkCmd(),
		c.importFileCmd(),
		c.deleteCmd(),
		c.clearCmd(),
	)

	return root
}

func (c *cli) logger() *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(c.err, &slog.HandlerOptions{Level: level}))
}

// openDirectory opens the database and loads the directory. The CLI never
// seeds sample data. The caller must call the returned close function.
func (c *cli) openDirectory(ctx context.Context) (*directory.Directory, func(), error) {
	logger := c.logger()
	if err := utils.CreateDataDirectory(c.cfg.DBPath, logger); err != nil {
		return nil, nil, err
	}

	st, err := store.OpenSQLite(ctx, c.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	d := directory.New(st, logger, directory.Options{
		BaseURL:      c.cfg.PublicBaseURL,
		MapCenter:    c.cfg.Map.Center,
		MapZoom:      c.cfg.Map.Zoom,
		ClusterLevel: c.cfg.ClusterLevel,
	})
	if err := d.Load(ctx, false); err != nil {
		st.Close()
		return nil, nil, err
	}
	return d, func() { st.Close() }, nil
}

// confirm asks a yes/no question on the command's input. Anything other
// than y or yes is a no.
func (c *cli) confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N]: ", question)
	answer, err := c.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	}
	return false, nil
}
