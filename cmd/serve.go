/*
Copyright © 2026 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/iosfga"
	"github.com/gnames/gnmatch/internal/ioweb"
	"github.com/gnames/gnmatch/pkg/config"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var (
		port int
		sfga string
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local name matching service over an SFGA archive",
		Long: `Build an in-memory index from an SFGA archive and serve it with the
same REST API the client uses, so the service can be set as the
client base URL.

The archive can be a local SQLite file, or a local or remote .zip,
.sql or .sqlite archive. Archives are extracted to
~/.cache/gnmatch/sfga.

The index matches canonical forms of names exactly, search styles
are ignored.

Examples:
  gnmatch serve --sfga ~/data/vascan.sqlite --port 8080
  gnmatch match "Acacia dealbata" -u http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("port") {
				opts = append(opts, config.OptServerPort(port))
			}
			if cmd.Flags().Changed("sfga") {
				opts = append(opts, config.OptServerSFGA(sfga))
			}
			cfg.Update(opts)

			err := runServe(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().IntVarP(&port, "port", "P", 0, "port of the service")
	serveCmd.Flags().StringVar(&sfga, "sfga", "", "path or URL of an SFGA archive")
	return serveCmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if cfg.Server.SFGA == "" {
		return noSFGAError()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gn.Info("Building local index from <em>%s</em>", cfg.Server.SFGA)
	idx, err := iosfga.Open(ctx, cfg.Server.SFGA, config.SFGADir(cfg.HomeDir), cfg.JobsNumber)
	if err != nil {
		return err
	}
	defer idx.Close()

	gn.Info("Serving on port <em>%d</em>, press Ctrl-C to stop", cfg.Server.Port)
	return ioweb.New(idx, cfg.JobsNumber).Run(ctx, cfg.Server.Port)
}
