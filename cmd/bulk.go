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
	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/ioclient"
	"github.com/gnames/gnmatch/internal/iofs"
	"github.com/gnames/gnmatch/pkg/client"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/spf13/cobra"
)

// getBulkCmd returns the bulk command.
func getBulkCmd() *cobra.Command {
	var ids, follow, quiet bool

	bulkCmd := &cobra.Command{
		Use:   "bulk <file>",
		Short: "Resolve a list of queries or taxon IDs from a file",
		Long: `Resolve a list of name queries from a YAML or JSON file. With --ids
the file contains a list of taxon identifiers instead. Null elements
are allowed, they give null results at the same positions. The result
is a JSON array of the same length as the input.

Query example (YAML):
  - scientificName: Acacia dealbata
  - genus: Macropus
    specificEpithet: giganteus
  - null

Examples:
  gnmatch bulk names.yaml -j 8
  gnmatch bulk --ids --follow ids.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBulk(cmd, args[0], ids, follow, quiet)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := bulkCmd.Flags()
	f.BoolVar(&ids, "ids", false, "the file contains taxon IDs")
	f.BoolVarP(&follow, "follow", "F", false,
		"resolve synonym IDs to accepted taxa (with --ids)")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not show the progress bar")
	return bulkCmd
}

func runBulk(cmd *cobra.Command, path string, ids, follow, quiet bool) error {
	var (
		qs    []*match.NameQuery
		tids  []*string
		total int
		err   error
	)

	if ids {
		tids, err = iofs.ReadTaxonIDs(path)
		total = countSet(tids)
	} else {
		qs, err = iofs.ReadQueries(path)
		total = countSet(qs)
	}
	if err != nil {
		return err
	}

	var opts []client.Option
	var bar *pb.ProgressBar
	if !quiet {
		bar = pb.Full.Start(total)
		bar.Set(pb.CleanOnFinish, true)
		opts = append(opts, client.OptProgress(func() { bar.Increment() }))
	}

	c, err := ioclient.New(cfg, opts...)
	if err != nil {
		if bar != nil {
			bar.Finish()
		}
		return err
	}

	var res []*match.Result
	if ids {
		res = c.GetAllByTaxonID(cmd.Context(), tids, follow)
	} else {
		res = c.MatchAll(cmd.Context(), qs)
	}
	if bar != nil {
		bar.Finish()
	}

	if err = c.Close(); err != nil {
		return err
	}

	gn.Info("Resolved <em>%d</em> of <em>%d</em> items", countSuccess(res), total)
	return output(cmd.OutOrStdout(), res)
}

func countSet[T any](items []*T) int {
	var res int
	for _, v := range items {
		if v != nil {
			res++
		}
	}
	return res
}

func countSuccess(res []*match.Result) int {
	var count int
	for _, v := range res {
		if v != nil && v.Success {
			count++
		}
	}
	return count
}
