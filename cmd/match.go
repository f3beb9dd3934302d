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
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnmatch/internal/ioclient"
	"github.com/gnames/gnmatch/pkg/client"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/spf13/cobra"
)

// getMatchCmd returns the match command.
func getMatchCmd() *cobra.Command {
	var (
		cl    match.Classification
		style string
	)

	matchCmd := &cobra.Command{
		Use:   "match [scientific name]",
		Short: "Resolve a scientific name or a classification",
		Long: `Resolve a scientific name, or a Linnaean classification given by
flags, to the best-match taxon concept. The result is printed as JSON.

Examples:
  gnmatch match "Acacia dealbata"
  gnmatch match --genus Macropus --species giganteus
  gnmatch match "Acacia" --kingdom Plantae --style fuzzy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cl.ScientificName = args[0]
			}
			err := runMatch(cmd, cl, style)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := matchCmd.Flags()
	f.StringVarP(&cl.ScientificNameAuthorship, "authorship", "a", "",
		"authorship of the scientific name")
	f.StringVarP(&cl.Kingdom, "kingdom", "k", "", "kingdom")
	f.StringVarP(&cl.Phylum, "phylum", "p", "", "phylum")
	f.StringVarP(&cl.Class, "class", "c", "", "class")
	f.StringVarP(&cl.Order, "order", "o", "", "order")
	f.StringVarP(&cl.Family, "family", "f", "", "family")
	f.StringVarP(&cl.Genus, "genus", "g", "", "genus")
	f.StringVarP(&cl.SpecificEpithet, "species", "s", "", "specific epithet")
	f.StringVarP(&cl.InfraspecificEpithet, "infraspecies", "i", "",
		"infraspecific epithet")
	f.StringVarP(&cl.Rank, "rank", "r", "", "rank of the name")
	f.StringVar(&style, "style", "", "search style: STRICT, FUZZY or MATCH_ALL")

	return matchCmd
}

func runMatch(cmd *cobra.Command, cl match.Classification, style string) error {
	ss, err := match.ParseSearchStyle(style)
	if err != nil {
		return searchStyleError(style, err)
	}

	if cl.Query("").IsEmpty() {
		return cmd.Help()
	}

	return runOne(cmd, func(c client.Client) match.Result {
		return c.MatchByClassification(cmd.Context(), cl, ss)
	})
}

// runOne resolves one request with a client made from the configuration
// and prints the result.
func runOne(cmd *cobra.Command, resolve func(client.Client) match.Result) error {
	c, err := ioclient.New(cfg)
	if err != nil {
		return err
	}
	res := resolve(c)
	if err = c.Close(); err != nil {
		return err
	}
	return output(cmd.OutOrStdout(), res)
}

// output prints a value as indented JSON.
func output(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, strings.TrimSpace(string(bs)))
	return err
}
