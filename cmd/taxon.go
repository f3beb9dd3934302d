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
	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/client"
	"github.com/gnames/gnmatch/pkg/match"
	"github.com/spf13/cobra"
)

// getTaxonCmd returns the taxon command.
func getTaxonCmd() *cobra.Command {
	var follow bool

	taxonCmd := &cobra.Command{
		Use:   "taxon <taxon ID>",
		Short: "Find a taxon by its identifier",
		Long: `Find a taxon by its identifier. Identifiers of synonyms give a
failure with the 'synonym' issue, unless --follow is set, then they
resolve to the accepted taxon.

Examples:
  gnmatch taxon https://id.biodiversity.org.au/taxon/apni/51286863
  gnmatch taxon --follow urn:lsid:biodiversity.org.au:afd.taxon:123`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOne(cmd, func(c client.Client) match.Result {
				return c.GetByTaxonID(cmd.Context(), args[0], follow)
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	taxonCmd.Flags().BoolVarP(&follow, "follow", "F", false,
		"resolve synonym IDs to accepted taxa")
	return taxonCmd
}
