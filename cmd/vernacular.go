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

// getVernacularCmd returns the vernacular command.
func getVernacularCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "vernacular <common name>",
		Aliases: []string{"common"},
		Short:   "Resolve a vernacular name",
		Long: `Resolve a vernacular (common) name to a taxon concept.

Examples:
  gnmatch vernacular "Silver Wattle"
  gnmatch common "Eastern Grey Kangaroo"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOne(cmd, func(c client.Client) match.Result {
				return c.MatchVernacular(cmd.Context(), args[0])
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}
