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

	"github.com/gnames/gnmatch/pkg/normalize"
	"github.com/spf13/cobra"
)

// getNormalizeCmd returns the normalize command.
func getNormalizeCmd() *cobra.Command {
	var (
		spaces, punctuation, symbols bool
		accents, lower, quotes       bool
	)

	normCmd := &cobra.Command{
		Use:   "normalize <name>...",
		Short: "Show how name strings are normalized",
		Long: `Print normalized forms of name strings, one per line. Without
flags every normalization stage is used, the same way cache signatures
are computed. Flags select individual stages.

Examples:
  gnmatch normalize "ßomething good α"
  gnmatch normalize --accents --lower "Acacia DÉALBATA"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := normalize.All()
			if stagesChanged(cmd) {
				n = normalize.New(
					normalize.OptCollapseSpaces(spaces),
					normalize.OptPunctuation(punctuation),
					normalize.OptSymbols(symbols),
					normalize.OptAccents(accents),
					normalize.OptLowerCase(lower),
					normalize.OptStripQuotes(quotes),
				)
			}
			for _, s := range args {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), n.Normalize(s))
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	f := normCmd.Flags()
	f.BoolVar(&spaces, "spaces", false, "collapse whitespace")
	f.BoolVar(&punctuation, "punctuation", false, "normalize quotes and dashes")
	f.BoolVar(&symbols, "symbols", false, "expand letter-like symbols")
	f.BoolVar(&accents, "accents", false, "strip accents")
	f.BoolVar(&lower, "lower", false, "lower-case")
	f.BoolVar(&quotes, "quotes", false, "strip quotes")
	return normCmd
}

func stagesChanged(cmd *cobra.Command) bool {
	for _, name := range []string{
		"spaces", "punctuation", "symbols", "accents", "lower", "quotes",
	} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
