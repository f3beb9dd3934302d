// Package normalize canonicalises scientific and vernacular name strings
// before they are compared or used in cache keys. This is a pure package.
//
// A Normalizer runs up to six stages, always in this order:
//
//  1. collapse whitespace
//  2. normalise punctuation (curly quotes, dashes)
//  3. expand letter-like symbols (α -> " alpha", ẞ -> "SS")
//  4. strip accents (ASCII fold: é -> e, ß -> ss)
//  5. lower-case (locale independent, ẞ -> ß)
//  6. strip quotes
//
// Disabled stages are skipped. When whitespace collapsing is enabled it also
// runs after the last stage, so the padding added by symbol expansion never
// leaves double spaces behind.
package normalize

import (
	"strings"
	"unicode"

	"github.com/gnames/gnlib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer applies the enabled stages to a string. It is immutable
// and safe for concurrent use.
type Normalizer struct {
	spaces      bool
	punctuation bool
	symbols     bool
	accents     bool
	lowerCase   bool
	quotes      bool
}

// New creates a Normalizer with all stages disabled and then applies
// options.
func New(opts ...Option) *Normalizer {
	res := &Normalizer{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// All creates a Normalizer with every stage enabled.
func All() *Normalizer {
	return New(
		OptCollapseSpaces(true),
		OptPunctuation(true),
		OptSymbols(true),
		OptAccents(true),
		OptLowerCase(true),
		OptStripQuotes(true),
	)
}

// Normalize returns canonical form of a string. Empty input gives empty
// output.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = gnlib.FixUtf8(s)

	if n.spaces {
		s = collapseSpaces(s)
	}
	if n.punctuation {
		s = punctuationReplacer.Replace(s)
	}
	if n.symbols {
		s = symbolReplacer.Replace(s)
	}
	if n.accents {
		s = stripAccents(s)
	}
	if n.lowerCase {
		s = cases.Lower(language.Und).String(s)
	}
	if n.quotes {
		s = quoteRemover.Replace(s)
	}
	if n.spaces {
		s = collapseSpaces(s)
	}
	return s
}

// collapseSpaces trims the string and replaces internal runs of white
// space with one ASCII space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var punctuationReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"‚", "'",
	"‛", "'",
	"′", "'",
	"“", `"`,
	"”", `"`,
	"„", `"`,
	"‟", `"`,
	"″", `"`,
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"―", "-", // horizontal bar
	"−", "-", // minus sign
)

var greek = []struct {
	letter rune
	name   string
}{
	{'α', "alpha"}, {'β', "beta"}, {'γ', "gamma"}, {'δ', "delta"},
	{'ε', "epsilon"}, {'ζ', "zeta"}, {'η', "eta"}, {'θ', "theta"},
	{'ι', "iota"}, {'κ', "kappa"}, {'λ', "lambda"}, {'μ', "mu"},
	{'ν', "nu"}, {'ξ', "xi"}, {'ο', "omicron"}, {'π', "pi"},
	{'ρ', "rho"}, {'σ', "sigma"}, {'ς', "sigma"}, {'τ', "tau"},
	{'υ', "upsilon"}, {'φ', "phi"}, {'χ', "chi"}, {'ψ', "psi"},
	{'ω', "omega"},
}

var symbolReplacer = func() *strings.Replacer {
	// only lower case Greek letters are used as symbols in names
	// (e.g. 'Rosa α alba'), upper case ones stay as letters.
	oldnew := make([]string, 0, 2*len(greek)+2)
	for _, v := range greek {
		oldnew = append(oldnew, string(v.letter), " "+v.name)
	}
	oldnew = append(oldnew, "ẞ", "SS")
	return strings.NewReplacer(oldnew...)
}()

// folds contains letters that survive canonical decomposition but have
// a conventional ASCII spelling.
var folds = strings.NewReplacer(
	"ß", "ss",
	"Æ", "AE", "æ", "ae",
	"Œ", "OE", "œ", "oe",
	"Ø", "O", "ø", "o",
	"Ł", "L", "ł", "l",
	"Đ", "D", "đ", "d",
	"Þ", "TH", "þ", "th",
	"ı", "i",
)

func stripAccents(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	res, _, err := transform.String(t, s)
	if err != nil {
		res = s
	}
	return folds.Replace(res)
}

var quoteRemover = strings.NewReplacer(
	"'", "",
	`"`, "",
	"‘", "",
	"’", "",
	"‚", "",
	"‛", "",
	"“", "",
	"”", "",
	"„", "",
	"‟", "",
)
