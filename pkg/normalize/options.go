package normalize

// Option enables or disables one stage of a Normalizer.
type Option func(*Normalizer)

// OptCollapseSpaces trims the string and collapses internal white space
// to single ASCII spaces.
func OptCollapseSpaces(b bool) Option {
	return func(n *Normalizer) {
		n.spaces = b
	}
}

// OptPunctuation converts curly quotes to straight ones and dashes to
// hyphen-minus.
func OptPunctuation(b bool) Option {
	return func(n *Normalizer) {
		n.punctuation = b
	}
}

// OptSymbols spells out Greek letters and converts capital sharp S to "SS".
func OptSymbols(b bool) Option {
	return func(n *Normalizer) {
		n.symbols = b
	}
}

// OptAccents removes diacritics, folding letters to their ASCII base.
func OptAccents(b bool) Option {
	return func(n *Normalizer) {
		n.accents = b
	}
}

// OptLowerCase lower-cases the string.
func OptLowerCase(b bool) Option {
	return func(n *Normalizer) {
		n.lowerCase = b
	}
}

// OptStripQuotes removes single and double quotes.
func OptStripQuotes(b bool) Option {
	return func(n *Normalizer) {
		n.quotes = b
	}
}
