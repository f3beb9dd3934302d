// Package parserpool keeps ready gnparser instances for concurrent
// extraction of canonical forms.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnparser/ent/parsed"
)

// Pool provides parsers for botanical and zoological names.
type Pool interface {
	// Parse parses a name string according to the nomenclatural code.
	// Codes other than botanical use the zoological parser.
	// Safe for concurrent use.
	Parse(nameString string, code nomcode.Code) parsed.Parsed

	// Canonical returns the simple canonical form of a name. The boolean
	// is false if the name could not be parsed.
	Canonical(nameString string, code nomcode.Code) (string, bool)

	// Close releases parsers. The pool must not be used afterwards.
	Close()
}

type pool struct {
	botanicalCh  chan gnparser.GNparser
	zoologicalCh chan gnparser.GNparser
}

// NewPool creates a pool with jobsNum parsers per nomenclatural code.
// If jobsNum is less than 1, runtime.NumCPU() is used.
func NewPool(jobsNum int) Pool {
	size := jobsNum
	if size < 1 {
		size = runtime.NumCPU()
	}

	botCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
	zooCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Zoological))

	return &pool{
		botanicalCh:  gnparser.NewPool(botCfg, size),
		zoologicalCh: gnparser.NewPool(zooCfg, size),
	}
}

// Code converts the code field of an SFGA name record to a
// nomenclatural code.
func Code(codeID string) nomcode.Code {
	switch strings.ToLower(strings.TrimSpace(codeID)) {
	case "botanical", "icn", "icbn", "cultivars", "icncp":
		return nomcode.Botanical
	default:
		return nomcode.Zoological
	}
}

func (p *pool) Parse(nameString string, code nomcode.Code) parsed.Parsed {
	ch := p.zoologicalCh
	if code == nomcode.Botanical {
		ch = p.botanicalCh
	}

	parser := <-ch
	defer func() { ch <- parser }()

	return parser.ParseName(nameString)
}

func (p *pool) Canonical(nameString string, code nomcode.Code) (string, bool) {
	res := p.Parse(nameString, code)
	if !res.Parsed || res.Canonical == nil {
		return "", false
	}
	return res.Canonical.Simple, true
}

func (p *pool) Close() {
	for _, ch := range []chan gnparser.GNparser{p.botanicalCh, p.zoologicalCh} {
		if ch == nil {
			continue
		}
		close(ch)
		for range ch {
		}
	}
}
