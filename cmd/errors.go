package cmd

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func searchStyleError(style string, err error) error {
	msg := "Unknown search style <em>%s</em>, use STRICT, FUZZY or MATCH_ALL"
	vars := []any{style}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SearchStyleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), err),
	}
}

func noSFGAError() error {
	msg := `<err>SFGA archive is not set.</err>
   Use <em>--sfga</em> flag or <em>server.sfga</em> in config.yaml`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerConfigError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: %w", fn.Name(), errors.New("no SFGA archive")),
	}
}
