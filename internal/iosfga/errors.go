package iosfga

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func FetchError(path string, err error) error {
	msg := "Cannot get SFGA archive from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot fetch %s: %w", fn.Name(), path, err),
	}
}

func OpenError(path string, err error) error {
	msg := "Cannot open SFGA database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

func VersionError(version string, err error) error {
	msg := "SFGA version <em>%s</em> is not supported, need %s or newer"
	vars := []any{version, minVersion()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad SFGA version %q: %w", fn.Name(), version, err),
	}
}

func ReadError(table string, err error) error {
	msg := "Cannot read <em>%s</em> data from SFGA"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SFGAReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn.Name(), table, err),
	}
}
