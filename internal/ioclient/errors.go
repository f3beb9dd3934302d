package ioclient

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func ConfigError(reason string, err error) error {
	msg := "Cannot configure name matching client: %s"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClientConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), reason, err),
	}
}
