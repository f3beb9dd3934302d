package ioweb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func ServerStartError(addr string, err error) error {
	msg := "Cannot start server at <em>%s</em>"
	vars := []any{addr}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ServerStartError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot serve %s: %w", fn.Name(), addr, err),
	}
}
