package iocache

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func OpenError(dir string, err error) error {
	msg := "Cannot open response cache at <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open cache %s: %w", fn.Name(), dir, err),
	}
}

func NotOpenError() error {
	msg := "Response cache is not open"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheNotOpenError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: %w",
			fn.Name(), errors.New("cache is not open")),
	}
}

func EncodeError(err error) error {
	msg := "Cannot encode cache entry"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheEncodeError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot encode entry: %w", fn.Name(), err),
	}
}

func WriteError(err error) error {
	msg := "Cannot write to response cache"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheWriteError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot write entry: %w", fn.Name(), err),
	}
}

func ClearError(dir string, failed int, err error) error {
	msg := "Cannot remove %d file(s) from cache <em>%s</em>"
	vars := []any{failed, dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheClearError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot clear cache %s: %w", fn.Name(), dir, err),
	}
}
