package iohttp

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/pkg/errcode"
)

func BaseURLError(url string, err error) error {
	msg := "Base URL <em>%s</em> is not a valid http(s) address"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClientBaseURLError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad base URL %q: %w", fn.Name(), url, err),
	}
}

func RequestError(url string, err error) error {
	msg := "Request to <em>%s</em> failed"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TransportRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request to %s: %w", fn.Name(), url, err),
	}
}

func StatusError(url string, status int) error {
	msg := "Service at <em>%s</em> answered with status %d"
	vars := []any{url, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TransportStatusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s returned status %d", fn.Name(), url, status),
	}
}

func DecodeError(url string, err error) error {
	msg := "Cannot decode response from <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TransportDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot decode response of %s: %w", fn.Name(), url, err),
	}
}
