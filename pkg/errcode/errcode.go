package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Client configuration errors
	ClientConfigError
	ClientBaseURLError

	// Cache errors
	CacheOpenError
	CacheNotOpenError
	CacheEncodeError
	CacheWriteError
	CacheClearError

	// Transport errors
	TransportRequestError
	TransportStatusError
	TransportDecodeError

	// Local index errors
	SFGAFetchError
	SFGAOpenError
	SFGAVersionError
	SFGAReadError

	// Server errors
	ServerStartError
	ServerConfigError

	// Input errors
	BulkInputError
	SearchStyleError
)
