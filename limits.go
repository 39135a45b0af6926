package wrc

import "sync/atomic"

const (
	// The tree is type -> name -> language but we allow some slack
	// for non standard trees.
	MAX_RESOURCE_TREE_DEPTH = 32

	MAX_RESOURCE_DIRECTORY_LENGTH = 4096
	MAX_MESSAGES                  = 100000
	MAX_TABLE_ENTRY_SIZE          = 128 * 1024 * 1024
)

var (
	RESOURCE_DATA_SIZE_LIMIT int64 = 100 * 1024 * 1024 // 100Mb
)

func SetResourceDataSizeLimit(limit int64) {
	atomic.SwapInt64(&RESOURCE_DATA_SIZE_LIMIT, limit)
}

func GetResourceDataSizeLimit() int64 {
	return atomic.LoadInt64(&RESOURCE_DATA_SIZE_LIMIT)
}
