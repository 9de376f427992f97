package common

import (
	"os"
	"sync"

	"github.com/bwmarrin/snowflake"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}

// FileExists reports whether path exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
