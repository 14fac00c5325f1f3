package state

import (
	"time"

	"boxy/css"
)

// newLocalEnv creates a new LocalEnv instance with default values.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:        time.Now(),
		DefaultStyle: css.DefaultStylesheet,
	}
}
