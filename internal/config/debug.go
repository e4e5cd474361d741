package config

import "os"

func IsDebug() bool {
	return os.Getenv("GRACE_DEBUG") == "1"
}
