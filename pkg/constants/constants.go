package constants

const (
	REDIS_TIMEOUT = 1 // redis timeout (分钟)
)
