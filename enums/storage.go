package enums

const (
	StorageDriverMemory = "memory"
	StorageDriverFile   = "file"
	StorageDriverRedis  = "redis"
)
