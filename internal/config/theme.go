package config

const (
	LightTheme string = "light"
	DarkTheme  string = "dark"

	DefaultTheme string = DarkTheme
)

const (
	DraftStoreMemory = "memory"
	DraftStoreSQLite = "sqlite"

	CompressionZstd = "zstd"
	CompressionGzip = "gzip"
	CompressionNone = "none"
)
