package common

const (
	CacheKeyStockPrefix = "stock:"
	CacheKeyDailyPrefix = "daily:"

	NotesStorageKey = "notes.local.records.v1"
)
