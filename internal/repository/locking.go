package repository

import "gorm.io/gorm/clause"

// Row locks for scheduling. SQLite ignores them; it serializes writers anyway.
var (
	lockForUpdate           = clause.Locking{Strength: "UPDATE"}
	lockForUpdateSkipLocked = clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}
)
