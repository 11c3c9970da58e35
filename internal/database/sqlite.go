package database

import (
    "fmt"

    "github.com/google/uuid"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
)

// sqliteOpen names each in-memory DB uniquely so pooled connections share
// one database while separate opens stay isolated.
func sqliteOpen() gorm.Dialector {
    return sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}
