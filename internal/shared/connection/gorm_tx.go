package connection

import (
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormWithTx rebinds gorm onto an already-open transaction so repository
// statements and raw database/sql writes share a single commit point.
func GormWithTx(base *gorm.DB, tx *sql.Tx) *gorm.DB {
	txDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{
		Logger:                 base.Config.Logger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		failed := base.Session(&gorm.Session{NewDB: true})
		_ = failed.AddError(err)
		return failed
	}
	return txDB
}
