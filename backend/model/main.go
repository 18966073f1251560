package model

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/najilx/file-share-webapp/backend/common"
)

var DB *gorm.DB

func InitDB() (err error) {
	var dbInstance *gorm.DB
	dsn := os.Getenv("SQL_DSN")

	if dsn != "" {
		common.SysLog("using MySQL database")
		dbInstance, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			PrepareStmt: true,
		})
	} else {
		common.SysLog("SQL_DSN not set, using SQLite as database: " + common.SQLitePath)
		dbInstance, err = gorm.Open(sqlite.Open(common.SQLitePath), &gorm.Config{
			PrepareStmt: true,
		})
	}

	if err != nil {
		return err
	}

	DB = dbInstance

	err = DB.AutoMigrate(
		&User{},
		&File{},
		&SharedFile{},
	)
	if err != nil {
		return err
	}

	common.SysLog("database initialized successfully")
	return nil
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	common.SysLog("closing database connection")
	return sqlDB.Close()
}
