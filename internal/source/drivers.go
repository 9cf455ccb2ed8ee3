package source

import (
	// Registered for SOURCE_KIND=mysql.
	_ "github.com/go-sql-driver/mysql"
	// Registered for SOURCE_KIND=sqlite.
	_ "github.com/mattn/go-sqlite3"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)
