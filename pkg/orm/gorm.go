package orm

import (
	"database/sql"
	"flag"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

type DBUtil interface {
	CreateDB() error
	DropDB() error
	GetUtilDB() *gorm.DB
	Close() error
}

type DB interface {
	GetDB() *gorm.DB
	ClearAllData() error
	Close() error
}

// DBConfig is the configuration for the database
type DBConfig struct {
	Driver          string // "postgres" (default) or "mysql"
	Username        string
	Password        string
	Host            string
	Port            string
	DBName          string
	MaxIdleConns    int
	MaxOpenConns    int
	DBCharset       string // mysql only
	SSLMode         string // postgres only
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MultiStatements bool // mysql only
}

// getDriver returns the driver, defaulting to postgres
func (c *DBConfig) getDriver() string {
	if c.Driver == "" {
		return DriverPostgres
	}
	return c.Driver
}

// getCharset returns the charset, defaulting to utf8mb4
func (c *DBConfig) getCharset() string {
	if c.DBCharset == "" {
		return "utf8mb4"
	}
	return c.DBCharset
}

// getSSLMode returns the postgres sslmode, defaulting to disable
func (c *DBConfig) getSSLMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

// getConnMaxLifetime returns the connection max lifetime, defaulting to 1 hour
func (c *DBConfig) getConnMaxLifetime() time.Duration {
	if c.ConnMaxLifetime == 0 {
		return time.Hour
	}
	return c.ConnMaxLifetime
}

// getConnMaxIdleTime returns the connection max idle time, defaulting to 10 minutes
func (c *DBConfig) getConnMaxIdleTime() time.Duration {
	if c.ConnMaxIdleTime == 0 {
		return 10 * time.Minute
	}
	return c.ConnMaxIdleTime
}

// quoteIdentifier escapes a SQL identifier to prevent SQL injection
func quoteIdentifier(driver, name string) string {
	if driver == DriverMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func MakeDBUtil(dbConfig *DBConfig) (DBUtil, error) {
	return newGormStore(dbConfig, true)
}

func MakeDB(dbConfig *DBConfig) (DB, error) {
	return newGormStore(dbConfig, false)
}

func newGormStore(dbConfig *DBConfig, forUtil bool) (*gormStore, error) {
	gs := &gormStore{dbConfig: dbConfig}

	var err error
	if forUtil {
		err = gs.initUtilDB()
	} else {
		err = gs.initGormDB()
	}

	if err != nil {
		return nil, err
	}

	return gs, nil
}

type gormStore struct {
	dbConfig *DBConfig
	db       *gorm.DB
	utilDB   *gorm.DB
	sqlDB    *sql.DB
}

// Close closes the database connection
func (gs *gormStore) Close() error {
	if gs.sqlDB != nil {
		return gs.sqlDB.Close()
	}
	return nil
}

// CreateDB creates the database if it does not exist
func (gs *gormStore) CreateDB() error {
	if gs.utilDB == nil {
		return fmt.Errorf("util db is nil, please use MakeDBUtil first")
	}

	driver := gs.dbConfig.getDriver()
	dbName := quoteIdentifier(driver, gs.dbConfig.DBName)

	if driver == DriverMySQL {
		charset := gs.dbConfig.getCharset()
		createDBSQL := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s DEFAULT CHARSET %s COLLATE %s_general_ci;",
			dbName, charset, charset)
		if err := gs.utilDB.Exec(createDBSQL).Error; err != nil {
			return fmt.Errorf("create db failed: %w", err)
		}
		return nil
	}

	// Postgres has no CREATE DATABASE IF NOT EXISTS.
	var count int64
	if err := gs.utilDB.Raw("SELECT COUNT(1) FROM pg_database WHERE datname = ?", gs.dbConfig.DBName).Scan(&count).Error; err != nil {
		return fmt.Errorf("check db existence failed: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := gs.utilDB.Exec(fmt.Sprintf("CREATE DATABASE %s;", dbName)).Error; err != nil {
		return fmt.Errorf("create db failed: %w", err)
	}
	return nil
}

// DropDB drops the database if it exists
func (gs *gormStore) DropDB() error {
	if gs.utilDB == nil {
		return fmt.Errorf("util db is nil, please use MakeDBUtil first")
	}

	dbName := quoteIdentifier(gs.dbConfig.getDriver(), gs.dbConfig.DBName)
	dropDBSQL := fmt.Sprintf("DROP DATABASE IF EXISTS %s;", dbName)

	if err := gs.utilDB.Exec(dropDBSQL).Error; err != nil {
		return fmt.Errorf("drop db failed: %w", err)
	}

	return nil
}

// GetUtilDB returns the utility database connection for database management operations
func (gs *gormStore) GetUtilDB() *gorm.DB {
	return gs.utilDB
}

// GetDB returns the main database connection
func (gs *gormStore) GetDB() *gorm.DB {
	return gs.db
}

// ClearAllData clears all data from all tables (only works in test environment with test/dev database)
func (gs *gormStore) ClearAllData() error {
	if flag.Lookup("test.v") == nil {
		return fmt.Errorf("ClearAllData can only be called in test environment")
	}

	if !strings.Contains(gs.dbConfig.DBName, "test") && !strings.Contains(gs.dbConfig.DBName, "dev") {
		return fmt.Errorf("ClearAllData can only be used with test or dev database, got: %s", gs.dbConfig.DBName)
	}

	if gs.db == nil {
		return fmt.Errorf("db is nil, please init db first")
	}

	driver := gs.dbConfig.getDriver()
	listTablesSQL := "SELECT tablename FROM pg_tables WHERE schemaname = 'public';"
	if driver == DriverMySQL {
		listTablesSQL = "SHOW TABLES;"
	}

	rs, err := gs.db.Raw(listTablesSQL).Rows()
	if err != nil {
		return fmt.Errorf("get table list failed: %w", err)
	}
	defer rs.Close()

	var tName string
	for rs.Next() {
		if err := rs.Scan(&tName); err != nil {
			return fmt.Errorf("scan table name failed: %w", err)
		}
		if tName == "" {
			continue
		}

		quotedTable := quoteIdentifier(driver, tName)
		if err := gs.db.Exec(fmt.Sprintf("DELETE FROM %s", quotedTable)).Error; err != nil {
			return fmt.Errorf("clear data from table %s failed: %w", tName, err)
		}
	}

	if err := rs.Err(); err != nil {
		return fmt.Errorf("iterate tables failed: %w", err)
	}

	return nil
}

// openConnection creates a new database connection with the given DSN
func (gs *gormStore) openConnection(dsn string, silent bool) (gormDB *gorm.DB, sqlDB *sql.DB, err error) {
	gormConfig := &gorm.Config{}
	if silent {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	var dialector gorm.Dialector
	if gs.dbConfig.getDriver() == DriverMySQL {
		dialector = mysql.Open(dsn)
	} else {
		dialector = postgres.Open(dsn)
	}

	gormDB, err = gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err = gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql db: %w", err)
	}

	sqlDB.SetMaxIdleConns(gs.dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(gs.dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(gs.dbConfig.getConnMaxLifetime())
	sqlDB.SetConnMaxIdleTime(gs.dbConfig.getConnMaxIdleTime())

	return gormDB, sqlDB, nil
}

// buildDSN constructs a driver-specific DSN string
func (gs *gormStore) buildDSN(dbName string) string {
	if gs.dbConfig.getDriver() == DriverMySQL {
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
			gs.dbConfig.Username,
			gs.dbConfig.Password,
			gs.dbConfig.Host,
			gs.dbConfig.Port,
			dbName,
			gs.dbConfig.getCharset())
		if gs.dbConfig.MultiStatements {
			dsn += "&multiStatements=true"
		}
		return dsn
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		gs.dbConfig.Host,
		gs.dbConfig.Username,
		gs.dbConfig.Password,
		dbName,
		gs.dbConfig.Port,
		gs.dbConfig.getSSLMode())
}

// utilDBName returns the maintenance database the util connection uses
func (gs *gormStore) utilDBName() string {
	if gs.dbConfig.getDriver() == DriverMySQL {
		return "information_schema"
	}
	return "postgres"
}

func (gs *gormStore) initGormDB() error {
	if gs.db != nil {
		return fmt.Errorf("gorm db already initialized")
	}

	dsn := gs.buildDSN(gs.dbConfig.DBName)
	db, sqlDB, err := gs.openConnection(dsn, true)
	if err != nil {
		return err
	}

	gs.db = db
	gs.sqlDB = sqlDB
	return nil
}

func (gs *gormStore) initUtilDB() error {
	if gs.utilDB != nil {
		return fmt.Errorf("util db already initialized")
	}

	dsn := gs.buildDSN(gs.utilDBName())
	db, sqlDB, err := gs.openConnection(dsn, false)
	if err != nil {
		return err
	}

	gs.utilDB = db
	gs.sqlDB = sqlDB
	return nil
}
