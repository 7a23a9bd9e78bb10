package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

// SchemaVersion describes the current database schema version. It must be incremented if a manual migration is needed.
var SchemaVersion uint64 = 1

// SysStat stores the current database schema version and the timestamp when it was applied.
type SysStat struct {
	MigratedAt    time.Time `gorm:"column:migrated_at"`
	SchemaVersion uint64    `gorm:"primaryKey,column:schema_version"`
}

// GormLogger is a custom logger for Gorm, making it use slog
type GormLogger struct {
	SlowThreshold           time.Duration
	SourceField             string
	IgnoreErrRecordNotFound bool
	Debug                   bool
	Silent                  bool

	prefix string
}

func NewLogger(slowThreshold time.Duration, debug bool) *GormLogger {
	return &GormLogger{
		SlowThreshold:           slowThreshold,
		Debug:                   debug,
		IgnoreErrRecordNotFound: true,
		Silent:                  false,
		SourceField:             "src",
		prefix:                  "GORM-SQL: ",
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	l.Silent = level == logger.Silent
	return l
}

func (l *GormLogger) Info(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.InfoContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Warn(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.WarnContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Error(ctx context.Context, s string, args ...any) {
	if l.Silent {
		return
	}
	slog.ErrorContext(ctx, l.prefix+s, args...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	attrs := []any{
		"rows", rows,
		"duration", elapsed,
	}

	if l.SourceField != "" {
		attrs = append(attrs, l.SourceField, utils.FileWithLineNum())
	}

	if err != nil && !(errors.Is(err, gorm.ErrRecordNotFound) && l.IgnoreErrRecordNotFound) {
		attrs = append(attrs, "error", err)
		slog.ErrorContext(ctx, l.prefix+sql, attrs...)
		return
	}

	if l.SlowThreshold != 0 && elapsed > l.SlowThreshold {
		slog.WarnContext(ctx, l.prefix+sql, attrs...)
		return
	}

	if l.Debug {
		slog.DebugContext(ctx, l.prefix+sql, attrs...)
	}
}

// NewDatabase creates a new database connection and returns a Gorm database instance.
func NewDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormDb *gorm.DB
	var err error

	switch cfg.Type {
	case config.DatabaseMySQL:
		gormDb, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
			Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w", err)
		}

		sqlDB, _ := gormDb.DB()
		sqlDB.SetConnMaxLifetime(time.Minute * 5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		err = sqlDB.Ping() // This DOES open a connection if necessary. This makes sure the database is accessible
		if err != nil {
			return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
		}
	case config.DatabaseMsSQL:
		gormDb, err = gorm.Open(sqlserver.Open(cfg.DSN), &gorm.Config{
			Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlserver database: %w", err)
		}
	case config.DatabasePostgres:
		gormDb, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
			Logger: NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open Postgres database: %w", err)
		}
	case config.DatabaseSQLite:
		if _, err = os.Stat(filepath.Dir(cfg.DSN)); os.IsNotExist(err) {
			if err = os.MkdirAll(filepath.Dir(cfg.DSN), 0700); err != nil {
				return nil, fmt.Errorf("failed to create database base directory: %w", err)
			}
		}
		gormDb, err = gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
			Logger:                                   NewLogger(cfg.SlowQueryThreshold, cfg.Debug),
			DisableForeignKeyConstraintWhenMigrating: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		sqlDB, _ := gormDb.DB()
		sqlDB.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	return gormDb, nil
}

// SqlRepo is a SQL database repository implementation.
// Currently, it supports MySQL, SQLite, Microsoft SQL and Postgresql database systems.
type SqlRepo struct {
	db *gorm.DB
}

// NewSqlRepository creates a new SqlRepo instance.
func NewSqlRepository(db *gorm.DB) (*SqlRepo, error) {
	repo := &SqlRepo{
		db: db,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

func (r *SqlRepo) migrate() error {
	slog.Debug("running migration: sys-stat", "result", r.db.AutoMigrate(&SysStat{}))
	slog.Debug("running migration: category", "result", r.db.AutoMigrate(&domain.Category{}))
	slog.Debug("running migration: expense", "result", r.db.AutoMigrate(&domain.Expense{}))
	slog.Debug("running migration: receipt", "result", r.db.AutoMigrate(&domain.Receipt{}))
	slog.Debug("running migration: audit data", "result", r.db.AutoMigrate(&domain.AuditEntry{}))

	existingSysStat := SysStat{}
	r.db.Where("schema_version = ?", SchemaVersion).First(&existingSysStat)
	if existingSysStat.SchemaVersion == 0 {
		sysStat := SysStat{
			MigratedAt:    time.Now(),
			SchemaVersion: SchemaVersion,
		}
		if err := r.db.Create(&sysStat).Error; err != nil {
			return fmt.Errorf("failed to write sysstat entry for schema version %d: %w", SchemaVersion, err)
		}
		slog.Debug("sys-stat entry written", "schema_version", SchemaVersion)
	}

	return nil
}

// region categories

// CreateCategory stores a new category record.
func (r *SqlRepo) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory returns the category with the given id.
// If no category is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetCategory(ctx context.Context, id domain.CategoryIdentifier) (*domain.Category, error) {
	var category domain.Category

	err := r.db.WithContext(ctx).First(&category, "identifier = ?", id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// GetCompanyCategories returns all categories of the given company.
// An empty result is not an error.
func (r *SqlRepo) GetCompanyCategories(ctx context.Context, companyId domain.CompanyIdentifier) (
	[]domain.Category,
	error,
) {
	var categories []domain.Category

	err := r.db.WithContext(ctx).Where("company_id = ?", companyId).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// DeleteCategory deletes the category with the given id.
func (r *SqlRepo) DeleteCategory(ctx context.Context, id domain.CategoryIdentifier) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&domain.Category{Identifier: id}).Error
}

// endregion categories

// region expenses

// CreateExpense stores a new expense record.
func (r *SqlRepo) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	now := time.Now()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense returns the expense with the given id.
// If no expense is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) GetExpense(ctx context.Context, id domain.ExpenseIdentifier) (*domain.Expense, error) {
	var expense domain.Expense

	err := r.db.WithContext(ctx).First(&expense, "identifier = ?", id).Error

	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// GetUserExpenses returns all expenses of the given user.
// An empty result is not an error.
func (r *SqlRepo) GetUserExpenses(ctx context.Context, userId domain.UserIdentifier) ([]domain.Expense, error) {
	var expenses []domain.Expense

	err := r.db.WithContext(ctx).Where("user_id = ?", userId).Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// SaveExpense updates the expense with the given id.
// If no expense is found, an error domain.ErrNotFound is returned.
func (r *SqlRepo) SaveExpense(
	ctx context.Context,
	id domain.ExpenseIdentifier,
	updateFunc func(e *domain.Expense) (*domain.Expense, error),
) (*domain.Expense, error) {
	var updated *domain.Expense

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expense domain.Expense
		err := tx.First(&expense, "identifier = ?", id).Error
		if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		changed, err := updateFunc(&expense)
		if err != nil {
			return err // return any error will roll back
		}

		changed.UpdatedAt = time.Now()
		if err := tx.Save(changed).Error; err != nil {
			return err
		}

		updated = changed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteExpense deletes the expense with the given id.
func (r *SqlRepo) DeleteExpense(ctx context.Context, id domain.ExpenseIdentifier) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&domain.Expense{Identifier: id}).Error
}

// endregion expenses

// region receipts

// CreateReceipt stores a new receipt metadata record.
func (r *SqlRepo) CreateReceipt(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	now := time.Now()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		return nil, err
	}

	return receipt, nil
}

// GetExpenseReceipts returns all receipts attached to the given expense.
// An empty result is not an error.
func (r *SqlRepo) GetExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) (
	[]domain.Receipt,
	error,
) {
	var receipts []domain.Receipt

	err := r.db.WithContext(ctx).Where("expense_id = ?", expenseId).Find(&receipts).Error
	if err != nil {
		return nil, err
	}

	return receipts, nil
}

// DeleteExpenseReceipts deletes all receipts attached to the given expense.
func (r *SqlRepo) DeleteExpenseReceipts(ctx context.Context, expenseId domain.ExpenseIdentifier) error {
	return r.db.WithContext(ctx).Unscoped().
		Where("expense_id = ?", expenseId).
		Delete(&domain.Receipt{}).Error
}

// endregion receipts

// region audit

// SaveAuditEntry persists a single audit entry.
func (r *SqlRepo) SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetAllAuditEntries retrieves all audit entries from the database.
// The entries are ordered by timestamp, with the newest entries first.
func (r *SqlRepo) GetAllAuditEntries(ctx context.Context) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry

	err := r.db.WithContext(ctx).Order("created_at desc").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// endregion audit
