package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cashbook/internal/core"
	"cashbook/internal/ledger"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteRepository persists the ledger and implements every port in the
// ledger package.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Single writer connection: keeps sqlite lock contention away and makes
	// :memory: databases behave (each pooled connection would otherwise get
	// its own empty database).
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SavePayment implements ledger.PaymentWriter. A zero id inserts, otherwise
// the existing row is replaced.
func (r *SQLiteRepository) SavePayment(ctx context.Context, p core.Payment) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	if p.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO payments (amount_cents, date, type, charged_account_id, target_account_id, category_id, is_cleared, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Amount.Cents, p.Date.Format(dateLayout), int(p.Type),
			p.ChargedAccountID, p.TargetAccountID, p.CategoryID, p.IsCleared, p.Note)
		if err != nil {
			return 0, fmt.Errorf("insert payment: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("payment insert id: %w", err)
		}

		slog.InfoContext(ctx, "Payment saved",
			"id", id,
			"type", p.Type.String(),
			"amount_cents", p.Amount.Cents,
			"date", p.Date.Format(dateLayout))
		return id, nil
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET amount_cents = ?, date = ?, type = ?, charged_account_id = ?, target_account_id = ?, category_id = ?, is_cleared = ?, note = ?
		WHERE id = ?`,
		p.Amount.Cents, p.Date.Format(dateLayout), int(p.Type),
		p.ChargedAccountID, p.TargetAccountID, p.CategoryID, p.IsCleared, p.Note, p.ID)
	if err != nil {
		return 0, fmt.Errorf("update payment: %w", err)
	}
	return p.ID, nil
}

// DeletePayment implements ledger.PaymentWriter.
func (r *SQLiteRepository) DeletePayment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete payment rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("payment %d: %w", id, ledger.ErrPaymentNotFound)
	}

	slog.InfoContext(ctx, "Payment deleted", "id", id)
	return nil
}

// Query implements ledger.PaymentSource. Rows are materialized and the
// caller's predicate runs in Go, mirroring the source port contract.
func (r *SQLiteRepository) Query(ctx context.Context, filter ledger.PaymentFilter) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.amount_cents, p.date, p.type, p.charged_account_id,
		       p.target_account_id, p.category_id, COALESCE(c.name, ''), p.is_cleared, p.note
		FROM payments p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.date, p.id`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var out []core.Payment
	for rows.Next() {
		var (
			p        core.Payment
			dateStr  string
			typeCode int
		)
		if err := rows.Scan(&p.ID, &p.Amount.Cents, &dateStr, &typeCode,
			&p.ChargedAccountID, &p.TargetAccountID, &p.CategoryID,
			&p.CategoryName, &p.IsCleared, &p.Note); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		parsed, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parse payment date %q: %w", dateStr, err)
		}
		p.Date = core.Date{Time: parsed}
		p.Type = core.PaymentType(typeCode)

		if filter == nil || filter(p) {
			out = append(out, p)
		}
	}
	return out, rows.Err()
}

// SaveAccount implements ledger.AccountWriter.
func (r *SQLiteRepository) SaveAccount(ctx context.Context, a core.Account) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if a.EndMonthWarning == "" {
		a.EndMonthWarning = core.WarningNone
	}

	if a.ID == 0 {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO accounts (name, current_balance_cents, end_month_warning)
			VALUES (?, ?, ?)`,
			a.Name, a.CurrentBalance.Cents, a.EndMonthWarning)
		if err != nil {
			return 0, fmt.Errorf("insert account: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("account insert id: %w", err)
		}

		slog.InfoContext(ctx, "Account saved", "id", id, "name", a.Name)
		return id, nil
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET name = ?, current_balance_cents = ?, end_month_warning = ? WHERE id = ?`,
		a.Name, a.CurrentBalance.Cents, a.EndMonthWarning, a.ID)
	if err != nil {
		return 0, fmt.Errorf("update account: %w", err)
	}
	return a.ID, nil
}

// All implements ledger.AccountSource.
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, current_balance_cents, end_month_warning FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.CurrentBalance.Cents, &a.EndMonthWarning); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SaveWarning implements ledger.WarningWriter.
func (r *SQLiteRepository) SaveWarning(ctx context.Context, accountID int64, warning string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET end_month_warning = ? WHERE id = ?`, warning, accountID)
	if err != nil {
		return fmt.Errorf("save warning: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save warning rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %d: %w", accountID, ledger.ErrAccountNotFound)
	}
	return nil
}

// SaveCategory inserts the category if it does not exist yet and returns its
// id either way.
func (r *SQLiteRepository) SaveCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, c.Name)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 1 {
		if id, err := res.LastInsertId(); err == nil {
			return id, nil
		}
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM categories WHERE name = ?`, c.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("lookup category: %w", err)
	}
	return id, nil
}

// List implements ledger.CategorySource.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
