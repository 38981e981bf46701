package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/card-recon/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

func openSQLite(path string, readOnly bool) (*sql.DB, error) {
	dsn := "file:" + path
	if readOnly {
		dsn += "?mode=ro"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func readSQLite(path string) ([]models.CategoryRule, error) {
	db, err := openSQLite(path, true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT keyword_pattern,
		COALESCE(expense_type, ''), COALESCE(merchant_category, ''), COALESCE(store_name, '')
		FROM category_rules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query category_rules: %w", err)
	}
	defer rows.Close()

	var rules []models.CategoryRule
	for rows.Next() {
		var r models.CategoryRule
		if err := rows.Scan(&r.KeywordPattern, &r.ExpenseType, &r.MerchantCategory, &r.StoreName); err != nil {
			return nil, fmt.Errorf("scan category rule: %w", err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

func writeSQLite(path string, rules []models.CategoryRule) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	db, err := openSQLite(path, false)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM category_rules`); err != nil {
		_ = tx.Rollback()
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO category_rules
		(keyword_pattern, expense_type, merchant_category, store_name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rules {
		if _, err := stmt.Exec(r.KeywordPattern, r.ExpenseType, r.MerchantCategory, r.StoreName); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert rule %q: %w", r.KeywordPattern, err)
		}
	}
	return tx.Commit()
}
