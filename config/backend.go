// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/backend.go
// Summary: File formats for the config store, selected by extension.
// Usage: .json (default), .toml, or .db/.sqlite for a SQLite database with
//   one JSON document per section.

package config

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	_ "modernc.org/sqlite"
)

type backend interface {
	read(path string) (cfg Config, exists bool, err error)
	write(path string, cfg Config) error
}

func backendFor(path string) backend {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlBackend{}
	case ".db", ".sqlite", ".sqlite3":
		return sqliteBackend{}
	}
	return jsonBackend{}
}

func readFile(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

type jsonBackend struct{}

func (jsonBackend) read(path string) (Config, bool, error) {
	data, exists, err := readFile(path)
	if err != nil || !exists {
		return nil, exists, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func (jsonBackend) write(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

type tomlBackend struct{}

func (tomlBackend) read(path string) (Config, bool, error) {
	data, exists, err := readFile(path)
	if err != nil || !exists {
		return nil, exists, err
	}
	var cfg map[string]interface{}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return Config(cfg), true, nil
}

func (tomlBackend) write(path string, cfg Config) error {
	data, err := toml.Marshal(map[string]interface{}(cfg))
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

const sqliteSchema = `CREATE TABLE IF NOT EXISTS sections (
	name TEXT PRIMARY KEY,
	body TEXT NOT NULL
)`

type sqliteBackend struct{}

func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

func (sqliteBackend) read(path string) (Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, false, nil
	}
	db, err := openDB(path)
	if err != nil {
		return nil, true, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT name, body FROM sections")
	if err != nil {
		return nil, true, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	cfg := make(Config)
	for rows.Next() {
		var name, body string
		if err := rows.Scan(&name, &body); err != nil {
			return nil, true, fmt.Errorf("scan section: %w", err)
		}
		var value interface{}
		if err := json.Unmarshal([]byte(body), &value); err != nil {
			return nil, true, fmt.Errorf("decode section %q: %w", name, err)
		}
		cfg[name] = value
	}
	return cfg, true, rows.Err()
}

func (sqliteBackend) write(path string, cfg Config) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sections"); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO sections (name, body) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for name, value := range cfg {
		body, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode section %q: %w", name, err)
		}
		if _, err := stmt.Exec(name, string(body)); err != nil {
			return fmt.Errorf("insert section %q: %w", name, err)
		}
	}
	return tx.Commit()
}
