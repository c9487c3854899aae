package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"sheetfetch/internal/configutil"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Entry is a single named setting, e.g. an api key or a rate limit.
type Entry struct {
	Name  string
	Value string
}

// Source is where settings are kept.
type Source interface {
	Entries(ctx context.Context) ([]Entry, error)
}

// ErrStoreCreated is returned by a source that had to create its store, it holds no settings yet.
var ErrStoreCreated = errors.New("Settings sheet not found. Created one for you.")

// FileSource reads the `settings` object of a json5 file (and its .local override).
type FileSource struct {
	Path string
}

type fileSettings struct {
	Settings map[string]any `json:"settings"`
}

func (f FileSource) Entries(ctx context.Context) ([]Entry, error) {
	config, err := configutil.ReadConfig[fileSettings](f.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("settings file %s not found", f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	entries := make([]Entry, 0, len(config.Settings))
	for name, value := range config.Settings {
		entries = append(entries, Entry{Name: name, Value: fmt.Sprint(value)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

const settingsSchema = `create table if not exists settings (
	name text not null primary key,
	value text not null
)`

// SQLSource keeps settings in a two column `settings` table, the table is created the first
// time it is read.
type SQLSource struct {
	DB *sql.DB
}

func (s SQLSource) tableExists(ctx context.Context) (bool, error) {
	var name string
	err := s.DB.QueryRowContext(
		ctx,
		"select name from sqlite_master where type = 'table' and name = 'settings'",
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s SQLSource) Entries(ctx context.Context) ([]Entry, error) {
	exists, err := s.tableExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if !exists {
		_, err = s.DB.ExecContext(ctx, settingsSchema)
		if err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		return nil, ErrStoreCreated
	}

	rows, err := s.DB.QueryContext(ctx, "select name, value from settings order by name")
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		err = rows.Scan(&e.Name, &e.Value)
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Put inserts or replaces a setting.
func (s SQLSource) Put(ctx context.Context, name, value string) error {
	_, err := s.DB.ExecContext(ctx, settingsSchema)
	if err != nil {
		return fmt.Errorf("put setting: %w", err)
	}
	_, err = s.DB.ExecContext(
		ctx,
		"insert into settings (name, value) values (?, ?) on conflict (name) do update set value = excluded.value",
		name, value,
	)
	if err != nil {
		return fmt.Errorf("put setting: %w", err)
	}
	return nil
}

func wrapOpenDB(err error) error {
	return fmt.Errorf("open db: %w", err)
}

// OpenSQLite opens (creating if needed) a local sqlite database.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		os.MkdirAll(filepath.Dir(path), 0777)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		return nil, wrapOpenDB(err)
	}

	return db, nil
}

// OpenLibsql connects to a remote libsql database.
func OpenLibsql(url, authToken string) (*sql.DB, error) {
	if url == "" {
		return nil, wrapOpenDB(fmt.Errorf("a url was not specified"))
	}
	dsn := url
	if authToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", url, authToken)
	}
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	return db, nil
}
