package commands

import (
	"database/sql"
	"fmt"

	"sheetfetch/internal/settings"
	"sheetfetch/internal/table"

	"github.com/spf13/cobra"
)

func init() {
	settingCmd.AddCommand(settingGetCmd, settingSetCmd, settingListCmd)
	rootCmd.AddCommand(settingCmd)
}

// openSource picks where settings live: sqlite, then libsql, then a json5 file which defaults to
// the config file itself.
func openSource(inv *invocation) (settings.Source, func(), error) {
	store := inv.config.Store
	var db *sql.DB
	var err error
	switch {
	case store.Sqlite != "":
		db, err = settings.OpenSQLite(store.Sqlite)
	case store.LibsqlUrl != "":
		db, err = settings.OpenLibsql(store.LibsqlUrl, store.LibsqlAuthToken)
	default:
		path := store.File
		if path == "" {
			path = configPath
		}
		return settings.FileSource{Path: path}, func() {}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return settings.SQLSource{DB: db}, func() { db.Close() }, nil
}

func withSettings(inv *invocation, fn func(s *settings.Settings) (table.Table, error)) table.Table {
	return inv.guard(func() (table.Table, error) {
		source, closeSource, err := openSource(inv)
		if err != nil {
			return nil, err
		}
		defer closeSource()
		return fn(settings.New(source, inv.errs, inv.tel))
	})
}

var settingCmd = &cobra.Command{
	Use:   "setting",
	Short: "Reads and writes named settings such as api keys.",
}

var settingGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Shows the value of a setting, names are case insensitive.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		outputRows(cmd, withSettings(inv, func(s *settings.Settings) (table.Table, error) {
			value, ok := s.Get(cmd.Context(), args[0])
			if !ok {
				msg, _ := inv.errs.Get()
				return table.Message(msg), nil
			}
			return table.Table{table.Row{table.Parse(value)}}, nil
		}))
	},
}

var settingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the names of every setting.",
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		outputRows(cmd, withSettings(inv, func(s *settings.Settings) (table.Table, error) {
			names := s.Names(cmd.Context())
			if msg, occurred := inv.errs.Get(); occurred {
				return table.Message(msg), nil
			}
			return table.AsColumn(table.Strings(names...)), nil
		}))
	},
}

var settingSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Stores a setting, only databases can be written to.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		inv := invocationFrom(cmd.Context())
		outputRows(cmd, inv.guard(func() (table.Table, error) {
			source, closeSource, err := openSource(inv)
			if err != nil {
				return nil, err
			}
			defer closeSource()
			sqlSource, ok := source.(settings.SQLSource)
			if !ok {
				return nil, fmt.Errorf("settings are read from a file, edit it to change %q", args[0])
			}
			err = sqlSource.Put(cmd.Context(), args[0], args[1])
			if err != nil {
				return nil, err
			}
			return table.Message(fmt.Sprintf("Saved the setting %q", args[0])), nil
		}))
	},
}
