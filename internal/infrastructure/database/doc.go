// Package database opens the SQLite database behind the integration store
// and applies its schema migrations.
//
// Migrations are read from any fs.FS, normally migrations.FS. Each one runs
// in its own transaction and is recorded in schema_migrations, so Migrate can
// be called on every start.
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path, WALMode: true, BusyTimeout: 5})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if _, err := db.Migrate(ctx, migrations.FS); err != nil {
//	    return err
//	}
//
// All queries use parameterised statements. The database file is created
// with mode 0600.
package database
