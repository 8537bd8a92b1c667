package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/internal/infrastructure/database"
	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/migrations"
	"github.com/nerrad567/ucapi/store"
)

func dbCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the local integration driver store",
	}
	cmd.AddCommand(
		dbMigrateCmd(a),
		importDriverCmd(a),
		listDriversCmd(a),
		importIntegrationCmd(a),
		listIntegrationsCmd(a),
	)
	return cmd
}

func (a *app) openDB() (*database.DB, error) {
	db, err := database.Open(database.Config{
		Path:        a.cfg.Database.Path,
		WALMode:     a.cfg.Database.WALMode,
		BusyTimeout: a.cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, err
	}
	a.log.Debug("database connected", "path", db.Path())
	return db, nil
}

// withStore opens and migrates the database and passes a repository to fn.
func (a *app) withStore(ctx context.Context, fn func(*store.SQLiteRepository) error) error {
	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			a.log.Error("error closing database", "error", closeErr)
		}
	}()

	applied, err := db.Migrate(ctx, migrations.FS)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if len(applied) > 0 {
		a.log.Info("database migrations applied", "versions", applied)
	}

	repo := store.NewSQLiteRepository(db.DB)
	repo.SetLogger(a.log.With("component", "store"))
	return fn(repo)
}

func dbMigrateCmd(a *app) *cobra.Command {
	var down, status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations, roll back the latest or show status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // Read-only paths ignore close errors

			switch {
			case status:
				applied, pending, err := db.MigrationStatus(ctx, migrations.FS)
				if err != nil {
					return err
				}
				for _, r := range applied {
					fmt.Fprintf(a.out, "applied  %s  %s\n", r.Version, r.AppliedAt.Format("2006-01-02 15:04:05"))
				}
				for _, m := range pending {
					fmt.Fprintf(a.out, "pending  %s  %s\n", m.Version, m.Name)
				}
			case down:
				version, err := db.MigrateDown(ctx, migrations.FS)
				if err != nil {
					return err
				}
				if version == "" {
					fmt.Fprintln(a.out, "nothing to roll back")
					return nil
				}
				fmt.Fprintf(a.out, "rolled back %s\n", version)
			default:
				applied, err := db.Migrate(ctx, migrations.FS)
				if err != nil {
					return err
				}
				for _, v := range applied {
					fmt.Fprintf(a.out, "applied %s\n", v)
				}
				if len(applied) == 0 {
					fmt.Fprintln(a.out, "up to date")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	cmd.Flags().BoolVar(&status, "status", false, "list applied and pending migrations")
	cmd.MarkFlagsMutuallyExclusive("down", "status")
	return cmd
}

func importDriverCmd(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import-driver <file>",
		Short: "Register a driver from a JSON or HuJSON registration payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			var u intg.IntegrationDriverUpdate
			if err := codec.UnmarshalPolicy(data, &u, codec.Strict); err != nil {
				return err
			}
			d, err := u.NewDriver()
			if err != nil {
				return fmt.Errorf("invalid driver: %w", err)
			}

			return a.withStore(cmd.Context(), func(repo *store.SQLiteRepository) error {
				err := repo.CreateDriver(cmd.Context(), &d)
				if errors.Is(err, store.ErrDriverExists) && replace {
					err = repo.UpdateDriver(cmd.Context(), &d)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, d.DriverID)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace an existing driver with the same id")
	return cmd
}

func listDriversCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list-drivers",
		Short: "List stored drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(repo *store.SQLiteRepository) error {
				drivers, err := repo.ListDrivers(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					public := make([]intg.IntegrationDriver, 0, len(drivers))
					for _, d := range drivers {
						public = append(public, d.Public())
					}
					return a.printJSON(public)
				}

				w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DRIVER_ID\tTYPE\tVERSION\tENABLED\tSTATE\tNAME")
				for _, d := range drivers {
					fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\t%s\n",
						d.DriverID, d.DriverType, d.Version, d.Enabled, orDash(string(d.DriverState)), d.Name.Text("en"))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the drivers as a JSON array, without tokens")
	return cmd
}

func importIntegrationCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-integration <file>",
		Short: "Create an integration instance of a stored driver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			var u intg.IntegrationUpdate
			if err := codec.UnmarshalPolicy(data, &u, codec.Strict); err != nil {
				return err
			}
			in, err := u.NewIntegration()
			if err != nil {
				return fmt.Errorf("invalid integration: %w", err)
			}

			return a.withStore(cmd.Context(), func(repo *store.SQLiteRepository) error {
				if err := repo.CreateIntegration(cmd.Context(), &in); err != nil {
					return err
				}
				fmt.Fprintln(a.out, in.IntegrationID)
				return nil
			})
		},
	}
}

func listIntegrationsCmd(a *app) *cobra.Command {
	var driverID string

	cmd := &cobra.Command{
		Use:   "list-integrations",
		Short: "List stored integration instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd.Context(), func(repo *store.SQLiteRepository) error {
				list, err := repo.ListIntegrations(cmd.Context(), driverID)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "INTEGRATION_ID\tDRIVER_ID\tENABLED\tSTATE\tNAME")
				for _, in := range list {
					fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n",
						in.IntegrationID, in.DriverID, in.Enabled, orDash(string(in.DeviceState)), in.Name.Text("en"))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&driverID, "driver", "", "only integrations of this driver")
	return cmd
}

func (a *app) printJSON(v any) error {
	data, err := codec.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%s\n", data)
	return err
}
