package store

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/nerrad567/ucapi/codec"
	"github.com/nerrad567/ucapi/internal/infrastructure/database"
	"github.com/nerrad567/ucapi/intg"
	"github.com/nerrad567/ucapi/migrations"
	"github.com/nerrad567/ucapi/model"
	"github.com/nerrad567/ucapi/validate"
	"github.com/nerrad567/ucapi/ws"
)

func setupTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{Path: database.MemoryPath, BusyTimeout: 5})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup

	if _, err := db.Migrate(context.Background(), migrations.FS); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewSQLiteRepository(db.DB)
}

func ptr[T any](v T) *T { return &v }

func testDriver(id string) *intg.IntegrationDriver {
	return &intg.IntegrationDriver{
		DriverID:        id,
		Name:            model.LanguageText{"en": "Denon AVR", "de": "Denon Receiver"},
		DriverType:      intg.DriverExternal,
		DriverURL:       "ws://192.168.1.40:9090",
		Token:           "s3cret",
		AuthMethod:      ws.AuthHeader,
		PwdProtected:    ptr(true),
		Version:         "0.4.1",
		MinCoreAPI:      "0.20.0",
		Icon:            "uc:integration",
		Enabled:         true,
		Description:     model.NewLanguageText("Control Denon receivers"),
		Developer:       &intg.DriverDeveloper{Name: "Unfolded Circle", Email: "hello@unfoldedcircle.com"},
		HomePage:        "https://github.com/unfoldedcircle",
		DeviceDiscovery: true,
		InstanceCount:   ptr(uint16(2)),
		SetupDataSchema: json.RawMessage(`{"title":{"en":"Setup"},"settings":[]}`),
		ReleaseDate:     &intg.Date{Year: 2024, Month: time.March, Day: 9},
		DriverState:     intg.DriverStateActive,
	}
}

func testIntegration(id, driverID string) *intg.Integration {
	return &intg.Integration{
		IntegrationID: id,
		DriverID:      driverID,
		Name:          model.NewLanguageText("Living room"),
		Icon:          "uc:receiver",
		Enabled:       true,
		SetupData:     map[string]any{"address": "192.168.1.40", "zones": float64(2), "zone2": false},
		DeviceState:   intg.DeviceConnected,
	}
}

func TestDriverCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	d := testDriver("denon")
	if err := repo.CreateDriver(ctx, d); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}
	if err := repo.CreateDriver(ctx, d); !errors.Is(err, ErrDriverExists) {
		t.Errorf("CreateDriver(duplicate) error = %v, want ErrDriverExists", err)
	}

	got, err := repo.GetDriver(ctx, "denon")
	if err != nil {
		t.Fatalf("GetDriver() error = %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("GetDriver() = %+v, want %+v", got, d)
	}

	minimal := &intg.IntegrationDriver{
		DriverID:   "bare",
		Name:       model.NewLanguageText("Bare"),
		DriverType: intg.DriverLocal,
		DriverURL:  "ws://localhost:9001",
		Version:    "1.0",
	}
	if err := repo.CreateDriver(ctx, minimal); err != nil {
		t.Fatalf("CreateDriver(minimal) error = %v", err)
	}
	got, err = repo.GetDriver(ctx, "bare")
	if err != nil {
		t.Fatalf("GetDriver(bare) error = %v", err)
	}
	if !reflect.DeepEqual(got, minimal) {
		t.Errorf("GetDriver(bare) = %+v, want %+v", got, minimal)
	}

	list, err := repo.ListDrivers(ctx)
	if err != nil {
		t.Fatalf("ListDrivers() error = %v", err)
	}
	if len(list) != 2 || list[0].DriverID != "bare" || list[1].DriverID != "denon" {
		t.Errorf("ListDrivers() = %v", list)
	}

	d.Version = "0.5.0"
	d.Developer = nil
	if err := repo.UpdateDriver(ctx, d); err != nil {
		t.Fatalf("UpdateDriver() error = %v", err)
	}
	got, _ = repo.GetDriver(ctx, "denon")
	if got.Version != "0.5.0" || got.Developer != nil {
		t.Errorf("UpdateDriver() stored %+v", got)
	}

	if err := repo.SetDriverState(ctx, "denon", intg.DriverStateError); err != nil {
		t.Fatalf("SetDriverState() error = %v", err)
	}
	got, _ = repo.GetDriver(ctx, "denon")
	if got.DriverState != intg.DriverStateError {
		t.Errorf("DriverState = %s", got.DriverState)
	}

	if err := repo.DeleteDriver(ctx, "denon"); err != nil {
		t.Fatalf("DeleteDriver() error = %v", err)
	}
	if _, err := repo.GetDriver(ctx, "denon"); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("GetDriver(deleted) error = %v, want ErrDriverNotFound", err)
	}
}

func TestDriverNotFound(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name string
		op   func() error
	}{
		{"get", func() error { _, err := repo.GetDriver(ctx, "nope"); return err }},
		{"update", func() error { return repo.UpdateDriver(ctx, testDriver("nope")) }},
		{"patch", func() error {
			_, err := repo.PatchDriver(ctx, "nope", intg.IntegrationDriverUpdate{Enabled: ptr(false)})
			return err
		}},
		{"state", func() error { return repo.SetDriverState(ctx, "nope", intg.DriverStateIdle) }},
		{"delete", func() error { return repo.DeleteDriver(ctx, "nope") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.op(); !errors.Is(err, ErrDriverNotFound) {
				t.Errorf("error = %v, want ErrDriverNotFound", err)
			}
		})
	}
}

func TestCreateDriverInvalid(t *testing.T) {
	repo := setupTestRepo(t)

	noURL := testDriver("denon")
	noURL.DriverURL = ""
	for name, d := range map[string]*intg.IntegrationDriver{
		"bad id":    testDriver("bad id"),
		"empty id":  testDriver(""),
		"empty url": noURL,
	} {
		if err := repo.CreateDriver(context.Background(), d); !errors.Is(err, validate.ErrInvalid) {
			t.Errorf("CreateDriver(%s) error = %v, want validate.ErrInvalid", name, err)
		}
	}
	if _, err := repo.GetDriver(context.Background(), ""); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("GetDriver(\"\") error = %v, want ErrDriverNotFound", err)
	}

	if err := repo.CreateDriver(context.Background(), testDriver("denon")); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}
	if err := repo.CreateIntegration(context.Background(), testIntegration("", "denon")); !errors.Is(err, validate.ErrInvalid) {
		t.Errorf("CreateIntegration(empty id) error = %v, want validate.ErrInvalid", err)
	}

	if err := repo.SetDriverState(context.Background(), "x", intg.DriverState("ASLEEP")); err == nil {
		t.Error("SetDriverState(ASLEEP) error = nil")
	}
}

func TestPatchDriver(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	if err := repo.CreateDriver(ctx, testDriver("denon")); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}

	var u intg.IntegrationDriverUpdate
	if err := codec.Unmarshal([]byte(`{"enabled":false,"icon":"uc:tv"}`), &u); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	got, err := repo.PatchDriver(ctx, "denon", u)
	if err != nil {
		t.Fatalf("PatchDriver() error = %v", err)
	}
	if got.Enabled || got.Icon != "uc:tv" || got.Version != "0.4.1" {
		t.Errorf("PatchDriver() = %+v", got)
	}
	stored, _ := repo.GetDriver(ctx, "denon")
	if !reflect.DeepEqual(stored, got) {
		t.Errorf("stored = %+v, want %+v", stored, got)
	}

	_, err = repo.PatchDriver(ctx, "denon", intg.IntegrationDriverUpdate{DriverID: ptr("other")})
	if !errors.Is(err, intg.ErrImmutableField) {
		t.Errorf("PatchDriver(driver_id) error = %v, want ErrImmutableField", err)
	}
}

func TestIntegrationCRUD(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateDriver(ctx, testDriver("denon")); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}

	in := testIntegration("denon-main", "denon")
	if err := repo.CreateIntegration(ctx, in); err != nil {
		t.Fatalf("CreateIntegration() error = %v", err)
	}
	if err := repo.CreateIntegration(ctx, in); !errors.Is(err, ErrIntegrationExists) {
		t.Errorf("CreateIntegration(duplicate) error = %v, want ErrIntegrationExists", err)
	}
	if err := repo.CreateIntegration(ctx, testIntegration("orphan", "missing")); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("CreateIntegration(unknown driver) error = %v, want ErrDriverNotFound", err)
	}

	got, err := repo.GetIntegration(ctx, "denon-main")
	if err != nil {
		t.Fatalf("GetIntegration() error = %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("GetIntegration() = %+v, want %+v", got, in)
	}

	second := testIntegration("denon-zone2", "denon")
	second.SetupData = map[string]any{}
	if err := repo.CreateIntegration(ctx, second); err != nil {
		t.Fatalf("CreateIntegration(second) error = %v", err)
	}

	list, err := repo.ListIntegrations(ctx, "denon")
	if err != nil {
		t.Fatalf("ListIntegrations() error = %v", err)
	}
	if len(list) != 2 || list[1].SetupData == nil {
		t.Errorf("ListIntegrations() = %+v", list)
	}
	if list, _ := repo.ListIntegrations(ctx, "other"); len(list) != 0 {
		t.Errorf("ListIntegrations(other) = %+v", list)
	}

	in.Enabled = false
	if err := repo.UpdateIntegration(ctx, in); err != nil {
		t.Fatalf("UpdateIntegration() error = %v", err)
	}
	moved := *in
	moved.DriverID = "other"
	if err := repo.UpdateIntegration(ctx, &moved); !errors.Is(err, ErrIntegrationNotFound) {
		t.Errorf("UpdateIntegration(driver changed) error = %v, want ErrIntegrationNotFound", err)
	}

	if err := repo.SetDeviceState(ctx, "denon-main", intg.DeviceDisconnected); err != nil {
		t.Fatalf("SetDeviceState() error = %v", err)
	}
	got, _ = repo.GetIntegration(ctx, "denon-main")
	if got.Enabled || got.DeviceState != intg.DeviceDisconnected {
		t.Errorf("GetIntegration() = %+v", got)
	}

	if err := repo.DeleteIntegration(ctx, "denon-zone2"); err != nil {
		t.Fatalf("DeleteIntegration() error = %v", err)
	}
	if err := repo.DeleteIntegration(ctx, "denon-zone2"); !errors.Is(err, ErrIntegrationNotFound) {
		t.Errorf("DeleteIntegration(again) error = %v, want ErrIntegrationNotFound", err)
	}
}

func TestDeleteDriverCascades(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateDriver(ctx, testDriver("denon")); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}
	if err := repo.CreateIntegration(ctx, testIntegration("denon-main", "denon")); err != nil {
		t.Fatalf("CreateIntegration() error = %v", err)
	}
	if err := repo.DeleteDriver(ctx, "denon"); err != nil {
		t.Fatalf("DeleteDriver() error = %v", err)
	}
	if _, err := repo.GetIntegration(ctx, "denon-main"); !errors.Is(err, ErrIntegrationNotFound) {
		t.Errorf("GetIntegration() after driver delete error = %v, want ErrIntegrationNotFound", err)
	}
}

func TestPatchIntegration(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := repo.CreateDriver(ctx, testDriver("denon")); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}
	if err := repo.CreateIntegration(ctx, testIntegration("denon-main", "denon")); err != nil {
		t.Fatalf("CreateIntegration() error = %v", err)
	}

	got, err := repo.PatchIntegration(ctx, "denon-main", intg.IntegrationUpdate{
		Name:      model.NewLanguageText("Den"),
		SetupData: map[string]any{"address": "10.0.0.9"},
	})
	if err != nil {
		t.Fatalf("PatchIntegration() error = %v", err)
	}
	if got.Name.Text("en") != "Den" || got.SetupData["address"] != "10.0.0.9" || !got.Enabled {
		t.Errorf("PatchIntegration() = %+v", got)
	}

	_, err = repo.PatchIntegration(ctx, "denon-main", intg.IntegrationUpdate{DriverID: ptr("other")})
	if !errors.Is(err, intg.ErrImmutableField) {
		t.Errorf("PatchIntegration(driver_id) error = %v, want ErrImmutableField", err)
	}
	_, err = repo.PatchIntegration(ctx, "nope", intg.IntegrationUpdate{Enabled: ptr(true)})
	if !errors.Is(err, ErrIntegrationNotFound) {
		t.Errorf("PatchIntegration(unknown) error = %v, want ErrIntegrationNotFound", err)
	}
}

type recordingLogger struct {
	noopLogger
	debug []string
}

func (l *recordingLogger) Debug(msg string, _ ...any) { l.debug = append(l.debug, msg) }

func TestSetLogger(t *testing.T) {
	repo := setupTestRepo(t)
	log := &recordingLogger{}
	repo.SetLogger(log)

	if err := repo.CreateDriver(context.Background(), testDriver("denon")); err != nil {
		t.Fatalf("CreateDriver() error = %v", err)
	}
	if len(log.debug) != 1 || log.debug[0] != "driver created" {
		t.Errorf("logged %v", log.debug)
	}

	repo.SetLogger(nil)
	if err := repo.DeleteDriver(context.Background(), "denon"); err != nil {
		t.Fatalf("DeleteDriver() error = %v", err)
	}
}
