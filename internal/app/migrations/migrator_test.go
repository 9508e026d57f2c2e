package migrations

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/pashagolub/pgxmock/v4"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"m/002_more.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"m/001_init.sql": {Data: []byte("CREATE TABLE a (id INT);")},
		"m/README.md":    {Data: []byte("ignored")},
	}
}

func TestUpAppliesOnlyPendingInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("002").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	m := NewMigratorFS(mock, testFS(), "m")
	if err := m.Up(context.Background()); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestEmbeddedSchemaPresent(t *testing.T) {
	m := NewMigratorFS(nil, Files, "sql")
	files, err := m.files()
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Fatalf("files = %v", files)
	}
}

func TestVersionOf(t *testing.T) {
	if got := versionOf("001_init.sql"); got != "001" {
		t.Errorf("versionOf = %q", got)
	}
}
