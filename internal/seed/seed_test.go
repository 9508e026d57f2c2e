package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type fakeParams struct {
	got []models.Parameter
	err error
}

func (f *fakeParams) InsertMissing(_ context.Context, p []models.Parameter) (int64, error) {
	f.got = p
	return int64(len(p)), f.err
}

type fakeSubjects struct{ got []models.Subject }

func (f *fakeSubjects) InsertMissing(_ context.Context, s []models.Subject) (int64, error) {
	f.got = s
	return int64(len(s)), nil
}

type fakeAdmins struct {
	count   int64
	created []*models.Admin
}

func (f *fakeAdmins) Count(context.Context) (int64, error) { return f.count, nil }

func (f *fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	f.created = append(f.created, a)
	return nil
}

func TestMain(m *testing.M) {
	auth.BcryptCost = bcrypt.MinCost
	m.Run()
}

func TestSeedCreatesDefaults(t *testing.T) {
	p, s, a := &fakeParams{}, &fakeSubjects{}, &fakeAdmins{}
	if err := Seed(context.Background(), Seeders{p, s, a}, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if len(p.got) != len(DefaultParameters) || len(s.got) != 11 {
		t.Errorf("params = %d, subjects = %d", len(p.got), len(s.got))
	}
	if len(a.created) != 1 || a.created[0].Username != DefaultAdminUsername {
		t.Fatalf("admins = %+v", a.created)
	}
	if !auth.CheckPassword(a.created[0].PasswordHash, DefaultAdminPassword) {
		t.Error("default admin password hash does not verify")
	}
}

func TestSeedKeepsExistingAdmin(t *testing.T) {
	a := &fakeAdmins{count: 2}
	if err := Seed(context.Background(), Seeders{&fakeParams{}, &fakeSubjects{}, a}, zerolog.Nop()); err != nil {
		t.Fatal(err)
	}
	if len(a.created) != 0 {
		t.Error("admin created although one exists")
	}
}

func TestSeedContinuesAfterFailure(t *testing.T) {
	boom := errors.New("boom")
	s, a := &fakeSubjects{}, &fakeAdmins{}
	err := Seed(context.Background(), Seeders{&fakeParams{err: boom}, s, a}, zerolog.Nop())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if s.got == nil || len(a.created) != 1 {
		t.Error("later steps skipped")
	}
}

func TestDefaultSubjectsCohorts(t *testing.T) {
	byCode := map[string]models.Subject{}
	for _, s := range DefaultSubjects {
		byCode[s.Code] = s
	}
	python, ml := byCode["CS453"], byCode["CS701"]
	if c := python.Cohort(); c != (models.Cohort{Department: "CSE", Year: 2, Semester: 2}) {
		t.Errorf("CS453 cohort = %+v", c)
	}
	if c := ml.Cohort(); c != (models.Cohort{Department: "CSE", Year: 3, Semester: 2}) {
		t.Errorf("CS701 cohort = %+v", c)
	}
}
