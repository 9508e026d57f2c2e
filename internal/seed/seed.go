package seed

import (
	"context"
	"errors"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/app/repositories"
	"github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// Default administrator created when the admins table is empty
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// DefaultParameters is the rating questionnaire
var DefaultParameters = []models.Parameter{
	{Category: "Teaching", Name: "Clarity of explanation"},
	{Category: "Teaching", Name: "Knowledge of the subject"},
	{Category: "Teaching", Name: "Punctuality"},
	{Category: "Teaching", Name: "Interaction with students"},
	{Category: "Course Content", Name: "Relevance of syllabus"},
	{Category: "Course Content", Name: "Quality of course material"},
	{Category: "Course Content", Name: "Pace of coverage"},
	{Category: "Assessment", Name: "Fairness of evaluation"},
	{Category: "Assessment", Name: "Timely feedback on assignments"},
}

func theory(code, name, faculty string, year, semester int) models.Subject {
	return models.Subject{
		Code:        code,
		Name:        name,
		Type:        "Theory",
		FacultyName: faculty,
		Department:  "CSE",
		Year:        year,
		Semester:    semester,
	}
}

// DefaultSubjects is the starter catalogue for CSE 2-1, 2-2 and 3-2
var DefaultSubjects = []models.Subject{
	theory("CS401", "Data Structures", "Dr. Wilson", 2, 1),
	theory("CS402", "Computer Organisation", "Dr. Brown", 2, 1),
	theory("CS403", "Software Engineering", "Dr. Davis", 2, 1),
	theory("CS404", "Mathematical Foundations of Computer Science", "Dr. Johnson", 2, 1),

	theory("CS451", "Probability and Statistics", "Dr. Smith", 2, 2),
	theory("CS452", "DBMS", "Dr. Lee", 2, 2),
	theory("CS453", "Python Programming", "Dr. White", 2, 2),
	theory("CS454", "DMGT", "Dr. Black", 2, 2),

	theory("CS701", "Machine Learning", "Dr. Anderson", 3, 2),
	theory("CS702", "Compiler Design", "Dr. Taylor", 3, 2),
	theory("CS703", "Cryptography and Network Security", "Dr. Martinez", 3, 2),
}

// ParameterSeeder inserts parameters that do not exist yet
type ParameterSeeder interface {
	InsertMissing(ctx context.Context, params []models.Parameter) (int64, error)
}

// SubjectSeeder inserts subjects whose codes do not exist yet
type SubjectSeeder interface {
	InsertMissing(ctx context.Context, subjects []models.Subject) (int64, error)
}

// AdminSeeder creates the first administrator
type AdminSeeder interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *models.Admin) error
}

// Seeders are the stores written by Seed
type Seeders struct {
	Parameters ParameterSeeder
	Subjects   SubjectSeeder
	Admins     AdminSeeder
}

// CreateDefaultData seeds the database through the repositories
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	return Seed(ctx, Seeders{
		Parameters: repos.ParameterRepository,
		Subjects:   repos.SubjectRepository,
		Admins:     repos.AdminRepository,
	}, lgr)
}

// Seed inserts the default parameters and subjects that are missing, and the
// default admin when no admin exists. Existing rows are never changed. Every
// step runs; the failures are joined.
func Seed(ctx context.Context, s Seeders, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (parameters, subjects, admin)...")
	var finalErr error

	if n, err := s.Parameters.InsertMissing(ctx, DefaultParameters); err != nil {
		lgr.Error().Err(err).Msg("Error seeding rating parameters")
		finalErr = errors.Join(finalErr, err)
	} else if n > 0 {
		lgr.Info().Int64("inserted", n).Msg("Default rating parameters created")
	}

	if n, err := s.Subjects.InsertMissing(ctx, DefaultSubjects); err != nil {
		lgr.Error().Err(err).Msg("Error seeding subjects")
		finalErr = errors.Join(finalErr, err)
	} else if n > 0 {
		lgr.Info().Int64("inserted", n).Msg("Default subjects created")
	}

	if err := seedAdmin(ctx, s.Admins, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding default admin")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed")
	}
	return finalErr
}

func seedAdmin(ctx context.Context, admins AdminSeeder, lgr zerolog.Logger) error {
	count, err := admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}
	if err := admins.Create(ctx, &models.Admin{Username: DefaultAdminUsername, PasswordHash: hash}); err != nil {
		return err
	}
	lgr.Warn().Str("username", DefaultAdminUsername).Msg("Default admin created; change its password")
	return nil
}
