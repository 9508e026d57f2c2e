package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/TRK06/feedback-system/internal/db"
)

// psql builds Postgres-flavoured statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository    *StudentRepository
	SubjectRepository    *SubjectRepository
	ParameterRepository  *ParameterRepository
	FeedbackRepository   *FeedbackRepository
	SuggestionRepository *SuggestionRepository
	AdminRepository      *AdminRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool db.Pool) *Repositories {
	return &Repositories{
		StudentRepository:    NewStudentRepository(pool),
		SubjectRepository:    NewSubjectRepository(pool),
		ParameterRepository:  NewParameterRepository(pool),
		FeedbackRepository:   NewFeedbackRepository(pool),
		SuggestionRepository: NewSuggestionRepository(pool),
		AdminRepository:      NewAdminRepository(pool),
	}
}
