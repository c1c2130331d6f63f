package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	ProgramRepository        *ProgramRepository
	SubjectRepository        *SubjectRepository
	InstitutionRepository    *InstitutionRepository
	CategoryRepository       *CategoryRepository
	CourseRepository         *CourseRepository
	CohortRepository         *CohortRepository
	GradebookRepository      *GradebookRepository
	SubmissionRepository     *SubmissionRepository
	QuizRepository           *QuizRepository
	ForumRepository          *ForumRepository
	ExternalCreditRepository *ExternalCreditRepository
	StudentInfoRepository    *StudentInfoRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		ProgramRepository:        NewProgramRepository(db),
		SubjectRepository:        NewSubjectRepository(db),
		InstitutionRepository:    NewInstitutionRepository(db),
		CategoryRepository:       NewCategoryRepository(db),
		CourseRepository:         NewCourseRepository(db),
		CohortRepository:         NewCohortRepository(db),
		GradebookRepository:      NewGradebookRepository(db),
		SubmissionRepository:     NewSubmissionRepository(db),
		QuizRepository:           NewQuizRepository(db),
		ForumRepository:          NewForumRepository(db),
		ExternalCreditRepository: NewExternalCreditRepository(db),
		StudentInfoRepository:    NewStudentInfoRepository(db),
	}
}
