package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/config"
)

func pct(v float64) *float64 { return &v }

func testMarkers() config.MarkerConfig {
	return config.MarkerConfig{
		ReadingReport: []string{"отчет", "чтени"},
		WrittenWork:   []string{"письменн"},
		Exam:          []string{"экзамен"},
	}
}

func TestClassifyCompletion(t *testing.T) {
	tests := []struct {
		name      string
		grade     *float64
		gradable  int
		satisfied int
		want      models.CompletionStatus
	}{
		{"no gradable items, no grade", nil, 0, 0, models.NotCompleted},
		{"no gradable items, high grade", pct(95), 0, 0, models.NotCompleted},
		{"below threshold but fully graded", pct(65), 2, 2, models.FullyCompleted},
		{"below threshold, partially graded", pct(65), 2, 1, models.NotCompleted},
		{"no grade, partially graded", nil, 2, 1, models.NotCompleted},
		{"no grade, fully graded", nil, 2, 2, models.FullyCompleted},
		{"above threshold, fully graded", pct(95), 2, 2, models.FullyCompleted},
		{"above threshold, partially graded", pct(85), 2, 1, models.PartiallyCompleted},
		{"exactly at threshold, partially graded", pct(70), 3, 1, models.PartiallyCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyCompletion(tt.grade, tt.gradable, tt.satisfied, 70)
			if got != tt.want {
				t.Errorf("ClassifyCompletion() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyGradeTier(t *testing.T) {
	tests := []struct {
		name  string
		grade *float64
		want  models.GradeTier
	}{
		{"nil grade", nil, models.TierNoGrade},
		{"zero", pct(0), models.TierFailed},
		{"just below satisfactory", pct(69.9), models.TierFailed},
		{"satisfactory lower bound", pct(70), models.TierSatisfactory},
		{"satisfactory upper bound", pct(79.9), models.TierSatisfactory},
		{"good lower bound", pct(80), models.TierGood},
		{"excellent lower bound", pct(90), models.TierExcellent},
		{"full marks", pct(100), models.TierExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyGradeTier(tt.grade); got != tt.want {
				t.Errorf("ClassifyGradeTier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifyItem(t *testing.T) {
	markers := testMarkers()

	tests := []struct {
		name string
		item models.GradeItem
		want models.ItemTag
	}{
		{
			"explicit tag wins over markers",
			models.GradeItem{ItemType: models.ItemAssign, Name: "Экзаменационная работа", Tag: models.TagReadingReport},
			models.TagReadingReport,
		},
		{
			"reading report needs both substrings",
			models.GradeItem{ItemType: models.ItemAssign, Name: "Отчет по чтению, глава 3"},
			models.TagReadingReport,
		},
		{
			"single reading substring is not enough",
			models.GradeItem{ItemType: models.ItemAssign, Name: "Отчет по практике"},
			models.TagNone,
		},
		{
			"written work marker",
			models.GradeItem{ItemType: models.ItemAssign, Name: "Письменная работа №2"},
			models.TagWrittenWork,
		},
		{
			"case insensitive match",
			models.GradeItem{ItemType: models.ItemAssign, Name: "ПИСЬМЕННАЯ РАБОТА"},
			models.TagWrittenWork,
		},
		{
			"exam marker only applies to quizzes",
			models.GradeItem{ItemType: models.ItemAssign, Name: "Экзамен по курсу"},
			models.TagNone,
		},
		{
			"quiz exam marker",
			models.GradeItem{ItemType: models.ItemQuiz, Name: "Итоговый экзамен"},
			models.TagExam,
		},
		{
			"unmarked quiz",
			models.GradeItem{ItemType: models.ItemQuiz, Name: "Тест недели 4"},
			models.TagNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyItem(&tt.item, markers); got != tt.want {
				t.Errorf("ClassifyItem() = %v, want %v", got, tt.want)
			}
		})
	}
}

type fakeGradebook struct {
	finalGrade *float64
	items      []*models.GradeItem
	itemGrades map[int64]*float64
}

func (f *fakeGradebook) CourseFinalGrade(_ context.Context, _, _ int64) (*float64, error) {
	return f.finalGrade, nil
}

func (f *fakeGradebook) CourseGradeItems(_ context.Context, _ int64) ([]*models.GradeItem, error) {
	return f.items, nil
}

func (f *fakeGradebook) ItemGradePercent(_ context.Context, itemID, _ int64) (*float64, error) {
	return f.itemGrades[itemID], nil
}

type fakeSubmissions struct {
	byAssignment map[int64]*models.Submission
}

func (f *fakeSubmissions) GetSubmission(_ context.Context, assignmentID, _ int64) (*models.Submission, error) {
	return f.byAssignment[assignmentID], nil
}

func newTestProgressService(gb *fakeGradebook, subs *fakeSubmissions) *ProgressService {
	cfg := config.DashboardConfig{
		PassThreshold: 70,
		Markers:       testMarkers(),
	}
	return NewProgressService(nil, nil, nil, gb, subs, cfg, zerolog.Nop())
}

func TestCourseRowWrittenWorkSatisfiedBySubmission(t *testing.T) {
	text := "мой ответ"
	gb := &fakeGradebook{
		finalGrade: pct(85),
		items: []*models.GradeItem{
			{ID: 1, ItemType: models.ItemAssign, ItemRefID: 11, Name: "Письменная работа"},
			{ID: 2, ItemType: models.ItemQuiz, ItemRefID: 21, Name: "Экзамен"},
		},
		itemGrades: map[int64]*float64{2: pct(90)},
	}
	subs := &fakeSubmissions{byAssignment: map[int64]*models.Submission{
		11: {ID: 5, AssignmentID: 11, OnlineText: &text},
	}}

	svc := newTestProgressService(gb, subs)
	row, err := svc.CourseRow(context.Background(), &models.Course{ID: 7, FullName: "Course"}, 42)
	if err != nil {
		t.Fatalf("CourseRow() error = %v", err)
	}

	if row.Completion != models.FullyCompleted {
		t.Errorf("Completion = %v, want %v", row.Completion, models.FullyCompleted)
	}
	if row.Tier != models.TierGood {
		t.Errorf("Tier = %v, want %v", row.Tier, models.TierGood)
	}
}

func TestCourseRowUngradedExamHoldsBackCompletion(t *testing.T) {
	gb := &fakeGradebook{
		finalGrade: pct(85),
		items: []*models.GradeItem{
			{ID: 1, ItemType: models.ItemAssign, ItemRefID: 11, Name: "Отчет по чтению"},
			{ID: 2, ItemType: models.ItemQuiz, ItemRefID: 21, Name: "Экзамен"},
		},
		itemGrades: map[int64]*float64{1: pct(75)},
	}
	subs := &fakeSubmissions{byAssignment: map[int64]*models.Submission{}}

	svc := newTestProgressService(gb, subs)
	row, err := svc.CourseRow(context.Background(), &models.Course{ID: 7, FullName: "Course"}, 42)
	if err != nil {
		t.Fatalf("CourseRow() error = %v", err)
	}

	if row.Completion != models.PartiallyCompleted {
		t.Errorf("Completion = %v, want %v", row.Completion, models.PartiallyCompleted)
	}
}

func TestCourseRowNoGradableItems(t *testing.T) {
	gb := &fakeGradebook{
		finalGrade: pct(95),
		items: []*models.GradeItem{
			{ID: 1, ItemType: models.ItemAssign, ItemRefID: 11, Name: "Обычное задание"},
		},
	}
	subs := &fakeSubmissions{byAssignment: map[int64]*models.Submission{}}

	svc := newTestProgressService(gb, subs)
	row, err := svc.CourseRow(context.Background(), &models.Course{ID: 7, FullName: "Course"}, 42)
	if err != nil {
		t.Fatalf("CourseRow() error = %v", err)
	}

	if row.Completion != models.NotCompleted {
		t.Errorf("Completion = %v, want %v", row.Completion, models.NotCompleted)
	}
	if row.Tier != models.TierExcellent {
		t.Errorf("Tier = %v, want %v", row.Tier, models.TierExcellent)
	}
}
