package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/config"
)

func TestPreviewWords(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"empty", "", ""},
		{"short message untouched", "помогите с заданием", "помогите с заданием"},
		{
			"exactly ten words",
			"один два три четыре пять шесть семь восемь девять десять",
			"один два три четыре пять шесть семь восемь девять десять",
		},
		{
			"eleven words truncated",
			"один два три четыре пять шесть семь восемь девять десять одиннадцать",
			"один два три четыре пять шесть семь восемь девять десять...",
		},
		{
			"whitespace collapsed",
			"  a\n\nb\tc  ",
			"a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviewWords(tt.message, 10); got != tt.want {
				t.Errorf("PreviewWords() = %q, want %q", got, tt.want)
			}
		})
	}
}

type fakeForums struct {
	posts []*models.UnansweredForumPost
}

func (f *fakeForums) UnansweredPosts(_ context.Context, _ []int64, _ []string) ([]*models.UnansweredForumPost, error) {
	return f.posts, nil
}

func TestUnansweredForumPostsPagination(t *testing.T) {
	posts := make([]*models.UnansweredForumPost, 63)
	for i := range posts {
		posts[i] = &models.UnansweredForumPost{PostID: int64(i + 1), Preview: fmt.Sprintf("post %d", i+1)}
	}

	cfg := config.DashboardConfig{CollectPageSize: 25, TeacherRoles: []string{"teacher"}}
	svc := NewOutstandingService(nil, nil, &fakeForums{posts: posts}, cfg, zerolog.Nop())

	tests := []struct {
		page        int
		wantLen     int
		wantFirstID int64
	}{
		{page: 0, wantLen: 25, wantFirstID: 1},
		{page: 1, wantLen: 25, wantFirstID: 26},
		{page: 2, wantLen: 13, wantFirstID: 51},
		{page: 3, wantLen: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			got, err := svc.UnansweredForumPostsPage(context.Background(), []int64{1}, tt.page)
			if err != nil {
				t.Fatalf("UnansweredForumPostsPage() error = %v", err)
			}

			items := got.Items.([]*models.UnansweredForumPost)
			if len(items) != tt.wantLen {
				t.Fatalf("len(items) = %d, want %d", len(items), tt.wantLen)
			}
			if tt.wantLen > 0 && items[0].PostID != tt.wantFirstID {
				t.Errorf("first post id = %d, want %d", items[0].PostID, tt.wantFirstID)
			}
			if got.TotalPages != 3 {
				t.Errorf("TotalPages = %d, want 3", got.TotalPages)
			}
			if got.TotalItems != 63 {
				t.Errorf("TotalItems = %d, want 63", got.TotalItems)
			}
		})
	}
}
