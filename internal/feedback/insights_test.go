// control-tower/internal/feedback/insights_test.go

package feedback

import (
	"testing"
	"time"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

func fb(day string, rating float64, issue, text string) domain.Feedback {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return domain.Feedback{
		FeedbackDate:  &t,
		Rating:        &rating,
		IssueCategory: issue,
		FeedbackText:  text,
	}
}

func TestWeeklyRatingTrend(t *testing.T) {
	entries := []domain.Feedback{
		// 2024-01-01 is a Monday; 01-03 is the same week, 01-08 the next.
		fb("2024-01-01", 4, "Delay", ""),
		fb("2024-01-03", 2, "Damage", ""),
		fb("2024-01-08", 5, "Delay", ""),
		{FeedbackDate: nil, Rating: f64(3)}, // skipped, no date
		{FeedbackDate: datep("2024-01-08")}, // skipped, no rating
	}

	trend := WeeklyRatingTrend(entries)
	if len(trend) != 2 {
		t.Fatalf("expected 2 weeks, got %+v", trend)
	}
	if trend[0].WeekStart != "2024-01-01" || trend[0].AvgRating != 3 || trend[0].Count != 2 {
		t.Errorf("week 1 wrong: %+v", trend[0])
	}
	if trend[1].WeekStart != "2024-01-08" || trend[1].AvgRating != 5 || trend[1].Count != 1 {
		t.Errorf("week 2 wrong: %+v", trend[1])
	}
}

func TestWeeklyRatingTrend_MidWeekBucketsToMonday(t *testing.T) {
	// 2024-01-07 is a Sunday: it belongs to the week starting 2024-01-01.
	trend := WeeklyRatingTrend([]domain.Feedback{fb("2024-01-07", 1, "", "")})
	if len(trend) != 1 || trend[0].WeekStart != "2024-01-01" {
		t.Fatalf("sunday must bucket to preceding monday, got %+v", trend)
	}
}

func TestRatingByIssue(t *testing.T) {
	entries := []domain.Feedback{
		fb("2024-01-01", 1, "Damage", ""),
		fb("2024-01-02", 3, "Damage", ""),
		fb("2024-01-03", 4, "Delay", ""),
		fb("2024-01-04", 4, "", ""), // skipped, no issue
	}

	issues := RatingByIssue(entries)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", issues)
	}
	// Sorest issue leads.
	if issues[0].IssueCategory != "Damage" || issues[0].AvgRating != 2 || issues[0].Count != 2 {
		t.Errorf("issues[0] wrong: %+v", issues[0])
	}
	if issues[1].IssueCategory != "Delay" || issues[1].AvgRating != 4 {
		t.Errorf("issues[1] wrong: %+v", issues[1])
	}
}

func TestTopThemes(t *testing.T) {
	entries := []domain.Feedback{
		{FeedbackText: "Package arrived late, very late delivery!"},
		{FeedbackText: "Late delivery again."},
		{FeedbackText: "The box was damaged"},
	}

	themes := TopThemes(entries, 3)
	if len(themes) != 3 {
		t.Fatalf("expected 3 themes, got %+v", themes)
	}
	if themes[0].Word != "late" || themes[0].Count != 3 {
		t.Errorf("top theme wrong: %+v", themes[0])
	}
	if themes[1].Word != "delivery" || themes[1].Count != 2 {
		t.Errorf("second theme wrong: %+v", themes[1])
	}
	// Ties resolve alphabetically among count-1 words; "again" sorts first.
	if themes[2].Word != "again" || themes[2].Count != 1 {
		t.Errorf("third theme wrong: %+v", themes[2])
	}
}

func TestTopThemes_PunctuationStrippedInPlace(t *testing.T) {
	// Apostrophes vanish without splitting the word: "don't" counts as "dont".
	themes := TopThemes([]domain.Feedback{
		{FeedbackText: "don't recommend"},
		{FeedbackText: "dont recommend"},
	}, 10)
	if len(themes) != 2 {
		t.Fatalf("expected 2 themes, got %+v", themes)
	}
	if themes[0].Word != "dont" || themes[0].Count != 2 {
		t.Errorf("both spellings must merge into dont, got %+v", themes)
	}
}

func TestTopThemes_ShortWordsDropped(t *testing.T) {
	themes := TopThemes([]domain.Feedback{{FeedbackText: "box was ok the and"}}, 10)
	if len(themes) != 0 {
		t.Errorf("words of three characters or fewer must be dropped, got %+v", themes)
	}
}

func TestTopThemes_ZeroLimitReturnsAll(t *testing.T) {
	themes := TopThemes([]domain.Feedback{{FeedbackText: "slow courier slow"}}, 0)
	if len(themes) != 2 {
		t.Errorf("zero limit means unlimited, got %+v", themes)
	}
}

func f64(v float64) *float64 { return &v }

func datep(day string) *time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	return &t
}
