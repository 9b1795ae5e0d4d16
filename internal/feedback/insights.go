// control-tower/internal/feedback/insights.go

// Package feedback derives customer experience insights from the feedback
// table: rating trends, per-issue ratings and frequent feedback themes.
package feedback

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/nexgenlogistics/control-tower/internal/domain"
)

// minThemeWordLen drops filler words; only words longer than this count.
const minThemeWordLen = 3

// WeeklyRatingTrend buckets rated feedback into ISO weeks (Monday start)
// and averages the rating per week, ascending by week.
func WeeklyRatingTrend(entries []domain.Feedback) []domain.RatingPoint {
	type acc struct {
		sum float64
		n   int
	}
	weeks := make(map[string]*acc)
	for _, f := range entries {
		if f.FeedbackDate == nil || f.Rating == nil {
			continue
		}
		week := weekStart(*f.FeedbackDate).Format("2006-01-02")
		a := weeks[week]
		if a == nil {
			a = &acc{}
			weeks[week] = a
		}
		a.sum += *f.Rating
		a.n++
	}

	out := make([]domain.RatingPoint, 0, len(weeks))
	for week, a := range weeks {
		out = append(out, domain.RatingPoint{
			WeekStart: week,
			AvgRating: a.sum / float64(a.n),
			Count:     a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart < out[j].WeekStart })
	return out
}

func weekStart(t time.Time) time.Time {
	day := t.Truncate(24 * time.Hour)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// RatingByIssue averages ratings per issue category, ascending by average
// rating so the sorest issues lead.
func RatingByIssue(entries []domain.Feedback) []domain.IssueRating {
	type acc struct {
		sum float64
		n   int
	}
	issues := make(map[string]*acc)
	for _, f := range entries {
		if f.IssueCategory == "" || f.Rating == nil {
			continue
		}
		a := issues[f.IssueCategory]
		if a == nil {
			a = &acc{}
			issues[f.IssueCategory] = a
		}
		a.sum += *f.Rating
		a.n++
	}

	out := make([]domain.IssueRating, 0, len(issues))
	for issue, a := range issues {
		out = append(out, domain.IssueRating{
			IssueCategory: issue,
			AvgRating:     a.sum / float64(a.n),
			Count:         a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgRating != out[j].AvgRating {
			return out[i].AvgRating < out[j].AvgRating
		}
		return out[i].IssueCategory < out[j].IssueCategory
	})
	return out
}

// TopThemes counts word frequency across feedback text, lowercased with
// punctuation stripped, keeping words longer than three characters. Returns
// at most limit words, most frequent first with alphabetical tie-break.
func TopThemes(entries []domain.Feedback, limit int) []domain.ThemeCount {
	counts := make(map[string]int)
	for _, f := range entries {
		for _, word := range tokenize(f.FeedbackText) {
			if len(word) <= minThemeWordLen {
				continue
			}
			counts[word]++
		}
	}

	out := make([]domain.ThemeCount, 0, len(counts))
	for word, n := range counts {
		out = append(out, domain.ThemeCount{Word: word, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// tokenize lowercases the text, strips every rune that is not a letter,
// digit or space, and splits on whitespace. Stripping, not replacing, keeps
// contractions as one token ("don't" -> "dont").
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)
	return strings.Fields(cleaned)
}
