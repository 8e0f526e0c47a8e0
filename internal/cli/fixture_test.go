package cli

import "github.com/heartmarshall/ironlog/internal/domain"

func draftRecordFixture() domain.DraftRecord {
	return domain.DraftRecord{
		Exercises: []domain.DraftExercise{{Name: "Deadlift", Sets: []domain.DraftSet{{Weight: "180", Reps: "3"}}}},
		Notes:     "grip",
	}
}
