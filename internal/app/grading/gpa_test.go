package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/sims/internal/app/models"
)

func enrolled(grade *string, credits *int) *models.Enrollment {
	return &models.Enrollment{Grade: grade, Course: &models.Course{Credits: credits}}
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func TestPoints(t *testing.T) {
	tests := []struct {
		grade  string
		points float64
		ok     bool
	}{
		{"A+", 4.0, true},
		{"A", 4.0, true},
		{"a-", 3.7, true},
		{" b+ ", 3.3, true},
		{"B", 3.0, true},
		{"B-", 2.7, true},
		{"c+", 2.3, true},
		{"C", 2.0, true},
		{"C-", 1.7, true},
		{"D+", 1.3, true},
		{"d", 1.0, true},
		{"F", 0.0, true},
		{"E", 0, false},
		{"Pass", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			points, ok := Points(tt.grade)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.points, points, 1e-9)
		})
	}
}

func TestCalculateGPA_WeightsByCredits(t *testing.T) {
	gpa, ok := CalculateGPA([]*models.Enrollment{
		enrolled(str("A"), num(3)),
		enrolled(str("C+"), num(4)),
		enrolled(nil, num(5)),
	})

	assert.True(t, ok)
	assert.InDelta(t, 21.2/7, gpa, 1e-9)
	assert.InDelta(t, 3.0286, gpa, 1e-4)
	assert.Equal(t, 3.03, Round2(gpa))
}

func TestCalculateGPA_ExcludesUnusableEnrollments(t *testing.T) {
	gpa, ok := CalculateGPA([]*models.Enrollment{
		enrolled(str("B"), num(2)),
		enrolled(str("b"), num(2)),
		enrolled(str("Incomplete"), num(4)),
		enrolled(str("A"), nil),
		{Grade: str("A")},
		nil,
	})

	assert.True(t, ok)
	assert.InDelta(t, 3.0, gpa, 1e-9)
}

func TestCalculateGPA_FailingGradeStillCounts(t *testing.T) {
	gpa, ok := CalculateGPA([]*models.Enrollment{
		enrolled(str("A"), num(3)),
		enrolled(str("F"), num(3)),
	})

	assert.True(t, ok)
	assert.InDelta(t, 2.0, gpa, 1e-9)
}

func TestCalculateGPA_Undefined(t *testing.T) {
	cases := map[string][]*models.Enrollment{
		"no enrollments":    nil,
		"only ungraded":     {enrolled(nil, num(3))},
		"only uncredited":   {enrolled(str("A"), nil)},
		"only unrecognised": {enrolled(str("X"), num(3))},
	}

	for name, enrollments := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok := CalculateGPA(enrollments)
			assert.False(t, ok)
		})
	}
}
