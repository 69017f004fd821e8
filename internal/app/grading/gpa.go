// Package grading converts letter grades into grade points and computes
// credit-weighted GPAs.
package grading

import (
	"math"
	"strings"

	"github.com/yigit/sims/internal/app/models"
)

var gradePoints = map[string]float64{
	"A+": 4.0,
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"F":  0.0,
}

// Points returns the grade points for a letter grade, ignoring case and
// surrounding spaces. ok is false for grades outside the scale.
func Points(grade string) (points float64, ok bool) {
	points, ok = gradePoints[strings.ToUpper(strings.TrimSpace(grade))]
	return points, ok
}

// IsKnownGrade reports whether grade is on the scale.
func IsKnownGrade(grade string) bool {
	_, ok := Points(grade)
	return ok
}

// CalculateGPA returns the credit-weighted average of the enrollments that have
// both a recognised grade and a course with credits. ok is false when no
// enrollment contributes.
func CalculateGPA(enrollments []*models.Enrollment) (gpa float64, ok bool) {
	var weighted float64
	var credits int

	for _, e := range enrollments {
		if e == nil || e.Grade == nil || e.Course == nil || e.Course.Credits == nil {
			continue
		}
		points, known := Points(*e.Grade)
		if !known {
			continue
		}
		weighted += points * float64(*e.Course.Credits)
		credits += *e.Course.Credits
	}

	if credits == 0 {
		return 0, false
	}
	return weighted / float64(credits), true
}

// Round2 rounds a GPA to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
