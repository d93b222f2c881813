// Package kpi holds the small derived-metric computations shown on dashboard
// summary cards and reports. Everything here is pure.
package kpi

import (
	"math"
	"sort"

	"qa-warehouse-api-server/internal/models"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

// DefectRate is defectQty/totalQty as a percentage rounded to one decimal.
// A zero total yields 0.
func DefectRate(defectQty, totalQty int) float64 {
	return percent(defectQty, totalQty)
}

// ChecklistScore is the share of passing checklist rows, one decimal.
func ChecklistScore(pass, total int) float64 {
	return percent(pass, total)
}

// RejectionRate is rejected over all decisions, one decimal.
func RejectionRate(approved, rejected int) float64 {
	return percent(rejected, approved+rejected)
}

// Share is part over whole as a percentage, one decimal.
func Share(part, whole int) float64 {
	return percent(part, whole)
}

// SuggestedResult recommends Fail when any checklist row failed or any defect was found.
func SuggestedResult(checklistFailCount, defectQty int) models.Result {
	if checklistFailCount > 0 || defectQty > 0 {
		return models.ResultFail
	}
	return models.ResultPass
}

// Strength is the password-strength indicator.
type Strength struct {
	Level int    `json:"level"`
	Label string `json:"label"`
}

// PasswordStrength scores a password against five rules: length >= 8,
// length >= 12, an upper-case letter, a digit and a symbol.
func PasswordStrength(password string) Strength {
	if password == "" {
		return Strength{}
	}
	var upper, digit, symbol bool
	n := 0
	for _, r := range password {
		n++
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
		default:
			symbol = true
		}
	}
	score := 0
	for _, ok := range []bool{n >= 8, n >= 12, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	switch {
	case score <= 1:
		return Strength{Level: 1, Label: "Weak"}
	case score == 2:
		return Strength{Level: 2, Label: "Fair"}
	case score == 3:
		return Strength{Level: 3, Label: "Good"}
	default:
		return Strength{Level: 4, Label: "Strong"}
	}
}

// CountBy groups records by key and counts each group.
func CountBy[T any](records []T, key func(T) string) map[string]int {
	out := make(map[string]int)
	for _, r := range records {
		out[key(r)]++
	}
	return out
}

// SumBy adds up value over all records.
func SumBy[T any](records []T, value func(T) int) int {
	total := 0
	for _, r := range records {
		total += value(r)
	}
	return total
}

// Count is one labelled figure of a ranked breakdown.
type Count struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Ranked orders counts by value descending, then key ascending, and attaches each share.
func Ranked(counts map[string]int) []Count {
	total := 0
	out := make([]Count, 0, len(counts))
	for k, v := range counts {
		total += v
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	for i := range out {
		out[i].Share = Share(out[i].Count, total)
	}
	return out
}
