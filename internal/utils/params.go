// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"

	"github.com/tbourn/go-saas-core/internal/apperr"
)

// ParseID converts a path or query value into a positive int64 id. Anything
// else is reported as a type mismatch on field.
//
// Example:
//
//	id, err := utils.ParseID("id", c.Param("id"))
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &apperr.TypeMismatch{Field: field, Value: raw, Type: "int64", Cause: err}
	}
	if id <= 0 {
		return 0, &apperr.TypeMismatch{Field: field, Value: raw, Type: "positive int64"}
	}
	return id, nil
}

// ParseIDs splits a comma-separated list of ids, skipping blank items.
// Duplicates are kept; callers that need a set deduplicate themselves.
//
// Example:
//
//	ids, err := utils.ParseIDs("ids", "1, 2,,3") // []int64{1, 2, 3}
func ParseIDs(field, csv string) ([]int64, error) {
	parts := strings.Split(csv, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		id, err := ParseID(field, p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
