package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants_AreUnique(t *testing.T) {
	fields := []string{
		FieldFile, FieldAccount, FieldPeriod, FieldIssuer, FieldStage, FieldStrategy,
		FieldKeyword, FieldCategory, FieldReason, FieldStatus, FieldError, FieldCount,
		FieldAmount, FieldRunID, FieldComponent, FieldOutputDir,
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		assert.NotEmpty(t, f)
		assert.False(t, seen[f], "duplicate field name %q", f)
		seen[f] = true
	}
}
