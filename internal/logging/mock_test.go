package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_RecordsLevels(t *testing.T) {
	logger := NewMockLogger()
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")
	logger.Fatal("f")
	logger.Fatalf("f %d", 2)

	assert.Len(t, logger.GetEntries(), 6)
	assert.True(t, logger.HasEntry("WARN", "w"))
	assert.True(t, logger.HasEntry("FATAL", "f 2"))
	assert.Len(t, logger.GetEntriesByLevel("FATAL"), 2)
	assert.False(t, logger.HasEntry("INFO", "w"))
}

func TestMockLogger_DerivedLoggersShareLog(t *testing.T) {
	logger := NewMockLogger()
	err := errors.New("boom")

	child := logger.WithField(FieldIssuer, "axis").WithError(err)
	child.Warn("strategy failed", F(FieldStage, "StructuredTable"))

	entries := logger.GetEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, err, entries[0].Error)
	assert.Equal(t, []Field{F(FieldIssuer, "axis"), F(FieldStage, "StructuredTable")}, entries[0].Fields)

	v, ok := logger.FieldValue("strategy failed", FieldStage)
	assert.True(t, ok)
	assert.Equal(t, "StructuredTable", v)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var logger MockLogger
	logger.WithFields(F("k", "v")).Info("hello")
	assert.True(t, logger.HasEntry("INFO", "hello"))

	logger.Clear()
	assert.Empty(t, logger.GetEntries())
}
