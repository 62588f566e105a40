package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("file", "statement.csv").Msg("ingest complete")

	out := buf.String()
	assert.Contains(t, out, `"message":"ingest complete"`)
	assert.Contains(t, out, `"file":"statement.csv"`)
	assert.Contains(t, out, `"time":`)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	ctx := WithContext(context.Background(), log)
	fromCtx := FromContext(ctx)
	fromCtx.Info().Msg("from context")

	assert.Contains(t, buf.String(), "from context")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error().Msg("discarded")
}
