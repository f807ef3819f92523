package mssql

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/storage"
)

var _ storage.Repository = (*Repository)(nil)

func paramMap(t *testing.T, args []any) map[string]any {
	t.Helper()
	out := make(map[string]any, len(args))
	for _, a := range args {
		named, ok := a.(sql.NamedArg)
		require.True(t, ok)
		out[named.Name] = named.Value
	}
	return out
}

func TestJobParams(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := job.New("linkedin", "LinkedIn", now)
	rec.Title = "Go Developer"
	rec.Company = "Acme"
	rec.SourceID = "3912345678"
	rec.Requirements = []string{"Go", "Kafka"}
	posted := now.AddDate(0, 0, -7)
	rec.PostedAt = &posted

	args, err := jobParams(rec, "abc")
	require.NoError(t, err)

	params := paramMap(t, args)
	assert.Len(t, params, 19)
	assert.Equal(t, "linkedin", params["Source"])
	assert.Equal(t, "3912345678", params["SourceID"])
	assert.Equal(t, `["Go","Kafka"]`, params["Requirements"])
	assert.Equal(t, "unapplied", params["Status"])
	assert.Equal(t, "abc", params["CheckSum"])
	assert.Equal(t, sql.NullTime{Time: posted, Valid: true}, params["PostedAt"])
}

func TestJobParamsDefaults(t *testing.T) {
	rec := &job.Record{Title: "Go", Company: "Acme"}

	args, err := jobParams(rec, "")
	require.NoError(t, err)

	params := paramMap(t, args)
	assert.Equal(t, "[]", params["Requirements"])
	assert.Equal(t, sql.NullTime{}, params["PostedAt"])
}
