package httpjson

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, zap.NewNop(), http.StatusCreated, map[string]int{"id": 1})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, http.StatusUnprocessableEntity, "validation failed", "name is required")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "validation failed", body.Error)
	require.Equal(t, "name is required", body.Details)
}
