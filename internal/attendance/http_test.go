package attendance

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeRepo mirrors the (student_id, date) uniqueness of the real table.
type fakeRepo struct {
	byKey map[string]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byKey: make(map[string]bool)}
}

func key(studentID string, date time.Time) string {
	return studentID + "@" + date.Format(DateLayout)
}

func (f *fakeRepo) MarkBatch(_ context.Context, date time.Time, upserts []Upsert) error {
	for _, u := range upserts {
		f.byKey[key(u.StudentID, date)] = u.Present
	}
	return nil
}

func (f *fakeRepo) List(_ context.Context, date *time.Time, studentID string) ([]Record, error) {
	out := make([]Record, 0)
	for k, present := range f.byKey {
		parts := strings.SplitN(k, "@", 2)
		if date != nil && parts[1] != date.Format(DateLayout) {
			continue
		}
		if studentID != "" && parts[0] != studentID {
			continue
		}
		out = append(out, Record{StudentID: parts[0], Date: parts[1], Present: present})
	}
	return out, nil
}

func newTestHandler(t *testing.T) (chi.Router, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	h := NewHandler(repo)

	r := chi.NewRouter()
	r.Get("/api/attendance", h.List)
	r.Post("/api/attendance", h.Mark)
	r.Get("/api/attendance/export", h.Export)
	return r, repo
}

func postMark(t *testing.T, r http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMarkSkipsIncompletePairs(t *testing.T) {
	r, repo := newTestHandler(t)

	rec := postMark(t, r, `{"date":"2026-03-02","records":[
		{"student_id":"s1","present":true},
		{"student_id":"s2"},
		{"present":false},
		{"student_id":"s3","present":false}
	]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, repo.byKey, 2)
}

func TestMarkRequiresDate(t *testing.T) {
	r, _ := newTestHandler(t)

	rec := postMark(t, r, `{"records":[{"student_id":"s1","present":true}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRepeatedMarksKeepLastValue(t *testing.T) {
	r, repo := newTestHandler(t)

	for _, present := range []string{"true", "false", "true", "false"} {
		rec := postMark(t, r, `{"date":"2026-03-02","records":[{"student_id":"s1","present":`+present+`}]}`)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Len(t, repo.byKey, 1)
	date, _ := time.Parse(DateLayout, "2026-03-02")
	assert.False(t, repo.byKey[key("s1", date)])
}

func TestListFiltersByDateAndStudent(t *testing.T) {
	r, _ := newTestHandler(t)

	require.Equal(t, http.StatusOK, postMark(t, r, `{"date":"2026-03-02","records":[
		{"student_id":"s1","present":true},{"student_id":"s2","present":false}]}`).Code)
	require.Equal(t, http.StatusOK, postMark(t, r, `{"date":"2026-03-03","records":[
		{"student_id":"s1","present":false}]}`).Code)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance?date=2026-03-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance?student_id=s1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestExportBuildsSpreadsheet(t *testing.T) {
	r, _ := newTestHandler(t)

	require.Equal(t, http.StatusOK, postMark(t, r, `{"date":"2026-03-02","records":[
		{"student_id":"s1","present":true}]}`).Code)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance/export?date=2026-03-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-2026-03-02.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Student ID", rows[0][0])
	assert.Equal(t, "s1", rows[1][0])
}

func TestExportRequiresDate(t *testing.T) {
	r, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance/export", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
