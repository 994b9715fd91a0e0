package attendance

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/xuri/excelize/v2"

	"school-portal/internal/httpx"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

type markRequest struct {
	Date    string       `json:"date" validate:"required"`
	Records []markRecord `json:"records"`
}

type markRecord struct {
	StudentID string `json:"student_id"`
	Present   *bool  `json:"present"`
}

type markResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Mark upserts a batch of (student, present) pairs for one date. Pairs
// missing either field are dropped without being reported.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("date must look like "+DateLayout))
		return
	}

	upserts := make([]Upsert, 0, len(req.Records))
	for _, rec := range req.Records {
		if rec.StudentID == "" || rec.Present == nil {
			continue
		}
		upserts = append(upserts, Upsert{StudentID: rec.StudentID, Present: *rec.Present})
	}
	if skipped := len(req.Records) - len(upserts); skipped > 0 {
		slog.Debug("skipped incomplete attendance pairs", "skipped", skipped)
	}

	if err := h.repo.MarkBatch(r.Context(), date, upserts); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, markResponse{Success: true, Count: len(upserts)})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse(DateLayout, d)
		if err != nil {
			httpx.RenderError(w, r, httpx.BadRequest("date must look like "+DateLayout))
			return
		}
		date = &parsed
	}

	list, err := h.repo.List(r.Context(), date, r.URL.Query().Get("student_id"))
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// Export streams the day's attendance as an xlsx sheet.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	d := r.URL.Query().Get("date")
	if d == "" {
		httpx.RenderError(w, r, httpx.BadRequest("date is required"))
		return
	}
	date, err := time.Parse(DateLayout, d)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("date must look like "+DateLayout))
		return
	}

	list, err := h.repo.List(r.Context(), &date, "")
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("closing spreadsheet", "err", err)
		}
	}()

	sheet := f.GetSheetName(0)
	headers := []string{"Student ID", "Date", "Present"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hd)
	}
	for i, rec := range list {
		values := []any{rec.StudentID, rec.Date, rec.Present}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="attendance-`+d+`.xlsx"`)
	if err := f.Write(w); err != nil {
		slog.Error("failed to stream attendance export", "err", err)
	}
}
