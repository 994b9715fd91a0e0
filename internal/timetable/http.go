package timetable

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/xuri/excelize/v2"

	"school-portal/internal/files"
	"school-portal/internal/httpx"
)

type Handler struct {
	repo  Repo
	store *files.Store
}

func NewHandler(repo Repo, store *files.Store) *Handler {
	return &Handler{repo: repo, store: store}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

type publishRequest struct {
	// an empty entries list is allowed: it clears the schedule
	Entries []Entry `json:"entries"`
}

type publishResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Publish replaces the whole timetable. Entries missing day, period or
// subject are dropped without being reported.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RenderError(w, r, err)
		return
	}

	kept := make([]Entry, 0, len(req.Entries))
	for _, e := range req.Entries {
		if e.Day == "" || e.Period == "" || e.Subject == "" {
			continue
		}
		kept = append(kept, e)
	}
	if skipped := len(req.Entries) - len(kept); skipped > 0 {
		slog.Debug("skipped malformed timetable entries", "skipped", skipped)
	}

	if err := h.repo.Replace(r.Context(), kept); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, publishResponse{Success: true, Count: len(kept)})
}

// Upload stores a raw timetable file; File returns the most recent one.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("file is required"))
		return
	}
	defer file.Close()

	stored, err := h.store.Save(files.Timetable, header.Filename, file)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{"file": stored})
}

func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	latest, err := h.store.Latest(files.Timetable)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	var name *string
	if latest != "" {
		name = &latest
	}
	render.JSON(w, r, map[string]*string{"file": name})
}

// Import reads an xlsx with columns day | period | subject | teacher_id,
// skips the header row and any row missing one of the first three cells,
// and replaces the timetable with the result, exactly like Publish.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid multipart form"))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("file is required"))
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("file is not a readable spreadsheet"))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("closing spreadsheet", "err", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		httpx.RenderError(w, r, httpx.BadRequest("spreadsheet has no sheets"))
		return
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("could not read spreadsheet rows"))
		return
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		var e Entry
		if len(row) > 0 {
			e.Day = row[0]
		}
		if len(row) > 1 {
			e.Period = row[1]
		}
		if len(row) > 2 {
			e.Subject = row[2]
		}
		if len(row) > 3 {
			e.TeacherID = row[3]
		}
		if e.Day == "" || e.Period == "" || e.Subject == "" {
			slog.Debug("skipping incomplete timetable row", "row", i+1)
			continue
		}
		entries = append(entries, e)
	}

	if err := h.repo.Replace(r.Context(), entries); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, publishResponse{Success: true, Count: len(entries)})
}
