package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mhagyesh07/ITCC-System/internal/service"
	"github.com/mhagyesh07/ITCC-System/internal/tablesort"
	"github.com/mhagyesh07/ITCC-System/internal/utils"
)

const maxUploadBytes = 10 << 20

// TicketHTTP wires the ticket endpoints to the ticket service.
type TicketHTTP struct {
	svc       *service.TicketService
	uploadDir string
	log       zerolog.Logger
}

func NewTicketHTTP(svc *service.TicketService, uploadDir string, log zerolog.Logger) *TicketHTTP {
	return &TicketHTTP{svc: svc, uploadDir: uploadDir, log: log}
}

// POST /api/tickets
// Accepts plain JSON, or multipart form data with an optional "attachment"
// file. Only the stored path ends up on the ticket; the body's employee id,
// if any, is ignored in favor of the authenticated caller.
func (h *TicketHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in service.CreateTicketInput

		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid multipart form")
				return
			}
			in.IssueType = r.FormValue("issueType")
			in.SubIssue = r.FormValue("subIssue")
			in.Priority = r.FormValue("priority")
			in.Description = r.FormValue("description")

			path, err := h.saveAttachment(r)
			if err != nil {
				h.log.Error().Err(err).Msg("attachment store failed")
				utils.Error(w, http.StatusInternalServerError, "failed to store attachment")
				return
			}
			in.Attachment = path
		} else {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid json")
				return
			}
		}

		t, err := h.svc.Create(r.Context(), identity(r), in)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

func (h *TicketHTTP) saveAttachment(r *http.Request) (string, error) {
	file, hdr, err := r.FormFile("attachment")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + "-" + filepath.Base(hdr.Filename)
	path := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return path, nil
}

// GET /api/tickets?limit=&page=&sort=createdAt:desc&status=&priority=
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		col, dir := utils.ParseSort(qv.Get("sort"), "createdAt", "desc")

		res, err := h.svc.List(r.Context(), identity(r), service.ListQuery{
			Status:   strings.TrimSpace(qv.Get("status")),
			Priority: strings.TrimSpace(qv.Get("priority")),
			Limit:    utils.QueryInt(qv, "limit", 10),
			Page:     utils.QueryInt(qv, "page", 1),
			Sort:     col,
			Order:    dir,
		})
		if err != nil {
			writeErr(w, h.log, err)
			return
		}

		// Columns the store can't order by (owner name and friends) are
		// sorted here on the fetched page.
		if !service.DBSortable(col) {
			res.Tickets = tablesort.Sorted(res.Tickets, col, tablesort.Direction(dir), h.log)
		}

		utils.JSON(w, http.StatusOK, res)
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		t, err := h.svc.Get(r.Context(), identity(r), id)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// PUT /api/tickets/{id}/comment (admin only, guarded at the route)
func (h *TicketHTTP) Comment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			AdminComment string `json:"adminComment"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		t, err := h.svc.SetAdminComment(r.Context(), id, in.AdminComment)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "Admin comment updated successfully",
			"ticket":  t,
		})
	}
}

// PUT /api/tickets/{id}/close
func (h *TicketHTTP) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		t, err := h.svc.Close(r.Context(), identity(r), id)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message": "Ticket closed successfully",
			"ticket":  t,
		})
	}
}

// GET /api/tickets/employee/{employeeId} (admin or self, guarded at the route)
func (h *TicketHTTP) ListByEmployee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeId")
		items, err := h.svc.ListByEmployee(r.Context(), employeeID)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}
