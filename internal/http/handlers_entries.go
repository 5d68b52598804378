package http

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"budget/internal/core"
	"budget/internal/importer"
	"budget/internal/services"
)

type createEntryRequest struct {
	Kind        string `json:"kind"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.Entries(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if entries == nil {
		entries = []core.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	amount, err := core.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid amount: %w", err))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, fmt.Errorf("invalid date: %w", err))
		return
	}

	entry := core.Entry{
		Kind:        core.Kind(sanitizeInput(req.Kind)),
		Category:    sanitizeInput(req.Category),
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Date:        date,
	}

	added, err := s.ledger.AddEntry(r.Context(), entry)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.ledger.DeleteEntry(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// handleImport accepts a CSV statement, either as a multipart "file" field
// or as the raw request body. Only a declared multipart request goes through
// the form parser: ParseMultipartForm consumes the body on other content
// types, leaving nothing for the CSV reader.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var src io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid multipart body: %w", err))
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
			return
		}
		defer file.Close()
		src = file
	}

	res, err := importer.Parse(src)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	imported, err := s.ledger.ImportEntries(r.Context(), res.Entries)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, map[string]int{
		"imported": imported,
		"skipped":  res.Skipped,
	})
}
