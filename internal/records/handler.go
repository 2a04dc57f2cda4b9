package records

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"leaflethub/internal/auth"
)

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type recordPayload struct {
	ID          int64  `json:"id"`
	SAPID       string `json:"sapId"`
	ProductName string `json:"productName"`
	Date        string `json:"date"`
	Document    string `json:"document"`
}

// validate checks the four business fields and decodes the document payload.
// Runs before any store access.
func (p *recordPayload) validate() ([]byte, string) {
	if p.SAPID == "" {
		return nil, "sapId is required"
	}
	if p.ProductName == "" {
		return nil, "productName is required"
	}
	if p.Date == "" {
		return nil, "date is required"
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return nil, "date must be formatted as YYYY-MM-DD"
	}
	if p.Document == "" {
		return nil, "document is required"
	}
	doc, err := base64.StdEncoding.DecodeString(p.Document)
	if err != nil {
		return nil, "document is not valid base64"
	}
	return doc, ""
}

// CollectionHandler serves GET (list or single via ?id=), POST (create) and
// PUT (full replace) on the records collection.
type CollectionHandler struct {
	Store  *Store
	Logger *slog.Logger
}

func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		// Updates rewrite history for every dashboard user, so they are
		// restricted to admins.
		auth.RequireRole(h.update, auth.RoleAdmin)(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *CollectionHandler) list(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	if idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "id must be an integer")
			return
		}
		rec, err := h.Store.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "record not found")
				return
			}
			h.Logger.Error("get record", "id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
			return
		}
		writeJSON(w, rec)
		return
	}

	recs, err := h.Store.List(r.Context())
	if err != nil {
		h.Logger.Error("list records", "err", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if len(recs) == 0 {
		writeError(w, http.StatusNotFound, "no records found")
		return
	}
	writeJSON(w, recs)
}

func (h *CollectionHandler) create(w http.ResponseWriter, r *http.Request) {
	var p recordPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, msg := p.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	rec := &Record{
		SAPID:       p.SAPID,
		ProductName: p.ProductName,
		Date:        p.Date,
		Document:    doc,
	}
	if err := h.Store.Insert(r.Context(), rec); err != nil {
		h.Logger.Error("insert record", "err", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	writeJSON(w, map[string]interface{}{
		"message": "Item added successfully",
		"result":  rec,
	})
}

func (h *CollectionHandler) update(w http.ResponseWriter, r *http.Request) {
	var p recordPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.ID == 0 {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	doc, msg := p.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	rec := &Record{
		ID:          p.ID,
		SAPID:       p.SAPID,
		ProductName: p.ProductName,
		Date:        p.Date,
		Document:    doc,
	}
	if err := h.Store.Update(r.Context(), rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "update failed, record not found")
			return
		}
		h.Logger.Error("update record", "id", p.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	writeJSON(w, map[string]string{"message": "Record updated successfully"})
}
