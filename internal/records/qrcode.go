package records

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// DetailHandler serves the per-record subresources:
//
//	GET /api/v1/records/{id}/document  raw PDF download
//	GET /api/v1/records/{id}/qrcode    PNG pointing at the document URL
type DetailHandler struct {
	Store   *Store
	Logger  *slog.Logger
	BaseURL string
}

func (h *DetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	// Path is /api/v1/records/{id}/{subresource}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 {
		writeError(w, http.StatusBadRequest, "invalid path")
		return
	}
	id, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	switch parts[4] {
	case "document":
		h.document(w, r, id)
	case "qrcode":
		h.qrcode(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "unknown subresource")
	}
}

func (h *DetailHandler) document(w http.ResponseWriter, r *http.Request, id int64) {
	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		h.Logger.Error("get record document", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "leaflet-"+strconv.FormatInt(id, 10)+".pdf"))
	_, _ = w.Write(rec.Document)
}

func (h *DetailHandler) qrcode(w http.ResponseWriter, r *http.Request, id int64) {
	if _, err := h.Store.Get(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		h.Logger.Error("get record for qrcode", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	target := fmt.Sprintf("%s/api/v1/records/%d/document", strings.TrimRight(h.BaseURL, "/"), id)
	png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
	if err != nil {
		h.Logger.Error("encode qrcode", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
