package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetELDLog handles GET /eld-log/{tripID}.
// On success it returns the one-page log sheet as a PDF attachment named
// ELD_Log_Trip_{id}.pdf.
func (s *Server) GetELDLog(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	pdf, err := s.eldLogs.Render(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("ELD_Log_Trip_%s.pdf", id)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
