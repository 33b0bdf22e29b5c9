package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"logishare/models"
	"logishare/report"
)

func (s *Server) createEarning(w http.ResponseWriter, r *http.Request) {
	var in models.NewEarning
	if !decodeBody(w, r, &in) {
		return
	}
	if in.DriverID == "" || in.OrderID == "" || in.Amount == "" {
		writeJSONError(w, http.StatusBadRequest, "driverId, orderId and amount are required")
		return
	}
	earning, err := s.store.CreateEarning(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, earning)
}

func (s *Server) getDriverEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := s.store.GetEarningsByDriverID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if earnings == nil {
		earnings = []models.Earning{}
	}
	writeJSON(w, http.StatusOK, earnings)
}

func (s *Server) getDailyEarnings(w http.ResponseWriter, r *http.Request) {
	day, err := time.ParseInLocation("2006-01-02", chi.URLParam(r, "date"), time.Local)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	earnings, err := s.store.GetDailyEarnings(r.Context(), chi.URLParam(r, "id"), day)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if earnings == nil {
		earnings = []models.Earning{}
	}
	writeJSON(w, http.StatusOK, earnings)
}

func (s *Server) getWeeklyEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := s.store.GetWeeklyEarnings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if earnings == nil {
		earnings = []models.Earning{}
	}
	writeJSON(w, http.StatusOK, earnings)
}

// exportEarnings streams the driver's full earnings history as an xlsx
// workbook for the earnings screen's download button.
func (s *Server) exportEarnings(w http.ResponseWriter, r *http.Request) {
	driverID := chi.URLParam(r, "id")
	driver, err := s.store.GetDriver(r.Context(), driverID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if driver == nil {
		writeJSONError(w, http.StatusNotFound, "Driver not found")
		return
	}
	earnings, err := s.store.GetEarningsByDriverID(r.Context(), driverID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	wb, err := report.EarningsWorkbook(driver, earnings)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to build earnings report")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "earnings-"+time.Now().Format("2006-01-02")+".xlsx"))
	if err := wb.Write(w); err != nil {
		// headers already sent; nothing useful to report to the client
		return
	}
}
