package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"logishare/models"
)

func (s *Server) createDriver(w http.ResponseWriter, r *http.Request) {
	var in models.NewDriver
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Name == "" || in.Email == "" || in.Phone == "" {
		writeJSONError(w, http.StatusBadRequest, "name, email and phone are required")
		return
	}
	driver, err := s.store.CreateDriver(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, driver)
}

func (s *Server) getDriver(w http.ResponseWriter, r *http.Request) {
	driver, err := s.store.GetDriver(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if driver == nil {
		writeJSONError(w, http.StatusNotFound, "Driver not found")
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (s *Server) getDriverByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSONError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	driver, err := s.store.GetDriverByEmail(r.Context(), email)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if driver == nil {
		writeJSONError(w, http.StatusNotFound, "Driver not found")
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (s *Server) updateDriver(w http.ResponseWriter, r *http.Request) {
	var upd models.DriverUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	driver, err := s.store.UpdateDriver(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, driver)
}

func (s *Server) getDriverProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetDriverProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if profile == nil {
		writeJSONError(w, http.StatusNotFound, "Driver profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) getDriverVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := s.store.GetVehicleByDriverID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if vehicle == nil {
		writeJSONError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	var in models.NewVehicle
	if !decodeBody(w, r, &in) {
		return
	}
	if in.DriverID == "" {
		writeJSONError(w, http.StatusBadRequest, "driverId is required")
		return
	}
	vehicle, err := s.store.CreateVehicle(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	var upd models.VehicleUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	vehicle, err := s.store.UpdateVehicle(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) getDriverLicense(w http.ResponseWriter, r *http.Request) {
	license, err := s.store.GetLicenseByDriverID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if license == nil {
		writeJSONError(w, http.StatusNotFound, "License not found")
		return
	}
	writeJSON(w, http.StatusOK, license)
}

func (s *Server) createLicense(w http.ResponseWriter, r *http.Request) {
	var in models.NewLicense
	if !decodeBody(w, r, &in) {
		return
	}
	if in.DriverID == "" {
		writeJSONError(w, http.StatusBadRequest, "driverId is required")
		return
	}
	license, err := s.store.CreateLicense(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, license)
}

func (s *Server) updateLicense(w http.ResponseWriter, r *http.Request) {
	var upd models.LicenseUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	license, err := s.store.UpdateLicense(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, license)
}
