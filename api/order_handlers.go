package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"logishare/models"
)

func (s *Server) getPendingOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.GetPendingOrders(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if order == nil {
		writeJSONError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) getDriverOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.store.GetOrdersByDriverID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if orders == nil {
		orders = []models.OrderWithEarnings{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in models.NewOrder
	if !decodeBody(w, r, &in) {
		return
	}
	if in.OrderNumber == "" || in.PickupLocation == "" || in.DeliveryLocation == "" || in.Fee == "" {
		writeJSONError(w, http.StatusBadRequest, "orderNumber, pickupLocation, deliveryLocation and fee are required")
		return
	}
	order, err := s.store.CreateOrder(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	s.notifier.OrderCreated(order)
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	var upd models.OrderUpdate
	if !decodeBody(w, r, &upd) {
		return
	}
	order, err := s.store.UpdateOrder(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) acceptOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DriverID string `json:"driverId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.DriverID == "" {
		writeJSONError(w, http.StatusBadRequest, "Driver ID is required")
		return
	}
	order, err := s.store.AcceptOrder(r.Context(), chi.URLParam(r, "id"), body.DriverID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	driver, _ := s.store.GetDriver(r.Context(), body.DriverID)
	s.notifier.OrderAccepted(order, driver)
	writeJSON(w, http.StatusOK, order)
}

// orderQR returns a PNG QR code of the order number, scanned at warehouse
// pickup hand-off.
func (s *Server) orderQR(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if order == nil {
		writeJSONError(w, http.StatusNotFound, "Order not found")
		return
	}
	png, err := qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
