package adapthttp

import (
	"net/http"

	"bloodbank/internal/domain"
)

func (s *Server) handleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Name    field `json:"name"`
		Phone   field `json:"phone"`
		Email   field `json:"email"`
		Age     field `json:"age"`
		Blood   field `json:"blood"`
		Days    field `json:"days"`
		Disease field `json:"disease"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	d, err := s.donors.Register(r.Context(), domain.DonorFields{
		Name:    string(body.Name),
		Phone:   string(body.Phone),
		Email:   string(body.Email),
		Age:     string(body.Age),
		Blood:   string(body.Blood),
		Days:    string(body.Days),
		Disease: string(body.Disease),
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"donor": d, "message": "Donor registered. Please login."})
}

func (s *Server) handleRegisterHospital(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Name    field `json:"name"`
		Phone   field `json:"phone"`
		Email   field `json:"email"`
		License field `json:"license"`
		Address field `json:"addr"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h, err := s.hospitals.Register(r.Context(), domain.HospitalFields{
		Name:    string(body.Name),
		Phone:   string(body.Phone),
		Email:   string(body.Email),
		License: string(body.License),
		Address: string(body.Address),
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"hospital": h, "message": "Hospital registered. Use license as password to login."})
}

func (s *Server) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	a, err := s.admins.Register(r.Context(), domain.AdminFields{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"admin":   map[string]string{"name": a.Name, "email": a.Email},
		"message": "Admin registered. Please login.",
	})
}
