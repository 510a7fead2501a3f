package app

import (
	"context"
	"encoding/json"
	"strings"

	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

// HospitalService is the hospital registry. It owns each hospital's
// inventory ledger and the creation of blood requests.
type HospitalService struct {
	c      *Collections
	events domain.EventPublisher
	log    *zap.Logger
}

// NewHospitalService creates a HospitalService over the given collections.
func NewHospitalService(c *Collections) *HospitalService {
	return &HospitalService{c: c, log: c.log.Named("hospitals")}
}

// WithPublisher announces every created request on p.
func (s *HospitalService) WithPublisher(p domain.EventPublisher) *HospitalService {
	s.events = p
	return s
}

// Register validates in and appends a hospital with an empty inventory.
func (s *HospitalService) Register(ctx context.Context, in domain.HospitalFields) (domain.Hospital, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	email := strings.TrimSpace(in.Email)
	license := strings.TrimSpace(in.License)

	if name == "" {
		return domain.Hospital{}, domain.Reject(domain.EmptyField, "Enter hospital name.")
	}
	if !domain.IsValidPhone(phone) {
		return domain.Hospital{}, domain.Reject(domain.InvalidPhone, "Phone must be 10 digits.")
	}
	if !domain.IsValidEmail(email) {
		return domain.Hospital{}, domain.Reject(domain.InvalidEmail, "Enter a valid email.")
	}
	if license == "" {
		return domain.Hospital{}, domain.Reject(domain.EmptyField, "Enter license number.")
	}

	var h domain.Hospital
	err := s.c.update(func() error {
		hospitals, err := s.c.hospitals(ctx)
		if err != nil {
			return err
		}
		for _, existing := range hospitals {
			if domain.SameLicense(existing.License, license) {
				return domain.Reject(domain.DuplicateLicense, "License already registered (must be unique).")
			}
		}
		h = domain.Hospital{
			Name:      name,
			Phone:     phone,
			Email:     email,
			License:   license,
			Address:   strings.TrimSpace(in.Address),
			Created:   domain.At(s.c.now()),
			Inventory: []domain.InventoryEntry{},
		}
		return s.c.saveHospitals(ctx, append(hospitals, h))
	})
	if err != nil {
		return domain.Hospital{}, err
	}
	s.log.Info("hospital registered", zap.String("license", h.License))
	return h, nil
}

// AddInventory credits qty millilitres of blood to the ledger of the hospital
// in sess and returns the updated record.
func (s *HospitalService) AddInventory(ctx context.Context, sess domain.Session, bloodRaw, qtyRaw string) (domain.Hospital, error) {
	if sess.Portal != domain.PortalHospital {
		return domain.Hospital{}, domain.ErrLoginRequired
	}
	qty, err := ledgerQty(qtyRaw)
	if err != nil {
		return domain.Hospital{}, err
	}
	blood, ok := domain.ParseBloodType(bloodRaw)
	if !ok {
		return domain.Hospital{}, domain.Reject(domain.MissingBloodType, "Select blood type.")
	}

	var h domain.Hospital
	err = s.c.update(func() error {
		hospitals, err := s.c.hospitals(ctx)
		if err != nil {
			return err
		}
		i := indexHospital(hospitals, sess)
		if i < 0 {
			return domain.ErrLoginRequired
		}
		hospitals[i].AddStock(blood, qty)
		h = hospitals[i]
		return s.c.saveHospitals(ctx, hospitals)
	})
	if err != nil {
		return domain.Hospital{}, err
	}
	s.log.Info("inventory added",
		zap.String("license", h.License),
		zap.String("blood", string(blood)),
		zap.Int("qty", qty),
		zap.Int("stock", h.Stock(blood)))
	return h, nil
}

// CreateRequest files a blood request on behalf of the hospital in sess.
func (s *HospitalService) CreateRequest(ctx context.Context, sess domain.Session, bloodRaw, qtyRaw string) (domain.Request, error) {
	if sess.Portal != domain.PortalHospital {
		return domain.Request{}, domain.ErrLoginRequired
	}
	qty, err := ledgerQty(qtyRaw)
	if err != nil {
		return domain.Request{}, err
	}
	blood, ok := domain.ParseBloodType(bloodRaw)
	if !ok {
		return domain.Request{}, domain.Reject(domain.MissingBloodType, "Select blood type.")
	}

	var req domain.Request
	err = s.c.update(func() error {
		hospitals, err := s.c.hospitals(ctx)
		if err != nil {
			return err
		}
		i := indexHospital(hospitals, sess)
		if i < 0 {
			return domain.ErrLoginRequired
		}
		requests, err := s.c.requests(ctx)
		if err != nil {
			return err
		}
		now := s.c.now()
		req = domain.Request{
			ID:       NextRequestID(requests, now),
			Hospital: hospitals[i].Name,
			License:  hospitals[i].License,
			Blood:    blood,
			Qty:      qty,
			Status:   domain.StatusOpen,
			Created:  domain.At(now),
		}
		return s.c.saveRequests(ctx, append(requests, req))
	})
	if err != nil {
		return domain.Request{}, err
	}
	s.log.Info("request created",
		zap.String("id", req.ID),
		zap.String("license", req.License),
		zap.String("blood", string(req.Blood)),
		zap.Int("qty", req.Qty))
	s.announce(ctx, req)
	return req, nil
}

// announce publishes req. The request is already stored, so a failed
// publish is logged and not returned.
func (s *HospitalService) announce(ctx context.Context, req domain.Request) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(req)
	if err != nil {
		s.log.Warn("encode request event", zap.String("id", req.ID), zap.Error(err))
		return
	}
	if err := s.events.Publish(ctx, domain.EventRequestCreated, payload, req.License); err != nil {
		s.log.Warn("publish request event", zap.String("id", req.ID), zap.Error(err))
	}
}

// FindByLicenseOrEmail returns the hospital whose license or email equals
// key, ignoring case, or nil.
func (s *HospitalService) FindByLicenseOrEmail(ctx context.Context, key string) (*domain.Hospital, error) {
	hospitals, err := s.c.hospitals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range hospitals {
		if domain.SameEmail(hospitals[i].Email, key) || domain.SameLicense(hospitals[i].License, key) {
			return &hospitals[i], nil
		}
	}
	return nil, nil
}

// Profile returns the record of the hospital in sess. A session whose
// hospital no longer resolves is treated as logged out.
func (s *HospitalService) Profile(ctx context.Context, sess domain.Session) (domain.Hospital, error) {
	if sess.Portal != domain.PortalHospital {
		return domain.Hospital{}, domain.ErrLoginRequired
	}
	hospitals, err := s.c.hospitals(ctx)
	if err != nil {
		return domain.Hospital{}, err
	}
	i := indexHospital(hospitals, sess)
	if i < 0 {
		return domain.Hospital{}, domain.ErrLoginRequired
	}
	return hospitals[i], nil
}

// List returns every registered hospital in registration order.
func (s *HospitalService) List(ctx context.Context) ([]domain.Hospital, error) {
	return s.c.hospitals(ctx)
}

// Get returns the hospital holding license exactly.
func (s *HospitalService) Get(ctx context.Context, license string) (domain.Hospital, error) {
	hospitals, err := s.c.hospitals(ctx)
	if err != nil {
		return domain.Hospital{}, err
	}
	for _, h := range hospitals {
		if h.License == license {
			return h, nil
		}
	}
	return domain.Hospital{}, domain.Reject(domain.NotFound, "Hospital not found")
}

// indexHospital locates the hospital owning sess. The license is the unique
// key; email is only consulted for descriptors that carry no license.
func indexHospital(hospitals []domain.Hospital, sess domain.Session) int {
	for i := range hospitals {
		if sess.License != "" {
			if hospitals[i].License == sess.License {
				return i
			}
		} else if hospitals[i].Email == sess.Email {
			return i
		}
	}
	return -1
}

func ledgerQty(raw string) (int, error) {
	qty, ok := domain.ParseWhole(raw)
	if !ok || qty < domain.MinLedgerQty {
		return 0, domain.Reject(domain.InvalidQuantity, "Qty must be ≥50.")
	}
	return qty, nil
}
