package adapthttp

import (
	"net/http"

	"bloodbank/internal/app"
	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

const loginPath = "/login"

// Services bundles the application services the HTTP adapter drives.
type Services struct {
	Donors    *app.DonorService
	Hospitals *app.HospitalService
	Requests  *app.RequestService
	Admins    *app.AdminService
	Auth      *app.AuthService
	Stats     *app.StatsService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	donors     *app.DonorService
	hospitals  *app.HospitalService
	requests   *app.RequestService
	admins     *app.AdminService
	auth       *app.AuthService
	stats      *app.StatsService
	oidcConfig OIDCConfig
	log        *zap.Logger
	webDir     string
	secure     bool
}

// New creates a Server wired to the given application services. An empty
// webDir disables static file serving.
func New(svc Services, oidcConfig OIDCConfig, log *zap.Logger, webDir string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		donors:     svc.Donors,
		hospitals:  svc.Hospitals,
		requests:   svc.Requests,
		admins:     svc.Admins,
		auth:       svc.Auth,
		stats:      svc.Stats,
		oidcConfig: oidcConfig,
		log:        log.Named("http"),
		webDir:     webDir,
	}
}

// WithSecureCookies marks session cookies Secure. Use behind TLS.
func (s *Server) WithSecureCookies() *Server {
	s.secure = true
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/stats", s.handleStats)

	api.HandleFunc("/register/donor", s.handleRegisterDonor)
	api.HandleFunc("/register/hospital", s.handleRegisterHospital)
	api.HandleFunc("/register/admin", s.handleRegisterAdmin)

	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/sso/login", s.handleSSOLogin)
	api.HandleFunc("/sso/callback", s.handleSSOCallback)

	api.Handle("/donor/me", s.requirePortal(domain.PortalDonor, s.handleDonorMe))
	api.Handle("/donor/donate", s.requirePortal(domain.PortalDonor, s.handleDonorDonate))
	api.Handle("/requests", s.requirePortal(domain.PortalDonor, s.handleRequestList))

	api.Handle("/hospital/me", s.requirePortal(domain.PortalHospital, s.handleHospitalMe))
	api.Handle("/hospital/inventory", s.requirePortal(domain.PortalHospital, s.handleHospitalInventory))
	api.Handle("/hospital/requests", s.requirePortal(domain.PortalHospital, s.handleHospitalRequest))

	api.Handle("/admin/hospitals", s.requirePortal(domain.PortalAdmin, s.handleAdminHospitals))
	api.Handle("/admin/hospitals/{license}", s.requirePortal(domain.PortalAdmin, s.handleAdminHospital))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.webDir != "" {
		root.Handle("/", spaFromDisk(s.webDir))
	}

	return withNoCache(s.loggingMiddleware(root))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := s.stats.Counts(r.Context())
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
