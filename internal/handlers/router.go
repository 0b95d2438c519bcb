package handlers

import (
	"net/http"

	"github.com/imperialtrucks/truck-market/internal/images"
	"github.com/imperialtrucks/truck-market/internal/middleware"
)

// NewRouter assembles the full API surface. Reads are public; listing
// mutations, import/export, and uploads require an admin session.
func NewRouter(th *TruckHandler, ah *AuthHandler, authMW *middleware.AuthMiddleware, imgs *images.Manager) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/trucks", th.ListTrucks)
	mux.HandleFunc("GET /api/trucks/{id}", th.GetTruck)
	mux.Handle("POST /api/trucks", authMW.RequireAdmin(http.HandlerFunc(th.CreateTruck)))
	mux.Handle("PUT /api/trucks/{id}", authMW.RequireAdmin(http.HandlerFunc(th.UpdateTruck)))
	mux.Handle("DELETE /api/trucks/{id}", authMW.RequireAdmin(http.HandlerFunc(th.DeleteTruck)))

	mux.HandleFunc("GET /api/status", th.Status)
	mux.Handle("GET /api/export", authMW.RequireAdmin(http.HandlerFunc(th.Export)))
	mux.Handle("POST /api/import", authMW.RequireAdmin(http.HandlerFunc(th.Import)))

	mux.Handle("POST /api/upload", authMW.RequireAdmin(http.HandlerFunc(th.Upload)))
	mux.Handle("PUT /api/images/update-truck-id", authMW.RequireAdmin(http.HandlerFunc(th.UpdateImageTruckID)))

	mux.HandleFunc("POST /api/auth/login", ah.Login)
	mux.HandleFunc("POST /api/auth/logout", ah.Logout)
	mux.Handle("GET /api/auth/me", authMW.WithUser(http.HandlerFunc(ah.Me)))

	mux.Handle("GET "+images.URLPrefix, http.StripPrefix(images.URLPrefix, http.FileServer(http.Dir(imgs.Dir()))))

	return mux
}
