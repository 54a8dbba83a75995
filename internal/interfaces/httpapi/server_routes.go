package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerResolutionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/resolutions", handler.Resolve)
	mux.HandleFunc("POST /v1/resolutions/batch", handler.ResolveBatch)
	mux.HandleFunc("POST /v1/verifications", handler.VerifyMapping)
	mux.HandleFunc("GET /v1/reports/mapping", handler.GetMappingReport)
}
