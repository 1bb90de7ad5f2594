package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/cod3gen/zeekr-homeassistant/core/storage"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

var log = util.NewLogger("httpd")

// Site is the bridge surface exposed by the api
type Site interface {
	Available() bool
	Updated() time.Time
	Store() state.Store
	Stats() *stats.Stats
	Settings() *coordinator.Settings
	RequestRefresh()
	WriteState(vin string)
}

type route struct {
	Methods     []string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// HTTPd wraps an http.Server and adds the root router
type HTTPd struct {
	*http.Server
	api *mux.Router
}

type ContextKey struct {
	name string
}

var (
	CtxSite    = ContextKey{"site"}
	CtxVehicle = ContextKey{"vehicle"}
)

func siteHandlerContext(site Site) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx = context.WithValue(ctx, CtxSite, site)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// vehicleHandlerContext resolves the {vin} path variable against the cached vehicles
func vehicleHandlerContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		site, ok := ctx.Value(CtxSite).(Site)
		if !ok {
			http.Error(w, "invalid site context", http.StatusInternalServerError)
			return
		}

		vin := mux.Vars(r)["vin"]
		for _, v := range site.Store().VINs() {
			if strings.EqualFold(v, vin) {
				ctx = context.WithValue(ctx, CtxVehicle, v)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
	})
}

// NewHTTPd creates HTTP server with configured routes for the bridge
func NewHTTPd(url string, site Site, hub *SocketHub, cache *util.Cache) *HTTPd {
	router := mux.NewRouter().StrictSlash(true)

	// websocket
	router.HandleFunc("/ws", socketHandler(hub))

	// api
	api := router.PathPrefix("/api").Subrouter()
	api.Use(jsonHandler)
	api.Use(handlers.CompressHandler)
	api.Use(handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Accept", "Accept-Language", "Content-Language", "Content-Type", "Origin",
		}),
	))
	api.Use(siteHandlerContext(site))

	routes := map[string]route{
		"health":   {[]string{"GET"}, "/health", healthHandler},
		"state":    {[]string{"GET"}, "/state", stateHandler(cache)},
		"stats":    {[]string{"GET"}, "/stats", statsHandler},
		"refresh":  {[]string{"POST", "OPTIONS"}, "/refresh", refreshHandler},
		"settings": {[]string{"GET"}, "/settings", settingsHandler},
		"setting":  {[]string{"POST", "OPTIONS"}, "/settings/{key:[a-z_]+}/{value:[0-9]+}", settingHandler},
		"vehicles": {[]string{"GET"}, "/vehicles", vehiclesHandler},
	}

	for _, r := range routes {
		api.Methods(r.Methods...).Path(r.Pattern).Handler(r.HandlerFunc)
	}

	// vehicle api
	vehicleRoutes := map[string]route{
		"vehicle": {[]string{"GET"}, "/vehicles/{vin:[0-9a-zA-Z]+}", vehicleHandler},
		"status":  {[]string{"GET"}, "/vehicles/{vin:[0-9a-zA-Z]+}/status", vehicleStatusHandler},
	}

	for _, r := range vehicleRoutes {
		api.Methods(r.Methods...).Path(r.Pattern).Handler(vehicleHandlerContext(r.HandlerFunc))
	}

	srv := &HTTPd{
		Server: &http.Server{
			Addr:         url,
			Handler:      router,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
			ErrorLog:     log.ERROR,
		},
		api: api,
	}
	srv.SetKeepAlivesEnabled(true)

	return srv
}

// Router returns the main router
func (s *HTTPd) Router() *mux.Router {
	return s.Handler.(*mux.Router)
}

// RegisterEntities exposes the entities and their actions
func (s *HTTPd) RegisterEntities(registry *entity.Registry) {
	routes := map[string]route{
		"entities": {[]string{"GET"}, "/entities", entitiesHandler(registry)},
		"entity":   {[]string{"GET"}, "/entities/{id}", entityHandler(registry)},
		"action":   {[]string{"POST", "OPTIONS"}, "/entities/{id}/{action:[a-z_]+}", actionHandler(registry)},
		"action2":  {[]string{"POST", "OPTIONS"}, "/entities/{id}/{action:[a-z_]+}/{value}", actionHandler(registry)},
	}

	for _, r := range routes {
		s.api.Methods(r.Methods...).Path(r.Pattern).Handler(r.HandlerFunc)
	}
}

// RegisterJournal exposes the remote command journal
func (s *HTTPd) RegisterJournal(journal *storage.Journal) {
	s.api.Methods("GET").Path("/commands").HandlerFunc(commandsHandler(journal))
}
