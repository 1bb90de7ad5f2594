package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/core/coordinator"
	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/core/state"
	"github.com/cod3gen/zeekr-homeassistant/core/storage"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/gorilla/mux"
)

// commandTimeout bounds remote commands triggered through the api
var commandTimeout = 25 * time.Second

func jsonHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		h.ServeHTTP(w, r)
	})
}

func jsonWrite(w http.ResponseWriter, content interface{}) {
	if err := json.NewEncoder(w).Encode(content); err != nil {
		log.ERROR.Printf("httpd: failed to encode JSON: %v", err)
	}
}

func jsonResult(w http.ResponseWriter, res interface{}) {
	jsonWrite(w, map[string]interface{}{"result": res})
}

func jsonError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	jsonWrite(w, map[string]interface{}{"error": err.Error()})
}

func siteFromRequest(w http.ResponseWriter, r *http.Request) (Site, bool) {
	site, ok := r.Context().Value(CtxSite).(Site)
	if !ok {
		jsonError(w, http.StatusInternalServerError, errors.New("invalid site context"))
	}
	return site, ok
}

// healthHandler reports whether vehicle data is current
func healthHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := r.Context().Value(CtxSite).(Site)
	if !ok || !site.Available() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// stateHandler returns the published entity states
func stateHandler(cache *util.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := make(map[string]interface{})
		for _, p := range cache.All() {
			res[p.UniqueID()] = p.Val
		}

		jsonResult(w, res)
	}
}

func statsHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	jsonResult(w, site.Stats().Counters())
}

func refreshHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	site.RequestRefresh()

	w.WriteHeader(http.StatusAccepted)
	jsonResult(w, true)
}

func settingsHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	jsonResult(w, site.Settings().Durations())
}

// settingHandler updates a single operation duration
func settingHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)

	key, err := coordinator.SettingKeyString(vars["key"])
	if err != nil {
		jsonError(w, http.StatusNotFound, err)
		return
	}

	val, err := strconv.Atoi(vars["value"])
	if err == nil {
		err = site.Settings().Set(key, val)
	}

	if err != nil {
		jsonError(w, http.StatusBadRequest, err)
		return
	}

	site.WriteState("")

	jsonResult(w, site.Settings().Duration(key))
}

type vehicleInfo struct {
	VIN       string `json:"vin"`
	Available bool   `json:"available"`
	Updated   string `json:"updated,omitempty"`
}

func vehiclesHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	var updated string
	if ts := site.Updated(); !ts.IsZero() {
		updated = ts.Format(time.RFC3339)
	}

	res := []vehicleInfo{}
	for _, vin := range site.Store().VINs() {
		res = append(res, vehicleInfo{
			VIN:       vin,
			Available: site.Available(),
			Updated:   updated,
		})
	}

	jsonResult(w, res)
}

func vehicleFromRequest(r *http.Request) string {
	vin, _ := r.Context().Value(CtxVehicle).(string)
	return vin
}

func vehicleHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	vin := vehicleFromRequest(r)
	tree, _ := site.Store().Get(vin)

	jsonResult(w, tree)
}

// vehicleStatusHandler returns the flattened status tree of the vehicle
func vehicleStatusHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := siteFromRequest(w, r)
	if !ok {
		return
	}

	vin := vehicleFromRequest(r)
	tree, _ := site.Store().Get(vin)

	res, err := state.Flatten(tree, ".")
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err)
		return
	}

	jsonResult(w, res)
}

func entitiesHandler(registry *entity.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vin, filter := r.URL.Query()["vin"]

		res := []entity.Description{}
		for _, e := range registry.All() {
			if filter && e.VIN() != vin[0] {
				continue
			}
			res = append(res, entity.Describe(e))
		}

		jsonResult(w, res)
	}
}

func entityHandler(registry *entity.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		e, ok := registry.Get(id)
		if !ok {
			jsonError(w, http.StatusNotFound, fmt.Errorf("entity not found: %s", id))
			return
		}

		jsonResult(w, entity.Describe(e))
	}
}

// actionHandler invokes an entity action and returns the updated entity
func actionHandler(registry *entity.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		e, ok := registry.Get(vars["id"])
		if !ok {
			jsonError(w, http.StatusNotFound, fmt.Errorf("entity not found: %s", vars["id"]))
			return
		}

		value, ok := vars["value"]
		if !ok {
			value = r.URL.Query().Get("value")
		}

		ctx, cancel := context.WithTimeout(r.Context(), commandTimeout)
		defer cancel()

		if err := entity.Dispatch(ctx, e, vars["action"], value); err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, entity.ErrNotSupported) || errors.Is(err, entity.ErrInvalidValue) {
				status = http.StatusBadRequest
			}

			jsonError(w, status, err)
			return
		}

		jsonResult(w, entity.Describe(e))
	}
}

func commandsHandler(journal *storage.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid limit: %s", s))
				return
			}
			limit = n
		}

		res, err := journal.Recent(r.URL.Query().Get("vin"), limit)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, err)
			return
		}

		jsonResult(w, res)
	}
}
