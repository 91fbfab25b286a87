package controllers

import (
	"context"
	"net/http"

	"github.com/gachpala/shop-backend/api/responses"
	"github.com/gachpala/shop-backend/pkg/config"
	pkgerrors "github.com/gachpala/shop-backend/pkg/errors"
	"github.com/gachpala/shop-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Gachpala-Env", cfg.App.Env)
		responses.WriteSuccess(w, struct {
			responses.Base
			Status string `json:"status"`
		}{Base: responses.OK(""), Status: "live"})
	}
}

// HealthReady fails when either backing store is unreachable.
func HealthReady(cfg *config.Config, db, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Gachpala-Env", cfg.App.Env)

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unreachable"))
				return
			}
		}

		responses.WriteSuccess(w, struct {
			responses.Base
			Status string `json:"status"`
		}{Base: responses.OK(""), Status: "ready"})
	}
}
