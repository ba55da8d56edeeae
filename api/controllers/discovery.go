package controllers

import (
	"net/http"

	"github.com/adaezeumeh/thriftline-backend/api/middleware"
	"github.com/adaezeumeh/thriftline-backend/api/responses"
	"github.com/adaezeumeh/thriftline-backend/internal/catalog"
	"github.com/adaezeumeh/thriftline-backend/pkg/logger"
)

// Trending serves the landing page's trending rail.
func Trending(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.Trending(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// Recommendations serves the suggestion rail. A bearer token is optional;
// when one is present the request is attributed to the user in the logs.
func Recommendations(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if userID := middleware.UserIDFromContext(ctx); userID != 0 && logg != nil {
			ctx = logg.WithUserID(ctx, userID)
			logg.Info(ctx, "recommendations.personalized")
		}

		products, err := svc.Recommendations(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}
