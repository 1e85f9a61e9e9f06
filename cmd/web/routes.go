package main

import (
	"net/http"
)

func (app *application) routes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				commonContext(app.timeout(next)))))
		}
		noSession = func(next http.Handler) http.Handler {
			return app.recoverPanic(shared(next))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(shared(next))))
		}
	)

	mux.Handle("GET /checkin", session(http.HandlerFunc(app.checkInGET)))
	mux.Handle("POST /checkin", session(http.HandlerFunc(app.checkInPOST)))
	mux.Handle("POST /checkin/reclassify", session(http.HandlerFunc(app.checkInReclassifyPOST)))
	mux.Handle("POST /checkin/baseline", session(http.HandlerFunc(app.baselinePOST)))

	mux.Handle("GET /log", session(http.HandlerFunc(app.activityLogGET)))
	mux.Handle("POST /log/cardio", session(http.HandlerFunc(app.logCardioPOST)))
	mux.Handle("POST /log/strength", session(http.HandlerFunc(app.logStrengthPOST)))
	mux.Handle("POST /log/climbing", session(http.HandlerFunc(app.logClimbingPOST)))
	mux.Handle("POST /log/conditioning", session(http.HandlerFunc(app.logConditioningPOST)))
	mux.Handle("POST /log/{type}/{id}/delete", session(http.HandlerFunc(app.deleteSessionPOST)))

	mux.Handle("GET /status", session(http.HandlerFunc(app.statusGET)))

	mux.Handle("GET /config", session(http.HandlerFunc(app.configGET)))
	mux.Handle("POST /config", session(http.HandlerFunc(app.configPOST)))

	mux.Handle("GET /objectives", session(http.HandlerFunc(app.objectivesGET)))
	mux.Handle("POST /objectives/activate", session(http.HandlerFunc(app.objectiveActivatePOST)))
	mux.Handle("POST /objectives/{id}/deactivate", session(http.HandlerFunc(app.objectiveDeactivatePOST)))
	mux.Handle("POST /objectives/{id}/weeks/{week}/complete",
		session(http.HandlerFunc(app.objectiveCompleteWeekPOST)))

	mux.Handle("GET /zones", session(http.HandlerFunc(app.zonesGET)))
	mux.Handle("POST /zones", session(http.HandlerFunc(app.zonesMethodPOST)))
	mux.Handle("POST /zones/custom", session(http.HandlerFunc(app.zonesCustomPOST)))
	mux.Handle("POST /zones/unit", session(http.HandlerFunc(app.zonesUnitPOST)))

	mux.Handle("GET /exercises/{id}", session(http.HandlerFunc(app.exerciseInfoGET)))

	mux.Handle("GET /api/healthy", noSession(http.HandlerFunc(app.healthy)))
	mux.Handle("GET /api/test/timeout", noSession(http.HandlerFunc(app.testTimeout)))

	// Dashboard (most specific)
	mux.Handle("GET /{$}", session(http.HandlerFunc(app.dashboardGET)))

	// Everything else renders the not-found page.
	mux.Handle("/", session(http.HandlerFunc(app.notFound)))

	return mux, nil
}
