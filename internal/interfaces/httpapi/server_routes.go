package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedChoreRoutes(mux, handler, verifier)
	registerAuthorizedDutyRoutes(mux, handler, verifier)
	registerAuthorizedAssignmentRoutes(mux, handler, verifier)
	registerAuthorizedProgressionRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/bootstrap", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunBootstrapJob)))
	mux.Handle("POST /v1/internal/jobs/daily-distribution", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDailyDistributionJob)))
	mux.Handle("POST /v1/internal/jobs/weekly-rotation", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWeeklyRotationJob)))
}

func registerAuthorizedChoreRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/households/{householdID}/chores", RequireAuth(verifier, http.HandlerFunc(handler.ListChores)))
	mux.Handle("POST /v1/households/{householdID}/chores", RequireAuth(verifier, http.HandlerFunc(handler.CreateChore)))
	mux.Handle("PUT /v1/households/{householdID}/chores/{choreID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateChore)))
	mux.Handle("DELETE /v1/households/{householdID}/chores/{choreID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteChore)))
}

func registerAuthorizedDutyRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/households/{householdID}/duties", RequireAuth(verifier, http.HandlerFunc(handler.ListDutyTypes)))
	mux.Handle("POST /v1/households/{householdID}/duties", RequireAuth(verifier, http.HandlerFunc(handler.CreateDutyType)))
	mux.Handle("PUT /v1/households/{householdID}/duties/{dutyTypeID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateDutyType)))
	mux.Handle("DELETE /v1/households/{householdID}/duties/{dutyTypeID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteDutyType)))
	mux.Handle("GET /v1/households/{householdID}/duties/{dutyTypeID}/rotation-order", RequireAuth(verifier, http.HandlerFunc(handler.GetRotationOrder)))
	mux.Handle("PUT /v1/households/{householdID}/duties/{dutyTypeID}/rotation-order", RequireAuth(verifier, http.HandlerFunc(handler.SetRotationOrder)))
	mux.Handle("POST /v1/households/{householdID}/duties/{dutyTypeID}/rotate", RequireAuth(verifier, http.HandlerFunc(handler.RotateDutyNow)))
	mux.Handle("GET /v1/households/{householdID}/duties/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetDutyRoster)))
}

func registerAuthorizedAssignmentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/households/{householdID}/assignments/daily", RequireAuth(verifier, http.HandlerFunc(handler.ListDailyAssignments)))
	mux.Handle("POST /v1/households/{householdID}/assignments/distribute", RequireAuth(verifier, http.HandlerFunc(handler.RunDistributionNow)))
	mux.Handle("POST /v1/households/{householdID}/assignments/daily", RequireAuth(verifier, http.HandlerFunc(handler.CreateManualAssignment)))
	mux.Handle("POST /v1/households/{householdID}/assignments/daily/{assignmentID}/complete", RequireAuth(verifier, http.HandlerFunc(handler.CompleteAssignment)))
	mux.Handle("DELETE /v1/households/{householdID}/assignments/daily/{assignmentID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteAssignment)))
	mux.Handle("GET /v1/households/{householdID}/assignments/summary", RequireAuth(verifier, http.HandlerFunc(handler.GetWeeklySummary)))
	mux.Handle("GET /v1/households/{householdID}/assignments/weeks", RequireAuth(verifier, http.HandlerFunc(handler.ListWeeks)))
}

func registerAuthorizedProgressionRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/households/{householdID}/leaderboard", RequireAuth(verifier, http.HandlerFunc(handler.GetLeaderboard)))
	mux.Handle("GET /v1/households/{householdID}/members/{memberID}/stats", RequireAuth(verifier, http.HandlerFunc(handler.GetMemberStats)))
}
