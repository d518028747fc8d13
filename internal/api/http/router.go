package http

import (
	"net/http"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/realtime"
	"academyhub-backend/internal/security"
	"academyhub-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Tokens         security.TokenManager
	Auth           service.AuthService
	Invitations    service.InvitationService
	Academies      service.AcademyService
	Batches        service.BatchService
	Goals          service.GoalService
	Tasks          service.TaskService
	Chat           service.ChatService
	Hub            *realtime.Hub
	AllowedOrigins []string
}

// NewRouter assembles the full route table. Public routes carry no auth
// middleware; everything else requires a bearer login token, with role
// allow-lists on the mutating endpoints. Ownership checks beyond the
// role gate live in the services.
func NewRouter(d RouterDeps) *mux.Router {
	authH := NewAuthHandler(d.Auth)
	invH := NewInvitationHandler(d.Invitations)
	acadH := NewAcademyHandler(d.Academies, d.Batches)
	goalH := NewGoalHandler(d.Goals)
	taskH := NewTaskHandler(d.Tasks)
	chatH := NewChatHandler(d.Chat)

	r := mux.NewRouter()
	r.Use(CORS(d.AllowedOrigins))

	// Websocket endpoint authenticates via query token and hijacks the
	// connection, so it stays off the logged API subrouter.
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(d.AllowedOrigins),
	}
	r.HandleFunc("/ws", realtime.ServeWS(d.Hub, d.Tokens, upgrader))

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestLogger)

	// Public.
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/forgot-password", authH.ForgotPassword).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/auth/reset-password", authH.ResetPassword).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/invitations/verify", invH.Verify).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/invitations/accept", invH.Accept).Methods(http.MethodPost, http.MethodOptions)

	// Bearer-protected.
	auth := api.NewRoute().Subrouter()
	auth.Use(Authenticate(d.Tokens))

	inviters := RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleCoach)
	auth.Handle("/invitations", inviters(http.HandlerFunc(invH.Create))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/invitations", invH.List).Methods(http.MethodGet, http.MethodOptions)
	auth.Handle("/invitations/{id:[0-9]+}", inviters(http.HandlerFunc(invH.Edit))).Methods(http.MethodPatch, http.MethodOptions)
	auth.Handle("/invitations/{id:[0-9]+}", inviters(http.HandlerFunc(invH.Delete))).Methods(http.MethodDelete, http.MethodOptions)

	superAdmin := RequireRoles(domain.RoleSuperAdmin)
	auth.Handle("/academies", superAdmin(http.HandlerFunc(acadH.Create))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/academies", acadH.List).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/academies/{id:[0-9]+}", acadH.Get).Methods(http.MethodGet, http.MethodOptions)
	auth.Handle("/academies/{id:[0-9]+}", RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin)(http.HandlerFunc(acadH.Update))).Methods(http.MethodPatch, http.MethodOptions)

	admins := RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin)
	auth.Handle("/batches", admins(http.HandlerFunc(acadH.CreateBatch))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/batches", acadH.ListBatches).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/batches/{id:[0-9]+}", acadH.GetBatch).Methods(http.MethodGet, http.MethodOptions)

	auth.HandleFunc("/users/me", authH.Me).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/users/me/password", authH.ChangePassword).Methods(http.MethodPatch, http.MethodOptions)

	coaches := RequireRoles(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleCoach)
	auth.Handle("/goals/seasonal", coaches(http.HandlerFunc(goalH.CreateSeasonal))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/goals/seasonal", goalH.ListSeasonal).Methods(http.MethodGet, http.MethodOptions)
	auth.Handle("/goals/monthly", coaches(http.HandlerFunc(goalH.CreateMonthly))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/goals/monthly", goalH.ListMonthly).Methods(http.MethodGet, http.MethodOptions)
	auth.Handle("/goals/weekly", coaches(http.HandlerFunc(goalH.CreateWeekly))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/goals/weekly", goalH.ListWeekly).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/goals/student-weekly", goalH.CreateStudentWeekly).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/goals/student-weekly", goalH.ListStudentWeekly).Methods(http.MethodGet, http.MethodOptions)

	auth.Handle("/tasks", coaches(http.HandlerFunc(taskH.Create))).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/tasks", taskH.List).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/tasks/{id:[0-9]+}/status", taskH.UpdateStatus).Methods(http.MethodPatch, http.MethodOptions)

	auth.HandleFunc("/channels/{id:[0-9]+}/messages", chatH.SendMessage).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/channels/{id:[0-9]+}/messages", chatH.ListMessages).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/friend-requests", chatH.SendFriendRequest).Methods(http.MethodPost, http.MethodOptions)
	auth.HandleFunc("/friend-requests", chatH.ListFriendRequests).Methods(http.MethodGet, http.MethodOptions)
	auth.HandleFunc("/friend-requests/{id:[0-9]+}", chatH.RespondFriendRequest).Methods(http.MethodPatch, http.MethodOptions)

	return r
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
