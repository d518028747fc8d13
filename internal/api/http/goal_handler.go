package http

import (
	"net/http"
	"strconv"

	"academyhub-backend/internal/domain"
	"academyhub-backend/internal/service"
)

type GoalHandler struct {
	goals service.GoalService
}

func NewGoalHandler(goals service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// The four levels share the decode/respond shape and differ only in
// which service method they call.
func (h *GoalHandler) create(w http.ResponseWriter, r *http.Request, call func(requesterID int32, in service.CreateGoalInput) (any, error)) {
	p, _ := PrincipalFrom(r.Context())

	var in service.CreateGoalInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	goal, err := call(p.UserID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

func (h *GoalHandler) CreateSeasonal(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(requesterID int32, in service.CreateGoalInput) (any, error) {
		return h.goals.CreateSeasonal(r.Context(), requesterID, in)
	})
}

func (h *GoalHandler) CreateMonthly(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(requesterID int32, in service.CreateGoalInput) (any, error) {
		return h.goals.CreateMonthly(r.Context(), requesterID, in)
	})
}

func (h *GoalHandler) CreateWeekly(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(requesterID int32, in service.CreateGoalInput) (any, error) {
		return h.goals.CreateWeekly(r.Context(), requesterID, in)
	})
}

func (h *GoalHandler) CreateStudentWeekly(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, func(requesterID int32, in service.CreateGoalInput) (any, error) {
		return h.goals.CreateStudentWeekly(r.Context(), requesterID, in)
	})
}

// queryID reads a required int32 query parameter for the list endpoints.
func queryID(r *http.Request, name string) (int32, error) {
	raw := r.URL.Query().Get(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.E(domain.CodeBadRequest, name+" query parameter is required")
	}
	return int32(id), nil
}

func (h *GoalHandler) ListSeasonal(w http.ResponseWriter, r *http.Request) {
	academyID, err := queryID(r, "academy_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goals.ListSeasonal(r.Context(), academyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) ListMonthly(w http.ResponseWriter, r *http.Request) {
	parentID, err := queryID(r, "seasonal_goal_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goals.ListMonthly(r.Context(), parentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) ListWeekly(w http.ResponseWriter, r *http.Request) {
	parentID, err := queryID(r, "monthly_goal_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goals.ListWeekly(r.Context(), parentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) ListStudentWeekly(w http.ResponseWriter, r *http.Request) {
	studentID, err := queryID(r, "student_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	goals, err := h.goals.ListStudentWeekly(r.Context(), studentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}
