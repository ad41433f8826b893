package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
	"github.com/codewatch/exam-service/internal/runner"
	"github.com/codewatch/exam-service/internal/service"
)

type Handler struct {
	authService       service.AuthService
	tokenService      service.TokenService
	examService       service.ExamService
	questionService   service.QuestionService
	submissionService service.SubmissionService
	eventService      service.EventService
	userService       service.UserService
	codeRunner        *runner.Runner
	tokenAuth         *jwtauth.JWTAuth
	logger            zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	tokenService service.TokenService,
	examService service.ExamService,
	questionService service.QuestionService,
	submissionService service.SubmissionService,
	eventService service.EventService,
	userService service.UserService,
	codeRunner *runner.Runner,
	tokenAuth *jwtauth.JWTAuth,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		tokenService:      tokenService,
		examService:       examService,
		questionService:   questionService,
		submissionService: submissionService,
		eventService:      eventService,
		userService:       userService,
		codeRunner:        codeRunner,
		tokenAuth:         tokenAuth,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Post("/register", h.Register)
	router.Post("/login", h.Login)
	router.Post("/forgot-password", h.ForgotPassword)
	router.Post("/verify-reset-token", h.VerifyResetToken)
	router.Post("/reset-password", h.ResetPassword)

	router.Post("/submit", h.Submit)
	router.Get("/results/{studentID}", h.Results)
	router.Post("/events", h.IngestEvents)
	router.Post("/run", h.RunCode)
	router.Post("/grade/{submissionID}", h.Grade)

	router.Post("/exams", h.CreateExam)
	router.Get("/exams", h.ListAllExams)
	router.Get("/exams/faculty/{facultyID}", h.ListExamsByFaculty)
	// GET serves the student listing, DELETE removes an exam; chi needs one
	// wildcard name for both.
	router.Get("/exams/{id}", h.ListExamsForStudent)
	router.Delete("/exams/{id}", h.DeleteExam)
	router.Get("/exam/{examID}/questions", h.ExamDetail)

	router.Post("/questions", h.CreateQuestion)
	router.Get("/questions/{id}", h.ListQuestions)
	router.Delete("/questions/{id}", h.DeleteQuestion)

	router.Get("/submissions/{examID}", h.ExamSubmissions)
	router.Get("/graded-results", h.GradedResults)

	router.Route("/admin", func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokenAuth))
		r.Use(jwtauth.Authenticator(h.tokenAuth))
		r.Use(h.requireAdmin)

		r.Get("/users", h.ListUsers)
		r.Delete("/users/{userID}", h.DeleteUser)
		r.Post("/reset-password", h.AdminResetPassword)
		r.Get("/submissions", h.AllSubmissions)
		r.Get("/events", h.AllEvents)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "exam-service",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		if role, _ := claims["role"].(string); role != models.RoleAdmin.String() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.StatusResponse{
		Status:  "error",
		Message: message,
	})
}

func writeStatus(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, models.StatusResponse{
		Status:  "success",
		Message: message,
	})
}

// handleServiceError maps the error taxonomy onto HTTP statuses. Every
// failure kind surfaces with a distinguishing code; nothing is swallowed.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, repository.ErrBusy):
		writeError(w, http.StatusServiceUnavailable, "Store busy, please retry")
	case errors.Is(err, service.ErrDelivery):
		writeError(w, http.StatusBadGateway, "Failed to send reset email")
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
