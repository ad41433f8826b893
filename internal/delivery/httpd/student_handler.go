package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/codewatch/exam-service/internal/models"
)

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ExamID == 0 || req.StudentID == 0 || req.QuestionID == 0 || req.Code == "" {
		writeError(w, http.StatusBadRequest, "exam_id, student_id, question_id and code are required")
		return
	}

	id, err := h.submissionService.Submit(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":        "success",
		"message":       "Submission received",
		"submission_id": id,
	})
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	studentID, err := parseIDParam(r, "studentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	subs, err := h.submissionService.Results(r.Context(), studentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) IngestEvents(w http.ResponseWriter, r *http.Request) {
	var req models.IngestEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.StudentID == 0 {
		writeError(w, http.StatusBadRequest, "student_id is required")
		return
	}

	count, err := h.eventService.Ingest(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"logged": count,
	})
}

// RunCode executes untrusted student code. Failures inside the sandbox come
// back as output text with 200, not as an HTTP error; only a malformed
// request is rejected.
func (h *Handler) RunCode(w http.ResponseWriter, r *http.Request) {
	var req models.RunCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	output := h.codeRunner.Run(r.Context(), req.Code)

	writeJSON(w, http.StatusOK, models.RunCodeResponse{
		Status: "success",
		Output: output,
	})
}

func (h *Handler) ListExamsForStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	exams, err := h.examService.GetForStudent(r.Context(), studentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exams)
}

func (h *Handler) ExamDetail(w http.ResponseWriter, r *http.Request) {
	examID, err := parseIDParam(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid exam id")
		return
	}

	exam, err := h.examService.GetDetail(r.Context(), examID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exam)
}
