package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/codewatch/exam-service/internal/models"
)

func (h *Handler) CreateExam(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.examService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.CreateExamResponse{
		Status:  "success",
		Message: "Exam created",
		ExamID:  id,
	})
}

func (h *Handler) ListAllExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.examService.GetAll(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exams)
}

func (h *Handler) ListExamsByFaculty(w http.ResponseWriter, r *http.Request) {
	facultyID, err := parseIDParam(r, "facultyID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid faculty id")
		return
	}

	exams, err := h.examService.GetByFaculty(r.Context(), facultyID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exams)
}

func (h *Handler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	examID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid exam id")
		return
	}

	if err := h.examService.Delete(r.Context(), examID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeStatus(w, "Exam deleted")
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.questionService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":      "success",
		"message":     "Question added",
		"question_id": id,
	})
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	facultyID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid faculty id")
		return
	}

	questions, err := h.questionService.GetByFaculty(r.Context(), facultyID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid question id")
		return
	}

	if err := h.questionService.Delete(r.Context(), questionID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeStatus(w, "Question deleted")
}

func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	submissionID, err := parseIDParam(r, "submissionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid submission id")
		return
	}

	var req models.GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.submissionService.Grade(r.Context(), submissionID, req.Score, req.Feedback); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeStatus(w, "Submission graded")
}

func (h *Handler) ExamSubmissions(w http.ResponseWriter, r *http.Request) {
	examID, err := parseIDParam(r, "examID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid exam id")
		return
	}

	subs, err := h.submissionService.GetByExam(r.Context(), examID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}

func (h *Handler) GradedResults(w http.ResponseWriter, r *http.Request) {
	subs, err := h.submissionService.GetGraded(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subs)
}
