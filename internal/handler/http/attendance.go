package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	SubmitRegularization(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	Duration(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func workerScopeFromQuery(r *http.Request) attendance.WorkerScope {
	var scope attendance.WorkerScope
	if workerID := r.URL.Query().Get("worker_id"); workerID != "" {
		scope.WorkerID = &workerID
	}
	return scope
}

func historyFilterFromQuery(r *http.Request) attendance.HistoryFilter {
	filter := attendance.HistoryFilter{
		WorkerScope: workerScopeFromQuery(r),
		Range:       r.URL.Query().Get("range"),
	}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	return filter
}

// RecordEvent implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode attendance event", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.RecordEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance event recorded", result)
}

// SubmitRegularization implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitRegularization(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitRegularizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode regularization", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.SubmitRegularization(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Regularization submitted", result)
}

func (h *attendanceHandlerImpl) review(w http.ResponseWriter, r *http.Request, approve bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid regularization id", nil)
		return
	}

	var req attendance.ReviewRegularizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id
	req.Approve = approve

	result, err := h.attendanceService.ReviewRegularization(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if approve {
		response.SuccessWithMessage(w, "Regularization approved successfully", result)
		return
	}
	response.SuccessWithMessage(w, "Regularization rejected successfully", result)
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

// Reject implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetHistory(r.Context(), historyFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetSummary(r.Context(), historyFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetToday(r.Context(), workerScopeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Overview implements AttendanceHandler.
func (h *attendanceHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetOverview(r.Context(), workerScopeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Duration implements AttendanceHandler.
func (h *attendanceHandlerImpl) Duration(w http.ResponseWriter, r *http.Request) {
	req := attendance.DurationRequest{
		WorkerScope: workerScopeFromQuery(r),
		Date:        r.URL.Query().Get("date"),
	}

	result, err := h.attendanceService.GetDurationLabel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
