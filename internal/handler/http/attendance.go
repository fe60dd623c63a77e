package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/scanpoint/attend-backend-go/internal/domain/attendance"
	"github.com/scanpoint/attend-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	SetMode(w http.ResponseWriter, r *http.Request)
	GetMode(w http.ResponseWriter, r *http.Request)
	Manual(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListCheckIns(w http.ResponseWriter, r *http.Request)
	ListCheckOuts(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// SetMode implements AttendanceHandler. POST /attendance/mode/{action}
func (h *attendanceHandlerImpl) SetMode(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")

	mode, ok := attendance.ParseModeAction(action)
	if !ok {
		response.BadRequest(w, "Invalid mode. Use: check-in, check-out, or idle", nil)
		return
	}

	current := h.attendanceService.SetMode(mode)
	response.Success(w, attendance.ModeResponse{Mode: current})
}

// GetMode implements AttendanceHandler. GET /attendance/mode
func (h *attendanceHandlerImpl) GetMode(w http.ResponseWriter, r *http.Request) {
	response.Success(w, attendance.ModeResponse{Mode: h.attendanceService.GetMode()})
}

// Manual implements AttendanceHandler. POST /attendance/manual
func (h *attendanceHandlerImpl) Manual(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("failed to decode manual attendance request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.ManualAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Manual attendance recorded", result)
}

// List implements AttendanceHandler. GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListCheckIns implements AttendanceHandler. GET /attendance/check-ins
func (h *attendanceHandlerImpl) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListCheckIns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListCheckOuts implements AttendanceHandler. GET /attendance/check-outs
func (h *attendanceHandlerImpl) ListCheckOuts(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListCheckOuts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListByEmployee implements AttendanceHandler. GET /attendance/employee/{id}
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	result, err := h.attendanceService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
