package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/scanpoint/attend-backend-go/internal/domain/attendance"
	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
	"github.com/scanpoint/attend-backend-go/internal/pkg/hub"
	"github.com/shopspring/decimal"
)

// EventAttendance is the monitor event carrying every scan outcome,
// rejections included, so operators see the full audit trail of attempts.
const EventAttendance = "attendance"

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	directory      employee.EmployeeDirectory
	hub            *hub.Hub

	// The process-wide operating mode. Guarded by mu so concurrent
	// scans and mode changes see a consistent value; each scan
	// snapshots the mode once at the start of processing and a change
	// mid-scan does not retroactively affect it.
	mu   sync.RWMutex
	mode attendance.Mode
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	directory employee.EmployeeDirectory,
	h *hub.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		directory:      directory,
		hub:            h,
		mode:           attendance.ModeIdle,
	}
}

// SetMode implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) SetMode(mode attendance.Mode) attendance.Mode {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	slog.Info("system mode changed", "mode", mode)
	s.hub.Broadcast(hub.RoleDevice, mode.Command(), struct{}{})

	return mode
}

// GetMode implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMode() attendance.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// HandleScan implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) HandleScan(ctx context.Context, fingerID int) (attendance.ScanResult, error) {
	// The mode read here governs the whole scan.
	mode := s.GetMode()

	if mode == attendance.ModeIdle {
		slog.Info("scan ignored, system is idle", "finger_id", fingerID)
		return s.publishResult(attendance.ScanResult{
			Success: false,
			Message: attendance.MsgSystemIdle,
		}), nil
	}

	emp, err := s.directory.GetByFingerID(ctx, fingerID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Info("scan for unknown fingerprint", "finger_id", fingerID)
			return s.publishResult(attendance.ScanResult{
				Success: false,
				Message: attendance.MsgFingerprintUnknown,
			}), nil
		}
		return attendance.ScanResult{}, fmt.Errorf("failed to resolve finger ID %d: %w", fingerID, err)
	}

	now := attendance.Now()

	var result attendance.ScanResult
	switch mode {
	case attendance.ModeCheckIn:
		_, err := s.applyCheckIn(ctx, emp.ID, now)
		switch {
		case err == nil:
			result = attendance.ScanResult{
				Success:      true,
				EmployeeName: emp.FullName,
				Timestamp:    &now,
				Type:         attendance.TypeCheckIn,
			}
		case errors.Is(err, attendance.ErrAlreadyCheckedIn):
			result = attendance.ScanResult{
				Success:      false,
				Message:      attendance.MsgAlreadyCheckedIn,
				EmployeeName: emp.FullName,
			}
		default:
			return attendance.ScanResult{}, err
		}

	case attendance.ModeCheckOut:
		_, err := s.applyCheckOut(ctx, emp.ID, now)
		switch {
		case err == nil:
			result = attendance.ScanResult{
				Success:      true,
				EmployeeName: emp.FullName,
				Timestamp:    &now,
				Type:         attendance.TypeCheckOut,
			}
		case errors.Is(err, attendance.ErrNoCheckInFound):
			result = attendance.ScanResult{
				Success:      false,
				Message:      attendance.MsgNoCheckInFound,
				EmployeeName: emp.FullName,
			}
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			result = attendance.ScanResult{
				Success:      false,
				Message:      attendance.MsgAlreadyCheckedOut,
				EmployeeName: emp.FullName,
			}
		default:
			return attendance.ScanResult{}, err
		}
	}

	return s.publishResult(result), nil
}

// publishResult fans the outcome out to monitors. Broadcast is
// best-effort and not ordered relative to storage commit across scans.
func (s *AttendanceServiceImpl) publishResult(result attendance.ScanResult) attendance.ScanResult {
	s.hub.Broadcast(hub.RoleMonitor, EventAttendance, result)
	return result
}

// applyCheckIn creates the day's record. The insert races directly
// against the (employee_id, date) unique key instead of checking
// existence first: the conflict is the idempotency signal, which holds
// even for two simultaneous scans of the same finger.
func (s *AttendanceServiceImpl) applyCheckIn(ctx context.Context, employeeID string, t time.Time) (attendance.Attendance, error) {
	att := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       attendance.DayKey(t),
		CheckIn:    &t,
		Status:     attendance.StatusPresent,
		WorkHours:  decimal.Zero,
	}

	created, err := s.attendanceRepo.Insert(ctx, att)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, err
	}

	return created, nil
}

// applyCheckOut closes the day's record and computes worked hours.
func (s *AttendanceServiceImpl) applyCheckOut(ctx context.Context, employeeID string, t time.Time) (attendance.Attendance, error) {
	latest, err := s.attendanceRepo.FindByEmployeeAndDay(ctx, employeeID, attendance.DayKey(t))
	if err != nil {
		return attendance.Attendance{}, err
	}
	if latest == nil || latest.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNoCheckInFound
	}
	if latest.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	latest.CheckOut = &t
	latest.WorkHours = attendance.WorkHours(*latest.CheckIn, t)

	if err := s.attendanceRepo.Update(ctx, *latest); err != nil {
		return attendance.Attendance{}, err
	}

	return *latest, nil
}

// ManualAttendance implements attendance.AttendanceService. It shares
// the check-in/check-out helpers with HandleScan so the administrative
// path can never drift from the hardware path's business rules.
func (s *AttendanceServiceImpl) ManualAttendance(ctx context.Context, req attendance.ManualAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at, err := req.At()
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse manual attendance instant: %w", err)
	}

	emp, err := s.directory.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var att attendance.Attendance
	switch req.Type {
	case attendance.TypeCheckIn:
		att, err = s.applyCheckIn(ctx, emp.ID, at)
	case attendance.TypeCheckOut:
		att, err = s.applyCheckOut(ctx, emp.ID, at)
	}
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("manual attendance recorded",
		"employee_id", emp.ID,
		"type", req.Type,
		"date", att.Date,
	)

	att.EmployeeName = &emp.FullName
	att.EmployeePosition = emp.Position
	return attendance.NewAttendanceResponse(att), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	list, err := s.attendanceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(list), nil
}

// ListCheckIns implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListCheckIns(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	list, err := s.attendanceRepo.ListCheckIns(ctx)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(list), nil
}

// ListCheckOuts implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListCheckOuts(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	list, err := s.attendanceRepo.ListCheckOuts(ctx)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(list), nil
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if _, err := s.directory.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	list, err := s.attendanceRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return attendance.NewAttendanceResponses(list), nil
}
