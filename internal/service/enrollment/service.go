package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
	"github.com/scanpoint/attend-backend-go/internal/domain/enrollment"
	"github.com/scanpoint/attend-backend-go/internal/pkg/hub"
)

const (
	// EventEnrollCmd tells devices to program a fingerprint slot. The
	// protocol has no device identity, so the command goes to every
	// device connection; multi-device sites cannot target one unit.
	EventEnrollCmd = "cmd_enroll"

	// EventEnrollUpdate reports the enrollment outcome to monitors.
	EventEnrollUpdate = "enroll_update"
)

type pendingEnrollment struct {
	employeeID string
	fingerID   int
}

type ServiceImpl struct {
	directory employee.EmployeeDirectory
	hub       *hub.Hub

	// Single-slot pending state, process-wide. Guarded by mu; the slot
	// is cleared unconditionally when a result arrives.
	mu      sync.Mutex
	pending *pendingEnrollment
}

func NewEnrollmentService(directory employee.EmployeeDirectory, h *hub.Hub) enrollment.Service {
	return &ServiceImpl{
		directory: directory,
		hub:       h,
	}
}

// StartEnroll implements enrollment.Service.
func (s *ServiceImpl) StartEnroll(ctx context.Context, employeeID string) (enrollment.StartEnrollResponse, error) {
	emp, err := s.directory.GetByID(ctx, employeeID)
	if err != nil {
		return enrollment.StartEnrollResponse{}, err
	}

	fingerID, err := s.NextFingerID(ctx)
	if err != nil {
		return enrollment.StartEnrollResponse{}, err
	}

	s.mu.Lock()
	if s.pending != nil {
		// Known limitation carried over from the deployed system: a
		// second start silently replaces the pending target, and an
		// in-flight device confirmation will bind to the new one.
		slog.Warn("overwriting pending enrollment",
			"previous_employee_id", s.pending.employeeID,
			"new_employee_id", emp.ID,
		)
	}
	s.pending = &pendingEnrollment{employeeID: emp.ID, fingerID: fingerID}
	s.mu.Unlock()

	slog.Info("enrollment started", "employee_id", emp.ID, "finger_id", fingerID)
	s.hub.Broadcast(hub.RoleDevice, EventEnrollCmd, map[string]int{"fingerId": fingerID})

	return enrollment.StartEnrollResponse{EmployeeID: emp.ID, FingerID: fingerID}, nil
}

// FinishEnroll implements enrollment.Service.
func (s *ServiceImpl) FinishEnroll(ctx context.Context, fingerID int, success bool) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending == nil {
		slog.Info("enrollment result with no pending enrollment", "finger_id", fingerID, "success", success)
		return nil
	}

	update := enrollment.EnrollUpdate{
		EmployeeID: pending.employeeID,
		Success:    success,
		FingerID:   fingerID,
	}

	if success {
		if _, err := s.directory.UpdateFingerID(ctx, pending.employeeID, fingerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) || errors.Is(err, employee.ErrFingerIDTaken) {
				update.Success = false
				update.Message = err.Error()
				s.hub.Broadcast(hub.RoleMonitor, EventEnrollUpdate, update)
				return err
			}
			return fmt.Errorf("failed to bind finger ID %d to employee %s: %w", fingerID, pending.employeeID, err)
		}
		slog.Info("enrollment bound", "employee_id", pending.employeeID, "finger_id", fingerID)
	} else {
		slog.Info("enrollment failed on device", "employee_id", pending.employeeID, "finger_id", fingerID)
	}

	s.hub.Broadcast(hub.RoleMonitor, EventEnrollUpdate, update)
	return nil
}

// ResetEnroll implements enrollment.Service.
func (s *ServiceImpl) ResetEnroll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		slog.Info("pending enrollment reset", "employee_id", s.pending.employeeID)
	}
	s.pending = nil
}

// ListEmployees implements enrollment.Service.
func (s *ServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	list, err := s.directory.List(ctx)
	if err != nil {
		return nil, err
	}
	return employee.NewEmployeeResponses(list), nil
}

// NextFingerID allocates one greater than the highest assigned slot.
// Slots are never reused, so a new binding cannot collide with a
// previously deleted employee's template still stored on hardware.
func (s *ServiceImpl) NextFingerID(ctx context.Context) (int, error) {
	max, err := s.directory.MaxAssignedFingerID(ctx)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}
