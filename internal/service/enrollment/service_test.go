package enrollment

import (
	"context"
	"sync"
	"testing"

	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
	"github.com/scanpoint/attend-backend-go/internal/domain/enrollment"
	"github.com/scanpoint/attend-backend-go/internal/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	emp1ID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b01"
	emp2ID = "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b02"
)

type fakeDirectory struct {
	mu   sync.Mutex
	byID map[string]employee.Employee
}

func newFakeDirectory(emps ...employee.Employee) *fakeDirectory {
	d := &fakeDirectory{byID: make(map[string]employee.Employee)}
	for _, e := range emps {
		d.byID[e.ID] = e
	}
	return d
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeDirectory) GetByFingerID(_ context.Context, fingerID int) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, emp := range f.byID {
		if emp.FingerID != nil && *emp.FingerID == fingerID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeDirectory) UpdateFingerID(_ context.Context, employeeID string, fingerID int) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	emp, ok := f.byID[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.FingerID = &fingerID
	f.byID[employeeID] = emp
	return emp, nil
}

func (f *fakeDirectory) MaxAssignedFingerID(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	max := 0
	for _, emp := range f.byID {
		if emp.FingerID != nil && *emp.FingerID > max {
			max = *emp.FingerID
		}
	}
	return max, nil
}

func (f *fakeDirectory) List(_ context.Context) ([]employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []employee.Employee
	for _, emp := range f.byID {
		list = append(list, emp)
	}
	return list, nil
}

func (f *fakeDirectory) fingerID(employeeID string) *int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[employeeID].FingerID
}

func newTestService(t *testing.T, dir *fakeDirectory) (enrollment.Service, *hub.Client, *hub.Client) {
	t.Helper()
	h := hub.NewHub()
	device, cleanupDevice := h.Register(hub.RoleDevice)
	monitor, cleanupMonitor := h.Register(hub.RoleMonitor)
	t.Cleanup(cleanupDevice)
	t.Cleanup(cleanupMonitor)
	return NewEnrollmentService(dir, h), device, monitor
}

func drain(c *hub.Client) []hub.Envelope {
	var events []hub.Envelope
	for {
		select {
		case ev := <-c.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func TestEnrollment_RoundTrip(t *testing.T) {
	fingerID := 100
	dir := newFakeDirectory(
		employee.Employee{ID: emp1ID, FullName: "Linh Tran"},
		employee.Employee{ID: emp2ID, FullName: "Minh Pham", FingerID: &fingerID},
	)
	svc, device, monitor := newTestService(t, dir)
	ctx := context.Background()

	started, err := svc.StartEnroll(ctx, emp1ID)
	require.NoError(t, err)
	assert.Equal(t, emp1ID, started.EmployeeID)
	// One greater than the highest assigned slot, never reused.
	assert.Equal(t, 101, started.FingerID)

	deviceEvents := drain(device)
	require.Len(t, deviceEvents, 1)
	assert.Equal(t, EventEnrollCmd, deviceEvents[0].Event)
	assert.Equal(t, map[string]int{"fingerId": 101}, deviceEvents[0].Data)

	require.NoError(t, svc.FinishEnroll(ctx, 101, true))

	bound := dir.fingerID(emp1ID)
	require.NotNil(t, bound)
	assert.Equal(t, 101, *bound)

	monitorEvents := drain(monitor)
	require.Len(t, monitorEvents, 1)
	assert.Equal(t, EventEnrollUpdate, monitorEvents[0].Event)
	update, ok := monitorEvents[0].Data.(enrollment.EnrollUpdate)
	require.True(t, ok)
	assert.True(t, update.Success)
	assert.Equal(t, emp1ID, update.EmployeeID)
	assert.Equal(t, 101, update.FingerID)
}

func TestEnrollment_DeviceFailureLeavesBindingUnchanged(t *testing.T) {
	dir := newFakeDirectory(employee.Employee{ID: emp1ID, FullName: "Linh Tran"})
	svc, _, monitor := newTestService(t, dir)
	ctx := context.Background()

	_, err := svc.StartEnroll(ctx, emp1ID)
	require.NoError(t, err)

	require.NoError(t, svc.FinishEnroll(ctx, 1, false))

	assert.Nil(t, dir.fingerID(emp1ID))

	events := drain(monitor)
	require.Len(t, events, 1)
	update, ok := events[0].Data.(enrollment.EnrollUpdate)
	require.True(t, ok)
	assert.False(t, update.Success)
}

func TestEnrollment_ResultWithNoPendingIsNoop(t *testing.T) {
	dir := newFakeDirectory(employee.Employee{ID: emp1ID})
	svc, _, monitor := newTestService(t, dir)

	require.NoError(t, svc.FinishEnroll(context.Background(), 7, true))

	assert.Nil(t, dir.fingerID(emp1ID))
	assert.Empty(t, drain(monitor))
}

func TestEnrollment_SlotClearedAfterResult(t *testing.T) {
	dir := newFakeDirectory(employee.Employee{ID: emp1ID})
	svc, _, monitor := newTestService(t, dir)
	ctx := context.Background()

	_, err := svc.StartEnroll(ctx, emp1ID)
	require.NoError(t, err)
	require.NoError(t, svc.FinishEnroll(ctx, 1, true))
	drain(monitor)

	// A second result for the same finger finds the slot empty.
	require.NoError(t, svc.FinishEnroll(ctx, 1, true))
	assert.Empty(t, drain(monitor))
}

func TestEnrollment_SecondStartOverwritesPending(t *testing.T) {
	dir := newFakeDirectory(
		employee.Employee{ID: emp1ID, FullName: "Linh Tran"},
		employee.Employee{ID: emp2ID, FullName: "Minh Pham"},
	)
	svc, _, _ := newTestService(t, dir)
	ctx := context.Background()

	_, err := svc.StartEnroll(ctx, emp1ID)
	require.NoError(t, err)
	second, err := svc.StartEnroll(ctx, emp2ID)
	require.NoError(t, err)

	// The in-flight confirmation from the first command binds to the
	// overwriting target; the first employee stays unbound.
	require.NoError(t, svc.FinishEnroll(ctx, second.FingerID, true))
	assert.Nil(t, dir.fingerID(emp1ID))
	require.NotNil(t, dir.fingerID(emp2ID))
	assert.Equal(t, second.FingerID, *dir.fingerID(emp2ID))
}

func TestEnrollment_ResetClearsPending(t *testing.T) {
	dir := newFakeDirectory(employee.Employee{ID: emp1ID})
	svc, _, monitor := newTestService(t, dir)
	ctx := context.Background()

	_, err := svc.StartEnroll(ctx, emp1ID)
	require.NoError(t, err)

	svc.ResetEnroll()

	require.NoError(t, svc.FinishEnroll(ctx, 1, true))
	assert.Nil(t, dir.fingerID(emp1ID))
	assert.Empty(t, drain(monitor))
}

func TestEnrollment_ListEmployeesReportsEnrollmentState(t *testing.T) {
	fingerID := 100
	dir := newFakeDirectory(
		employee.Employee{ID: emp1ID, FullName: "Linh Tran"},
		employee.Employee{ID: emp2ID, FullName: "Minh Pham", FingerID: &fingerID},
	)
	svc, _, _ := newTestService(t, dir)

	list, err := svc.ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	enrolled := 0
	for _, e := range list {
		if e.Enrolled {
			enrolled++
		}
	}
	assert.Equal(t, 1, enrolled)
}

func TestEnrollment_UnknownEmployee(t *testing.T) {
	dir := newFakeDirectory()
	svc, device, _ := newTestService(t, dir)

	_, err := svc.StartEnroll(context.Background(), emp1ID)

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, drain(device))
}
