package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/scanpoint/attend-backend-go/internal/domain/attendance"
	"github.com/scanpoint/attend-backend-go/internal/domain/employee"
	"github.com/scanpoint/attend-backend-go/internal/domain/enrollment"
	"github.com/scanpoint/attend-backend-go/internal/pkg/hub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttendanceService struct {
	h     *hub.Hub
	mode  attendance.Mode
	scans chan int
}

func (s *stubAttendanceService) SetMode(mode attendance.Mode) attendance.Mode {
	s.mode = mode
	return mode
}

func (s *stubAttendanceService) GetMode() attendance.Mode {
	return s.mode
}

func (s *stubAttendanceService) HandleScan(_ context.Context, fingerID int) (attendance.ScanResult, error) {
	s.scans <- fingerID
	result := attendance.ScanResult{Success: true, EmployeeName: "Linh Tran", Type: attendance.TypeCheckIn}
	s.h.Broadcast(hub.RoleMonitor, "attendance", result)
	return result, nil
}

func (s *stubAttendanceService) ManualAttendance(context.Context, attendance.ManualAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (s *stubAttendanceService) List(context.Context) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) ListCheckIns(context.Context) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) ListCheckOuts(context.Context) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

func (s *stubAttendanceService) ListByEmployee(context.Context, string) ([]attendance.AttendanceResponse, error) {
	return nil, nil
}

type enrollResult struct {
	fingerID int
	success  bool
}

type stubEnrollmentService struct {
	results chan enrollResult
}

func (s *stubEnrollmentService) StartEnroll(context.Context, string) (enrollment.StartEnrollResponse, error) {
	return enrollment.StartEnrollResponse{}, nil
}

func (s *stubEnrollmentService) FinishEnroll(_ context.Context, fingerID int, success bool) error {
	s.results <- enrollResult{fingerID: fingerID, success: success}
	return nil
}

func (s *stubEnrollmentService) ResetEnroll() {}

func (s *stubEnrollmentService) ListEmployees(context.Context) ([]employee.EmployeeResponse, error) {
	return nil, nil
}

func newTestGateway(t *testing.T) (*httptest.Server, *hub.Hub, *stubAttendanceService, *stubEnrollmentService) {
	t.Helper()
	h := hub.NewHub()
	attSvc := &stubAttendanceService{h: h, mode: attendance.ModeCheckIn, scans: make(chan int, 8)}
	enrollSvc := &stubEnrollmentService{results: make(chan enrollResult, 8)}
	gateway := NewGateway(h, attSvc, enrollSvc, nil)

	server := httptest.NewServer(http.HandlerFunc(gateway.Handle))
	t.Cleanup(server.Close)
	return server, h, attSvc, enrollSvc
}

func dial(t *testing.T, server *httptest.Server, clientType string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?type=" + clientType
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func writeEnvelope(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	msg, err := json.Marshal(map[string]any{"event": event, "data": json.RawMessage(raw)})
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, msg))
}

func TestGateway_DeviceGetsCurrentModeOnConnect(t *testing.T) {
	server, _, attSvc, _ := newTestGateway(t)
	attSvc.mode = attendance.ModeCheckOut

	conn := dial(t, server, "device")

	// Late joiner is synchronized without waiting for a mode change.
	env := readEnvelope(t, conn)
	assert.Equal(t, "cmd_checkout", env.Event)
}

func TestGateway_ScanReachesEngineAndMonitors(t *testing.T) {
	server, _, attSvc, _ := newTestGateway(t)

	device := dial(t, server, "device")
	readEnvelope(t, device) // initial mode command

	monitor := dial(t, server, "monitor")

	writeEnvelope(t, device, EventScan, map[string]int{"fingerId": 101})

	select {
	case fingerID := <-attSvc.scans:
		assert.Equal(t, 101, fingerID)
	case <-time.After(2 * time.Second):
		t.Fatal("scan never reached the attendance engine")
	}

	env := readEnvelope(t, monitor)
	assert.Equal(t, "attendance", env.Event)

	var result attendance.ScanResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Linh Tran", result.EmployeeName)
}

func TestGateway_EnrollResultReachesCoordinator(t *testing.T) {
	server, _, _, enrollSvc := newTestGateway(t)

	device := dial(t, server, "device")
	readEnvelope(t, device)

	writeEnvelope(t, device, EventEnrollResult, map[string]any{"fingerId": 7, "success": true})

	select {
	case result := <-enrollSvc.results:
		assert.Equal(t, 7, result.fingerID)
		assert.True(t, result.success)
	case <-time.After(2 * time.Second):
		t.Fatal("enroll result never reached the coordinator")
	}
}

func TestGateway_UnknownClientTypeRejected(t *testing.T) {
	server, _, _, _ := newTestGateway(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?type=toaster"
	_, resp, err := websocket.Dial(ctx, url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGateway_DisconnectUnregistersImmediately(t *testing.T) {
	server, h, _, _ := newTestGateway(t)

	monitor := dial(t, server, "monitor")
	require.Eventually(t, func() bool { return h.Count(hub.RoleMonitor) == 1 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, monitor.Close(websocket.StatusNormalClosure, ""))

	require.Eventually(t, func() bool { return h.Count(hub.RoleMonitor) == 0 },
		2*time.Second, 10*time.Millisecond)
}
