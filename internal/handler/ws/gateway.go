package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/scanpoint/attend-backend-go/internal/domain/attendance"
	"github.com/scanpoint/attend-backend-go/internal/domain/enrollment"
	"github.com/scanpoint/attend-backend-go/internal/pkg/hub"
)

// Inbound event names, sent by scanning hardware.
const (
	EventScan         = "scan"
	EventEnrollResult = "enroll_result"
)

const writeTimeout = 5 * time.Second

// envelope is the JSON message frame shared with devices and monitors:
// {"event": "...", "data": {...}}.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type scanPayload struct {
	FingerID int `json:"fingerId"`
}

type enrollResultPayload struct {
	FingerID int  `json:"fingerId"`
	Success  bool `json:"success"`
}

// Gateway upgrades persistent connections, classifies them by role and
// bridges the wire protocol to the attendance and enrollment services.
type Gateway struct {
	hub               *hub.Hub
	attendanceService attendance.AttendanceService
	enrollmentService enrollment.Service
	allowedOrigins    []string
}

func NewGateway(
	h *hub.Hub,
	attendanceService attendance.AttendanceService,
	enrollmentService enrollment.Service,
	allowedOrigins []string,
) *Gateway {
	return &Gateway{
		hub:               h,
		attendanceService: attendanceService,
		enrollmentService: enrollmentService,
		allowedOrigins:    allowedOrigins,
	}
}

// Handle serves GET /ws?type=device|monitor. Role classification
// happens once here and is immutable for the life of the connection.
func (g *Gateway) Handle(w http.ResponseWriter, r *http.Request) {
	var role hub.Role
	switch r.URL.Query().Get("type") {
	case "device":
		role = hub.RoleDevice
	case "monitor":
		role = hub.RoleMonitor
	default:
		http.Error(w, "unknown client type, use ?type=device or ?type=monitor", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: g.allowedOrigins,
	})
	if err != nil {
		slog.Error("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	client, cleanup := g.hub.Register(role)
	defer cleanup()

	slog.Info("client connected", "role", role, "client_id", client.ID)
	defer slog.Info("client disconnected", "role", role, "client_id", client.ID)

	ctx := r.Context()
	go g.writePump(ctx, conn, client)

	// Late-joining hardware is synchronized immediately instead of
	// waiting for the next mode change.
	if role == hub.RoleDevice {
		g.hub.Send(client, g.attendanceService.GetMode().Command(), struct{}{})
	}

	g.readLoop(ctx, conn, client)
}

// writePump drains the client's hub channel onto the connection. It
// exits when the channel is closed by the hub cleanup or a write fails.
func (g *Gateway) writePump(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	for ev := range client.Events() {
		msg, err := json.Marshal(ev)
		if err != nil {
			slog.Error("failed to marshal event", "event", ev.Event, "error", err)
			continue
		}

		writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
		err = conn.Write(writeCtx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			return
		}
	}
}

func (g *Gateway) readLoop(ctx context.Context, conn *websocket.Conn, client *hub.Client) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.Warn("malformed message", "client_id", client.ID, "error", err)
			continue
		}

		g.dispatch(ctx, client, env)
	}
}

func (g *Gateway) dispatch(ctx context.Context, client *hub.Client, env envelope) {
	switch env.Event {
	case EventScan:
		var p scanPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			slog.Warn("malformed scan payload", "client_id", client.ID, "error", err)
			return
		}
		slog.Info("scan received", "finger_id", p.FingerID, "client_id", client.ID)
		if _, err := g.attendanceService.HandleScan(ctx, p.FingerID); err != nil {
			slog.Error("scan processing failed", "finger_id", p.FingerID, "error", err)
		}

	case EventEnrollResult:
		var p enrollResultPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			slog.Warn("malformed enroll_result payload", "client_id", client.ID, "error", err)
			return
		}
		slog.Info("enroll result received", "finger_id", p.FingerID, "success", p.Success)
		if err := g.enrollmentService.FinishEnroll(ctx, p.FingerID, p.Success); err != nil {
			slog.Error("enrollment completion failed", "finger_id", p.FingerID, "error", err)
		}

	default:
		slog.Warn("unknown event", "event", env.Event, "client_id", client.ID)
	}
}
