package main

import (
	"fmt"
	"net/http"

	appHTTP "github.com/scanpoint/attend-backend-go/internal/handler/http"
	"github.com/scanpoint/attend-backend-go/internal/handler/ws"

	"github.com/scanpoint/attend-backend-go/internal/config"
	"github.com/scanpoint/attend-backend-go/internal/pkg/database"
	"github.com/scanpoint/attend-backend-go/internal/pkg/hub"
	"github.com/scanpoint/attend-backend-go/internal/pkg/jwt"
	"github.com/scanpoint/attend-backend-go/internal/repository/postgresql"
	attendanceService "github.com/scanpoint/attend-backend-go/internal/service/attendance"
	enrollmentService "github.com/scanpoint/attend-backend-go/internal/service/enrollment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeDirectory := postgresql.NewEmployeeDirectory(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	broadcastHub := hub.NewHub()

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeDirectory, broadcastHub)
	enrollmentSvc := enrollmentService.NewEnrollmentService(employeeDirectory, broadcastHub)

	gateway := ws.NewGateway(broadcastHub, attendanceSvc, enrollmentSvc, cfg.WS.AllowedOrigins)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	enrollmentHandler := appHTTP.NewEnrollmentHandler(enrollmentSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		enrollmentHandler,
		gateway,
		cfg.WS.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
