package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/attendly/attendance-backend-go/internal/config"
	appHTTP "github.com/attendly/attendance-backend-go/internal/handler/http"
	"github.com/attendly/attendance-backend-go/internal/pkg/cron"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	analyticsService "github.com/attendly/attendance-backend-go/internal/service/analytics"
	attendanceService "github.com/attendly/attendance-backend-go/internal/service/attendance"
	correctionService "github.com/attendly/attendance-backend-go/internal/service/correction"
	"github.com/attendly/attendance-backend-go/internal/service/export"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	policy, err := cfg.AttendancePolicy()
	if err != nil {
		fmt.Println("Error building attendance policy:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, policy)
	correctionSvc := correctionService.NewCorrectionService(attendanceRepo, policy)
	analyticsSvc := analyticsService.NewAnalyticsService(attendanceRepo, employeeRepo, policy)
	exporters := export.NewRegistry()

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, policy, cfg.Attendance.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewCorrectionHandler(correctionSvc),
		appHTTP.NewAnalyticsHandler(analyticsSvc),
		appHTTP.NewReportHandler(analyticsSvc, exporters),
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	_ = server.Close()
}
