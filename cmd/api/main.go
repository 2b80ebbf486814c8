package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gajihub/attendance-engine-go/internal/config"
	appHTTP "github.com/gajihub/attendance-engine-go/internal/handler/http"
	"github.com/gajihub/attendance-engine-go/internal/pkg/clock"
	"github.com/gajihub/attendance-engine-go/internal/pkg/cron"
	"github.com/gajihub/attendance-engine-go/internal/pkg/database"
	"github.com/gajihub/attendance-engine-go/internal/pkg/jwt"
	"github.com/gajihub/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/gajihub/attendance-engine-go/internal/service/attendance"
	"github.com/gajihub/attendance-engine-go/internal/service/jobs"
	leaveService "github.com/gajihub/attendance-engine-go/internal/service/leave"
	overtimeService "github.com/gajihub/attendance-engine-go/internal/service/overtime"
	payrollService "github.com/gajihub/attendance-engine-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.Default()
	clk := clock.System()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveQuotaRepo := postgresql.NewLeaveQuotaRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	settingsRepo := postgresql.NewPayrollSettingsRepository(db)
	rateRepo := postgresql.NewPayrollRateRepository(db)
	componentRepo := postgresql.NewPayrollComponentRepository(db)
	batchRepo := postgresql.NewPayrollBatchRepository(db)
	lineRepo := postgresql.NewPayrollLineRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)

	attendanceSvc := attendanceService.NewService(
		scheduleRepo, punchRepo, leaveRequestRepo, overtimeRepo, summaryRepo, clk,
	)
	leaveSvc := leaveService.NewService(
		db, leaveRequestRepo, leaveQuotaRepo, clk, cfg.Engine.QuotaRetryAttempts,
	)
	overtimeSvc := overtimeService.NewService(overtimeRepo, clk)
	rateTable := payrollService.NewRateTable(rateRepo)
	batchSvc := payrollService.NewBatchService(
		db, batchRepo, lineRepo, settingsRepo, componentRepo, employeeRepo,
		rateTable, attendanceSvc, cfg.Engine.BatchWorkers, logger,
	)
	configSvc := payrollService.NewConfigService(settingsRepo, rateRepo, componentRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(batchSvc, configSvc)

	scheduler := cron.NewScheduler()
	jobs.New(attendanceSvc, leaveSvc, employeeRepo, settingsRepo, clk, logger).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		leaveHandler,
		overtimeHandler,
		payrollHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
