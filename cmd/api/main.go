package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/payroll-exception-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-exception-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/cron"
	"github.com/cmlabs-hris/payroll-exception-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-exception-go/internal/repository/postgresql"
	claimService "github.com/cmlabs-hris/payroll-exception-go/internal/service/claim"
	cutoffService "github.com/cmlabs-hris/payroll-exception-go/internal/service/cutoff"
	packageService "github.com/cmlabs-hris/payroll-exception-go/internal/service/datapackage"
	disputeService "github.com/cmlabs-hris/payroll-exception-go/internal/service/dispute"
	notificationService "github.com/cmlabs-hris/payroll-exception-go/internal/service/notification"
	readinessService "github.com/cmlabs-hris/payroll-exception-go/internal/service/readiness"
	refundService "github.com/cmlabs-hris/payroll-exception-go/internal/service/refund"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	claimRepo := postgresql.NewClaimRepository(db)
	disputeRepo := postgresql.NewDisputeRepository(db)
	refundRepo := postgresql.NewRefundRepository(db)
	exceptionRepo := postgresql.NewTimeExceptionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	runRegistry := postgresql.NewPayrollRunRegistry(db)
	auditSink := postgresql.NewAuditSink(db)

	notifier := notificationService.NewNotificationService(notificationRepo)
	claimSvc := claimService.NewClaimService(claimRepo, employeeRepo, auditSink, notifier)
	disputeSvc := disputeService.NewDisputeService(disputeRepo, employeeRepo, auditSink, notifier)
	refundSvc := refundService.NewRefundService(refundRepo, claimRepo, disputeRepo, runRegistry, auditSink, notifier)
	readinessSvc := readinessService.NewReadinessService(attendanceRepo, exceptionRepo, correctionRepo)
	cutoffSvc := cutoffService.NewCutoffService(cfg.Cutoff.DayOfMonth, exceptionRepo, employeeRepo, auditSink, notifier)
	packageSvc := packageService.NewDataPackageService(attendanceRepo, cfg.Cutoff.OvertimeBonusHours)

	claimHandler := appHTTP.NewClaimHandler(claimSvc)
	disputeHandler := appHTTP.NewDisputeHandler(disputeSvc)
	refundHandler := appHTTP.NewRefundHandler(refundSvc)
	readinessHandler := appHTTP.NewReadinessHandler(readinessSvc)
	cutoffHandler := appHTTP.NewCutoffHandler(cutoffSvc, cfg.Cutoff)
	packageHandler := appHTTP.NewDataPackageHandler(packageSvc)

	scheduler := cron.NewScheduler()
	cutoffJobs := cron.NewCutoffJobs(cutoffSvc, cfg.Cutoff)
	cutoffJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		claimHandler,
		disputeHandler,
		refundHandler,
		readinessHandler,
		cutoffHandler,
		packageHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
