package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildforce/attendance-backend-go/internal/config"
	appHTTP "github.com/buildforce/attendance-backend-go/internal/handler/http"
	"github.com/buildforce/attendance-backend-go/internal/pkg/cron"
	"github.com/buildforce/attendance-backend-go/internal/pkg/database"
	"github.com/buildforce/attendance-backend-go/internal/pkg/jwt"
	"github.com/buildforce/attendance-backend-go/internal/pkg/sse"
	"github.com/buildforce/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/buildforce/attendance-backend-go/internal/service/attendance"
	authService "github.com/buildforce/attendance-backend-go/internal/service/auth"
	checkinService "github.com/buildforce/attendance-backend-go/internal/service/checkin"
	employeeService "github.com/buildforce/attendance-backend-go/internal/service/employee"
	qrcodeService "github.com/buildforce/attendance-backend-go/internal/service/qrcode"
	worksiteService "github.com/buildforce/attendance-backend-go/internal/service/worksite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	location, err := time.LoadLocation(cfg.App.DefaultTimezone)
	if err != nil {
		fmt.Println("Invalid DEFAULT_TIMEZONE:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	worksiteRepo := postgresql.NewWorksiteRepository(db)
	checkinRepo := postgresql.NewCheckinRepository(db)
	qrcodeRepo := postgresql.NewQRCodeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	checkinSvc := checkinService.NewCheckinService(checkinRepo, employeeRepo, worksiteRepo, qrcodeRepo, hub, location)
	attendanceSvc := attendanceService.NewAttendanceService(checkinRepo, employeeRepo, worksiteRepo, leaveRepo, location)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	worksiteSvc := worksiteService.NewWorksiteService(worksiteRepo)
	qrcodeSvc := qrcodeService.NewQRCodeService(qrcodeRepo, worksiteRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	checkinHandler := appHTTP.NewCheckinHandler(checkinSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	worksiteHandler := appHTTP.NewWorksiteHandler(worksiteSvc)
	qrcodeHandler := appHTTP.NewQRCodeHandler(qrcodeSvc, checkinSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub, jwtService)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("qr-code-expiry-sweep", time.Hour, func(ctx context.Context) error {
		_, err := qrcodeSvc.DeactivateExpired(ctx)
		return err
	})
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		checkinHandler,
		attendanceHandler,
		employeeHandler,
		worksiteHandler,
		qrcodeHandler,
		eventsHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on :%d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Shutdown error:", err)
	}
}
