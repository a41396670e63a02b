package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/carebridge/evv-backend-go/internal/config"
	appHTTP "github.com/carebridge/evv-backend-go/internal/handler/http"
	"github.com/carebridge/evv-backend-go/internal/pkg/cron"
	"github.com/carebridge/evv-backend-go/internal/pkg/database"
	"github.com/carebridge/evv-backend-go/internal/pkg/jwt"
	"github.com/carebridge/evv-backend-go/internal/pkg/sse"
	"github.com/carebridge/evv-backend-go/internal/repository/postgresql"
	authService "github.com/carebridge/evv-backend-go/internal/service/auth"
	clientService "github.com/carebridge/evv-backend-go/internal/service/client"
	shiftService "github.com/carebridge/evv-backend-go/internal/service/shift"
	userService "github.com/carebridge/evv-backend-go/internal/service/user"
	visitService "github.com/carebridge/evv-backend-go/internal/service/visit"
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

	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	visitRepo := postgresql.NewVisitRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	auth := authService.NewAuthService(db, userRepo, roleRepo, jwtService)
	users := userService.NewUserService(db, userRepo, roleRepo)
	clients := clientService.NewClientService(db, clientRepo)
	shifts := shiftService.NewShiftService(db, shiftRepo, clientRepo, userRepo)
	visits := visitService.NewVisitService(db, visitRepo, shiftRepo, hub)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(auth),
		appHTTP.NewVisitHandler(visits),
		appHTTP.NewShiftHandler(shifts),
		appHTTP.NewClientHandler(clients),
		appHTTP.NewUserHandler(users),
		appHTTP.NewEventHandler(hub, jwtService),
	)

	tokenLifetime, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		tokenLifetime = 24 * time.Hour
	}
	scheduler := cron.NewScheduler()
	cron.RegisterTokenPurgeJob(scheduler, jwtService, tokenLifetime)
	scheduler.Start()
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
