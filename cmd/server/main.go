package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/girmesh03/taskforce/internal/config"
	"github.com/girmesh03/taskforce/internal/database"
	"github.com/girmesh03/taskforce/internal/handlers"
	"github.com/girmesh03/taskforce/internal/middleware"
	"github.com/girmesh03/taskforce/internal/repository"
	"github.com/girmesh03/taskforce/internal/services"
	"github.com/girmesh03/taskforce/internal/storage"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logrus.WithError(err).Fatal("Failed to add indexes")
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Redis store")
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("taskforce_session", store))

	// Blob store: cloudinary when configured, a no-op otherwise
	var blobs services.BlobStore = storage.NewNoop()
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cld, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to initialize blob store")
		}
		blobs = cld
	}

	// Repositories
	db := database.GetDB()
	txManager := repository.NewTxManager(db)
	companyRepo := repository.NewCompanyRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewTaskActivityRepository(db)
	routineRepo := repository.NewRoutineTaskRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Services
	tenantService := services.NewTenantService(txManager, companyRepo, deptRepo, userRepo)
	deletionService := services.NewDeletionService(txManager, companyRepo, deptRepo, userRepo,
		taskRepo, activityRepo, routineRepo, notifRepo, blobs)
	authService := services.NewAuthService(userRepo)
	deptService := services.NewDepartmentService(deptRepo, companyRepo)
	userService := services.NewUserService(userRepo, deptRepo)
	taskService := services.NewTaskService(txManager, taskRepo, activityRepo, userRepo, deptRepo)
	routineService := services.NewRoutineTaskService(txManager, routineRepo, userRepo, notifRepo, blobs)
	notifService := services.NewNotificationService(notifRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	tenantHandler := handlers.NewTenantHandler(tenantService, deletionService)
	deptHandler := handlers.NewDepartmentHandler(deptService, deletionService)
	userHandler := handlers.NewUserHandler(userService, deletionService)
	taskHandler := handlers.NewTaskHandler(taskService, deletionService)
	routineHandler := handlers.NewRoutineTaskHandler(routineService)
	notifHandler := handlers.NewNotificationHandler(notifService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Taskforce API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(), authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.POST("/verify-email", authHandler.VerifyEmail)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// Company subscription (public) and lifecycle (protected)
		companies := api.Group("/companies")
		{
			companies.POST("", tenantHandler.Subscribe)

			protected := companies.Group("")
			protected.Use(middleware.RequireAuth(), middleware.RequireSuperAdmin())
			{
				protected.DELETE("/:id", tenantHandler.SoftDeleteCompany)
				protected.DELETE("/:id/hard", tenantHandler.HardDeleteCompany)
				protected.POST("/:id/restore", tenantHandler.RestoreCompany)
			}
		}

		// Department routes (protected)
		departments := api.Group("/departments")
		departments.Use(middleware.RequireAuth())
		{
			departments.POST("", middleware.RequireSuperAdmin(), deptHandler.CreateDepartment)
			departments.GET("", deptHandler.ListDepartments)
			departments.GET("/:id", middleware.RequireDepartmentAccess(), deptHandler.GetDepartment)
			departments.PATCH("/:id", middleware.RequireDepartmentAccess(), deptHandler.UpdateDepartment)
			departments.DELETE("/:id", middleware.RequireSuperAdmin(), deptHandler.SoftDeleteDepartment)
			departments.DELETE("/:id/hard", middleware.RequireSuperAdmin(), deptHandler.HardDeleteDepartment)
			departments.POST("/:id/restore", middleware.RequireSuperAdmin(), deptHandler.RestoreDepartment)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.POST("", middleware.RequireSuperAdmin(), userHandler.CreateUser)
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", middleware.RequireSuperAdmin(), userHandler.SoftDeleteUser)
			users.DELETE("/:id/hard", middleware.RequireSuperAdmin(), userHandler.HardDeleteUser)
			users.POST("/:id/restore", middleware.RequireSuperAdmin(), userHandler.RestoreUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
			tasks.POST("/:id/assign", middleware.RequireTaskAccess(), taskHandler.AssignTask)
			tasks.POST("/:id/unassign", middleware.RequireTaskAccess(), taskHandler.UnassignTask)
			tasks.POST("/:id/activities", middleware.RequireTaskAccess(), taskHandler.RecordActivity)
			tasks.GET("/:id/activities", middleware.RequireTaskAccess(), taskHandler.ListActivities)
		}

		// Routine task routes (protected)
		routines := api.Group("/routine-tasks")
		routines.Use(middleware.RequireAuth())
		{
			routines.GET("", routineHandler.ListRoutineTasks)
			routines.POST("", routineHandler.CreateRoutineTask)
			routines.GET("/:id", routineHandler.GetRoutineTask)
			routines.PATCH("/:id", routineHandler.UpdateRoutineTask)
			routines.DELETE("/:id", routineHandler.DeleteRoutineTask)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notifHandler.ListNotifications)
			notifications.POST("/:id/read", notifHandler.MarkNotificationRead)
		}
	}

	// Start server
	logrus.WithField("addr", cfg.ListenAddr).Info("Server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
