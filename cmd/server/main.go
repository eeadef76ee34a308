package main

import (
	"log"

	"cbt-portal-backend/internal/config"
	"cbt-portal-backend/internal/database"
	"cbt-portal-backend/internal/exam"
	"cbt-portal-backend/internal/handlers"
	"cbt-portal-backend/internal/middleware"
	"cbt-portal-backend/internal/services"
	"cbt-portal-backend/internal/ws"

	_ "cbt-portal-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           CBT Practice Portal API
// @version         1.0
// @description     API for a JAMB/WAEC/NECO computer-based-test practice portal
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	registry := exam.NewRegistry()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	catalogService := services.NewCatalogService(db)
	questionService := services.NewQuestionService(db)
	examService := services.NewExamService(db, registry)
	resultService := services.NewResultService(db)
	contentService := services.NewContentService(db)
	notificationService := services.NewNotificationService(db)

	registry.Start()
	defer registry.Stop()

	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	examHandler := handlers.NewExamHandler(examService)
	resultHandler := handlers.NewResultHandler(resultService)
	contentHandler := handlers.NewContentHandler(contentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, hub)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/notifications", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.JWTAuth(authService), authHandler.Me)
		}

		api.GET("/exam-types", catalogHandler.ListExamTypes)
		api.GET("/exam-types/:id/subjects", catalogHandler.ListSubjects)
		api.GET("/leaderboard", resultHandler.Leaderboard)

		admin := api.Group("")
		admin.Use(middleware.JWTAuth(authService), middleware.AdminOnly())
		{
			admin.POST("/exam-types", catalogHandler.CreateExamType)
			admin.PUT("/exam-types/:id", catalogHandler.UpdateExamType)
			admin.DELETE("/exam-types/:id", catalogHandler.DeleteExamType)
			admin.POST("/exam-types/:id/subjects", catalogHandler.CreateSubject)
			admin.PUT("/subjects/:id", catalogHandler.UpdateSubject)
			admin.DELETE("/subjects/:id", catalogHandler.DeleteSubject)

			admin.GET("/subjects/:id/questions", questionHandler.ListQuestions)
			admin.POST("/subjects/:id/questions", questionHandler.CreateQuestion)
			admin.POST("/subjects/:id/questions/bulk", questionHandler.BulkCreateQuestions)
			admin.PUT("/questions/:id", questionHandler.UpdateQuestion)
			admin.DELETE("/questions/:id", questionHandler.DeleteQuestion)

			admin.POST("/notes", contentHandler.CreateNote)
			admin.PUT("/notes/:id", contentHandler.UpdateNote)
			admin.DELETE("/notes/:id", contentHandler.DeleteNote)
			admin.POST("/literature", contentHandler.CreateLiterature)
			admin.DELETE("/literature/:id", contentHandler.DeleteLiterature)

			admin.POST("/notifications", notificationHandler.Send)

			admin.GET("/admin/users", authHandler.ListUsers)
			admin.POST("/admin/users", authHandler.CreateAdmin)
		}

		student := api.Group("")
		student.Use(middleware.JWTAuth(authService))
		{
			student.POST("/exams", examHandler.StartExam)
			student.GET("/exams/:id", examHandler.GetState)
			student.POST("/exams/:id/answer", examHandler.SelectAnswer)
			student.POST("/exams/:id/navigate", examHandler.Navigate)
			student.POST("/exams/:id/submit", examHandler.Submit)

			student.GET("/results", resultHandler.ListResults)
			student.GET("/results/:id", resultHandler.GetResult)
			student.DELETE("/results/:id", resultHandler.DeleteResult)

			student.GET("/notes", contentHandler.ListNotes)
			student.GET("/literature", contentHandler.ListLiterature)
			student.GET("/notifications", notificationHandler.List)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
