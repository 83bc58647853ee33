package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/mockinsight/interview-service/internal/services"
	"github.com/mockinsight/interview-service/internal/utils"
)

type HandlerManager struct {
	interviewHandler *InterviewHandler
}

func NewHandlerManager(interviewService services.InterviewService, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		interviewHandler: NewInterviewHandler(interviewService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/landing", hm.interviewHandler.GetLanding)
		v1.GET("/questions", hm.interviewHandler.PreviewQuestions)
		v1.GET("/stats", hm.interviewHandler.GetStats)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.interviewHandler.CreateSession)
			sessions.GET("/:id", hm.interviewHandler.GetSession)
			sessions.DELETE("/:id", hm.interviewHandler.EndSession)

			// Page transitions
			sessions.POST("/:id/start", hm.interviewHandler.GetStarted)
			sessions.POST("/:id/landing", hm.interviewHandler.BackToLanding)
			sessions.POST("/:id/interview", hm.interviewHandler.SubmitInterview)
			sessions.POST("/:id/restart", hm.interviewHandler.Restart)

			// Answering
			sessions.PUT("/:id/answer", hm.interviewHandler.UpdateAnswer)
			sessions.POST("/:id/next", hm.interviewHandler.NextQuestion)
			sessions.POST("/:id/previous", hm.interviewHandler.PreviousQuestion)

			// Results
			sessions.GET("/:id/results", hm.interviewHandler.GetResults)
			sessions.GET("/:id/report", hm.interviewHandler.DownloadReport)
		}
	}
}

// NewRouter builds the gin engine with logging and recovery middleware.
func NewRouter(hm *HandlerManager, logger utils.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger))
	hm.SetupRoutes(router)
	return router
}
