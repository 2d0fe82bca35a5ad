package api

import (
	"context"

	"github.com/autoqa/autoqa/config"
	"github.com/autoqa/autoqa/pkg/api/analytics"
	"github.com/autoqa/autoqa/pkg/api/health"
	"github.com/autoqa/autoqa/pkg/api/middleware"
	"github.com/autoqa/autoqa/pkg/api/notification"
	"github.com/autoqa/autoqa/pkg/api/project"
	"github.com/autoqa/autoqa/pkg/api/testcase"
	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/core"
	"github.com/autoqa/autoqa/pkg/lumber"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Router represents the routes for the http server.
type Router struct {
	cfg               *config.Config
	signalCtx         context.Context
	session           core.Session
	generationService core.GenerationService
	projectStore      core.ProjectStore
	testCaseStore     core.TestCaseStore
	testStepStore     core.TestStepStore
	authoringStore    core.AuthoringStore
	notificationStore core.NotificationStore
	logger            lumber.Logger
}

// New returns a New Router
func New(
	signalCtx context.Context,
	cfg *config.Config,
	session core.Session,
	generationService core.GenerationService,
	dbStores *core.DBStores,
	logger lumber.Logger) Router {
	return Router{
		cfg:               cfg,
		signalCtx:         signalCtx,
		session:           session,
		generationService: generationService,
		projectStore:      dbStores.ProjectStore,
		testCaseStore:     dbStores.TestCaseStore,
		testStepStore:     dbStores.TestStepStore,
		authoringStore:    dbStores.AuthoringStore,
		notificationStore: dbStores.NotificationStore,
		logger:            logger,
	}
}

// Handler function will perform all route operations
func (r *Router) Handler() *gin.Engine {
	r.logger.Infof("Setting up routes")
	router := gin.New()
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := configureValidator(v); err != nil {
			r.logger.Fatalf("failed to configure validator %v", err)
		}
	}
	// skip /health API from logs as will be required in probes
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/health"))
	// Recovery middleware recovers from any panics and writes a 500 if there was one.
	router.Use(gin.Recovery())
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{r.cfg.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization", "cache-control", "pragma")
	router.Use(cors.New(corsConfig))
	router.Use(otelgin.Middleware(constants.ServiceName))
	pprof.Register(router)

	router.GET("/health", health.Handler(r.signalCtx))

	// test case routes
	testCaseRoutes := router.Group("/testcases")
	testCaseRoutes.Use(middleware.HandleSession(r.session, r.logger))
	testCaseRoutes.POST("/generate", testcase.HandleGenerate(r.generationService, r.logger))
	testCaseRoutes.POST("/save", testcase.HandleSave(r.authoringStore, r.notificationStore, r.logger))
	testCaseRoutes.GET("", middleware.HandlePage(), testcase.HandleList(r.testCaseStore, r.logger))
	testCaseRoutes.GET("/:caseID", testcase.HandleDetails(r.testCaseStore, r.testStepStore, r.logger))
	testCaseRoutes.PUT("/:caseID", testcase.HandleUpdate(r.authoringStore, r.logger))
	testCaseRoutes.DELETE("/:caseID", testcase.HandleDelete(r.authoringStore, r.logger))

	// project routes
	projectRoutes := router.Group("/projects")
	projectRoutes.Use(middleware.HandleSession(r.session, r.logger))
	projectRoutes.POST("", project.HandleCreate(r.projectStore, r.logger))
	projectRoutes.GET("", middleware.HandlePage(), project.HandleList(r.projectStore, r.logger))
	projectRoutes.GET("/:projectID", project.HandleDetails(r.projectStore, r.logger))
	projectRoutes.PUT("/:projectID", project.HandleUpdate(r.projectStore, r.logger))
	projectRoutes.DELETE("/:projectID", middleware.HandleAdminRole(r.logger), project.HandleDelete(r.projectStore, r.logger))

	// dashboard graph routes
	analyticsRoutes := router.Group("/analytics")
	analyticsRoutes.Use(middleware.HandleSession(r.session, r.logger))
	analyticsRoutes.GET("/graphs/status-data", analytics.HandleStatusData(r.testCaseStore, r.logger))
	analyticsRoutes.GET("/graphs/priority-data", analytics.HandlePriorityData(r.testCaseStore, r.logger))

	// notification routes
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Use(middleware.HandleSession(r.session, r.logger))
	notificationRoutes.GET("", middleware.HandlePage(), notification.HandleList(r.notificationStore, r.logger))
	notificationRoutes.PUT("/:notificationID/read", notification.HandleMarkRead(r.notificationStore, r.logger))

	return router
}
