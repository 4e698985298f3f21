// Package rest exposes the expense tracker over HTTP/JSON using gin.
package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/dmitrijs2005/expensetracker/internal/server/models"
	"github.com/dmitrijs2005/expensetracker/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type IncomeService interface {
	Add(ctx context.Context, userID string, in services.IncomeInput) (*models.Income, error)
	List(ctx context.Context, userID string) ([]models.Income, error)
	Delete(ctx context.Context, userID, id string) error
	ExportCSV(ctx context.Context, userID string, w io.Writer) error
}

type ExpenseService interface {
	Add(ctx context.Context, userID string, in services.ExpenseInput) (*models.Expense, error)
	List(ctx context.Context, userID string) ([]models.Expense, error)
	Delete(ctx context.Context, userID, id string) error
	ExportCSV(ctx context.Context, userID string, w io.Writer) error
}

type DashboardService interface {
	Get(ctx context.Context, userID string, now time.Time) (*models.Dashboard, error)
}

type ImageService interface {
	Upload(ctx context.Context, r io.Reader) (string, error)
}

// Deps bundles everything the router needs.
type Deps struct {
	Users     UserService
	Incomes   IncomeService
	Expenses  ExpenseService
	Dashboard DashboardService
	Images    ImageService
	Tokens    *auth.TokenManager
	Metrics   *Metrics
}

type Server struct {
	address        string
	allowedOrigins string
	logger         logging.Logger
	deps           Deps
	now            func() time.Time
}

func NewServer(address, allowedOrigins string, l logging.Logger, deps Deps) *Server {
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	return &Server{
		address:        address,
		allowedOrigins: allowedOrigins,
		logger:         l.With("module", "http_server"),
		deps:           deps,
		now:            time.Now,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestID(), s.accessLog(), s.deps.Metrics.middleware())

	corsConfig := cors.DefaultConfig()
	origins := strings.Split(s.allowedOrigins, ",")
	if len(origins) == 1 && strings.TrimSpace(origins[0]) == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeaderName}
	router.Use(cors.New(corsConfig))

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))

	api := router.Group(common.APIPrefix)
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", s.register)
		authRoutes.POST("/login", s.login)
		authRoutes.POST("/upload-image", s.uploadImage)
		authRoutes.GET("/getUser", s.authMiddleware(), s.getUser)

		protected := api.Group("")
		protected.Use(s.authMiddleware())
		{
			income := protected.Group("/income")
			income.POST("/add", s.addIncome)
			income.GET("/get", s.listIncome)
			income.GET("/downloadexcel", s.exportIncome)
			income.DELETE("/:id", s.deleteIncome)

			expense := protected.Group("/expense")
			expense.POST("/add", s.addExpense)
			expense.GET("/get", s.listExpense)
			expense.GET("/downloadexcel", s.exportExpense)
			expense.DELETE("/:id", s.deleteExpense)

			protected.GET("/dashboard", s.dashboard)
		}
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
