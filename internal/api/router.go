package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/housetab/housetab/internal/auth"
	"github.com/housetab/housetab/internal/metrics"
	"github.com/housetab/housetab/internal/service"
)

// Services bundles everything the router wires handlers onto.
type Services struct {
	Authenticator *auth.PasswordAuthenticator
	JWTManager    *auth.JWTManager
	Houses        *service.HouseService
	Expenses      *service.ExpenseService
	Balances      *service.BalanceService
	Settlements   *service.SettlementService
}

// SetupRouter builds the gin engine with all routes and middleware.
func SetupRouter(mode string, svcs Services) *gin.Engine {
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORS())
	r.Use(metrics.HTTPMetrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(svcs.Authenticator, svcs.JWTManager)
	houseHandler := NewHouseHandler(svcs.Houses)
	expenseHandler := NewExpenseHandler(svcs.Expenses, svcs.Houses)
	balanceHandler := NewBalanceHandler(svcs.Balances, svcs.Houses)
	settlementHandler := NewSettlementHandler(svcs.Settlements, svcs.Expenses, svcs.Houses)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		authed := v1.Group("")
		authed.Use(RequireAuth(svcs.JWTManager))
		{
			authed.POST("/houses", houseHandler.Create)
			authed.POST("/houses/:houseID/members", houseHandler.AddMember)
			authed.GET("/houses/:houseID/members", houseHandler.Members)

			authed.POST("/houses/:houseID/expenses", expenseHandler.Create)
			authed.GET("/houses/:houseID/expenses", expenseHandler.List)
			authed.GET("/expenses/:id", expenseHandler.Get)
			authed.PUT("/expenses/:id", expenseHandler.Update)
			authed.DELETE("/expenses/:id", expenseHandler.Delete)

			authed.GET("/houses/:houseID/balances", balanceHandler.Balances)
			authed.GET("/houses/:houseID/balances/:userID", balanceHandler.Breakdown)

			authed.POST("/splits/:id/settle", settlementHandler.SettleSplit)
			authed.POST("/splits/:id/unsettle", settlementHandler.UnsettleSplit)
			authed.POST("/houses/:houseID/settle-all", settlementHandler.SettleAll)
			authed.POST("/houses/:houseID/settle-up", settlementHandler.SettleUp)
		}
	}

	return r
}
