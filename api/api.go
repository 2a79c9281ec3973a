package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pick-time/carpool-backend/account"
	"github.com/pick-time/carpool-backend/fare"
	"github.com/pick-time/carpool-backend/internal/middleware"
	"github.com/pick-time/carpool-backend/internal/o11y"
	"github.com/pick-time/carpool-backend/internal/token"
	"github.com/pick-time/carpool-backend/schedule"
)

type API struct {
	r      *gin.Engine
	ar     *account.Repository
	sr     *schedule.Repository
	fr     *fare.Repository
	signer *token.Signer
}

func New(ar *account.Repository, sr *schedule.Repository, fr *fare.Repository, signer *token.Signer,
	obs *o11y.Observability, metricsUsername, metricsPassword string,
) *API {
	a := &API{
		r:      gin.New(),
		ar:     ar,
		sr:     sr,
		fr:     fr,
		signer: signer,
	}

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))

	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if metricsUsername != "" {
		a.r.GET("/metrics",
			gin.BasicAuth(gin.Accounts{metricsUsername: metricsPassword}),
			gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))
	}

	a.r.GET("/check-line-id", a.checkLineIDHandler)
	a.r.POST("/users/register", a.registerHandler)
	a.r.POST("/users/login", a.loginHandler)

	protected := a.r.Group("/")
	protected.Use(middleware.Auth(signer))
	{
		protected.POST("/users/sign_out", a.signOutHandler)

		protected.GET("/driver_dates", a.datesHandler(schedule.Driver))
		protected.GET("/passenger_dates", a.datesHandler(schedule.Passenger))
		protected.POST("/driver_reserve", a.reserveHandler(schedule.Driver))
		protected.POST("/passenger_reserve", a.reserveHandler(schedule.Passenger))
		protected.DELETE("/driver_dates/:id", a.deleteEntryHandler)
		protected.DELETE("/passenger_dates/:id", a.deleteEntryHandler)
		protected.GET("/driver_passenger_dates", a.driverPassengerDatesHandler)

		protected.POST("/fare/get_fare", a.getFareHandler)
		protected.POST("/fare/add_fare", a.addFareHandler)
		protected.POST("/fare/get_driver_passenger_fares", a.driverPassengerFaresHandler)
		protected.POST("/fare/add_fare_count", a.addFareCountHandler)
		protected.DELETE("/fare_count/:id", a.deleteFareCountHandler)
	}

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}
