package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pick-time/carpool-backend/account"
	"github.com/pick-time/carpool-backend/fare"
	"github.com/pick-time/carpool-backend/internal/clock"
	"github.com/pick-time/carpool-backend/internal/middleware"
)

// getFareHandler returns the caller's balance and adjustment rows from the
// previous month onward.
func (a *API) getFareHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	acct, err := a.ar.GetByEmail(c, id.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"found": false, "message": "email not registered or not bound to a line id"})
			return
		}
		logger.ErrorContext(c, "failed to resolve account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	balances, adjustments, err := a.fr.Summary(c, acct.LineID, time.Now())
	if err != nil {
		logger.ErrorContext(c, "failed to query fare summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if balances == nil {
		balances = []fare.Balance{}
	}
	if adjustments == nil {
		adjustments = []fare.Adjustment{}
	}

	c.JSON(http.StatusOK, gin.H{
		"found":   true,
		"message": "lookup succeeded",
		"fareData": gin.H{
			"fare":      balances,
			"fareCount": adjustments,
		},
	})
}

type addFareRequest struct {
	Email    string `json:"email" binding:"required"`
	UserFare int    `json:"userFare" binding:"required"`
}

func (a *API) addFareHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req addFareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing required fields"})
		return
	}

	acct, err := a.ar.GetByEmail(c, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no matching user"})
			return
		}
		logger.ErrorContext(c, "failed to resolve account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	created, err := a.fr.Upsert(c, acct.LineID, req.UserFare, time.Now())
	if err != nil {
		logger.ErrorContext(c, "failed to upsert fare", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to record fare"})
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "fare added"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "fare for this month updated"})
}

type passengerSummary struct {
	LineUserID   string `json:"line_user_id"`
	LineUserName string `json:"line_user_name"`
}

// driverPassengerFaresHandler rolls up current- and previous-month fares
// for every passenger assigned to the calling driver, as parallel lists.
func (a *API) driverPassengerFaresHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	acct, err := a.ar.GetByEmail(c, id.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"found": false, "message": "email not registered or not bound to a line id"})
			return
		}
		logger.ErrorContext(c, "failed to resolve account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	passengers, err := a.ar.PassengersOf(c, acct.LineID)
	if err != nil {
		logger.ErrorContext(c, "failed to list passengers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	current := clock.At(time.Now())
	previous := current.Prev()

	summaries := make([]passengerSummary, 0, len(passengers))
	currentFares := make([]fare.MonthlyReport, 0, len(passengers))
	previousFares := make([]fare.MonthlyReport, 0, len(passengers))

	for _, p := range passengers {
		summaries = append(summaries, passengerSummary{LineUserID: p.LineID, LineUserName: p.UserName})

		cur, err := a.fr.Report(c, p.UserName, p.LineID, current)
		if err != nil {
			logger.ErrorContext(c, "failed to build fare report", "lineId", p.LineID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		prev, err := a.fr.Report(c, p.UserName, p.LineID, previous)
		if err != nil {
			logger.ErrorContext(c, "failed to build fare report", "lineId", p.LineID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		currentFares = append(currentFares, cur)
		previousFares = append(previousFares, prev)
	}

	c.JSON(http.StatusOK, gin.H{
		"found":              true,
		"message":            "lookup succeeded",
		"passengersResult":   summaries,
		"currentMonthFares":  currentFares,
		"previousMonthFares": previousFares,
	})
}

type addFareCountRequest struct {
	UserID     string `json:"userId"`
	UserRemark string `json:"userRemark"`
	FareAmount int    `json:"fareAmount"`
	Date       string `json:"date"`
}

func (a *API) addFareCountHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req addFareCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add fare record"})
		return
	}

	at, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		at, err = time.ParseInLocation(dateFormat, req.Date, clock.Business)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add fare record"})
		return
	}

	if err := a.fr.AddAdjustment(c, req.UserID, req.FareAmount, req.UserRemark, at); err != nil {
		logger.ErrorContext(c, "failed to add fare adjustment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add fare record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fare record added"})
}

func (a *API) deleteFareCountHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	adjustmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	// Deletes by primary key only; rows are not scoped to the caller.
	if err := a.fr.DeleteAdjustment(c, adjustmentID); err != nil {
		if errors.Is(err, fare.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "fare record not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete fare adjustment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete fare record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fare record deleted"})
}
