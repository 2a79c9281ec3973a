package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pick-time/carpool-backend/account"
	"github.com/pick-time/carpool-backend/internal/clock"
	"github.com/pick-time/carpool-backend/internal/middleware"
	"github.com/pick-time/carpool-backend/schedule"
)

const dateFormat = "2006-01-02"

// partitionKeys are the response field names for the two entry kinds,
// which differ between the driver and passenger views.
var partitionKeys = map[schedule.Role][2]string{
	schedule.Driver:    {"drive", "notDrive"},
	schedule.Passenger: {"takeRide", "notTakeRide"},
}

// datesHandler answers "what is my schedule this month / last month" for
// one role, split by kind. Empty partitions are null, not empty lists.
func (a *API) datesHandler(role schedule.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLogger(c)

		id, ok := middleware.GetIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		acct, err := a.ar.GetByEmail(c, id.Email)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "no matching user"})
				return
			}
			logger.ErrorContext(c, "failed to resolve account", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// Driver-side queries for a passenger read the assigned driver's
		// calendar; passenger-side queries always read the caller's own.
		lineID := acct.LineID
		if role == schedule.Driver {
			lineID = acct.ScheduleLineID()
		}

		month := clock.Select(time.Now(), c.Query("month"))
		entries, err := a.sr.MonthEntries(c, role, lineID, month)
		if err != nil {
			logger.ErrorContext(c, "failed to query schedule entries", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		reserved, excluded := schedule.Partition(entries)
		keys := partitionKeys[role]
		c.JSON(http.StatusOK, gin.H{keys[0]: reserved, keys[1]: excluded})
	}
}

type reserveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Kind      *int   `json:"reverse_type" binding:"required"`
	Note      string `json:"note"`
	PassLimit *int   `json:"pass_limit"`
}

func (a *API) reserveHandler(role schedule.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLogger(c)

		id, ok := middleware.GetIdentity(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		var req reserveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "missing required reservation fields"})
			return
		}

		acct, err := a.ar.GetByEmail(c, id.Email)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"message": "missing required reservation fields"})
				return
			}
			logger.ErrorContext(c, "failed to resolve account", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		start, err := time.Parse(dateFormat, req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid start_date"})
			return
		}
		end, err := time.Parse(dateFormat, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid end_date"})
			return
		}

		out, err := a.sr.Submit(c, schedule.Entry{
			OwnerRole: role,
			LineID:    acct.LineID,
			StartDate: start,
			EndDate:   end,
			Kind:      *req.Kind,
			Note:      req.Note,
			PassLimit: req.PassLimit,
		})
		if err != nil {
			logger.ErrorContext(c, "failed to submit reservation", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create reservation"})
			return
		}

		if out.Updated {
			c.JSON(http.StatusOK, gin.H{"message": "monthly reservation updated", "id": out.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "reservation added", "status": "success"})
	}
}

func (a *API) deleteEntryHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	// Deletes by primary key only; rows are not scoped to the caller.
	if err := a.sr.Delete(c, entryID); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "schedule entry not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete schedule entry", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete schedule entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "schedule entry deleted"})
}

type passengerDates struct {
	Name        string           `json:"name"`
	TakeRide    []schedule.Entry `json:"takeRide"`
	NotTakeRide []schedule.Entry `json:"notTakeRide"`
}

// driverPassengerDatesHandler reports the current-month ride entries of
// every passenger assigned to the calling driver.
func (a *API) driverPassengerDatesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	acct, err := a.ar.GetByEmail(c, id.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"found": false, "message": "no matching user"})
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

	month := clock.At(time.Now())
	data := make([]passengerDates, 0, len(passengers))
	for _, p := range passengers {
		entries, err := a.sr.MonthEntries(c, schedule.Passenger, p.LineID, month)
		if err != nil {
			logger.ErrorContext(c, "failed to query passenger entries", "lineId", p.LineID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		takeRide, notTakeRide := schedule.Partition(entries)
		data = append(data, passengerDates{
			Name:        p.UserName,
			TakeRide:    takeRide,
			NotTakeRide: notTakeRide,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"found":         true,
		"message":       "lookup succeeded",
		"passengerData": data,
	})
}
