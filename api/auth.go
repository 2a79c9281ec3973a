package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pick-time/carpool-backend/account"
	"github.com/pick-time/carpool-backend/internal/middleware"
	"github.com/pick-time/carpool-backend/internal/token"
)

type lineUserInfo struct {
	LineUserID     string  `json:"lineUserId"`
	LineUserName   string  `json:"lineUserName"`
	LineUserType   string  `json:"lineUserType"`
	LineUserDriver *string `json:"lineUserDriver"`
}

func toLineUserInfo(a account.Account) lineUserInfo {
	info := lineUserInfo{
		LineUserID:   a.LineID,
		LineUserName: a.UserName,
		LineUserType: a.UserType.String(),
	}
	if a.DriverLineID.Valid {
		info.LineUserDriver = &a.DriverLineID.String
	}
	return info
}

func (a *API) checkLineIDHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	acct, err := a.ar.GetByLineID(c, c.Query("lineId"))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"found": false, "message": "line id not registered"})
			return
		}
		logger.ErrorContext(c, "failed to look up line id", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":    true,
		"message":  "line id verified",
		"userInfo": toLineUserInfo(acct),
	})
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	UserType string `json:"userType" binding:"required"`
	Password string `json:"password" binding:"required"`
	LineID   string `json:"lineId" binding:"required"`
}

func (a *API) registerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing required registration fields"})
		return
	}

	role, ok := account.ParseRole(req.UserType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userType must be driver or passenger"})
		return
	}

	_, err := a.ar.Create(c, req.Email, req.Name, role, req.Password, req.LineID)
	if err != nil {
		logger.ErrorContext(c, "failed to create account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "registration failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registered"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (a *API) loginHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing credentials"})
		return
	}

	acct, err := a.ar.Authenticate(c, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": "no such user"})
		case errors.Is(err, account.ErrBadPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication failed"})
		default:
			logger.ErrorContext(c, "login failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	id := token.Identity{
		UserName: acct.UserName,
		Email:    acct.Email,
		UserType: acct.UserType.String(),
	}
	tok, err := a.signer.Sign(id, time.Now())
	if err != nil {
		logger.ErrorContext(c, "failed to sign token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tok, "userInfo": id})
}

// No server-side token state exists, so signing out is acknowledgement only.
func (a *API) signOutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
