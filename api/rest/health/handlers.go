package health

import (
	"context"
	"net/http"
	"time"

	"codeberg.org/algorave/errorhandler/internal/errors"
	"github.com/gin-gonic/gin"
)

// upper bound for the simulated work of SlowHandler
const maxSlowDelay = time.Minute

// returns the server health status
func Handler(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Status:  "healthy",
		Service: "errorhandler",
		Version: "1.0.0",
	})
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}

// SlowHandler godoc
// @Summary Simulate slow work
// @Description Sleeps for delay_ms milliseconds but gives up after the request deadline, answering 504
// @Tags health
// @Produce json
// @Param delay_ms query int false "Simulated work in milliseconds"
// @Success 200 {object} SlowResponse
// @Failure 400 {object} errors.Response
// @Failure 504 {object} errors.Response
// @Router /api/v1/slow [get]
func SlowHandler(deadline time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SlowRequest
		if !errors.BindQuery(c, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), deadline)
		defer cancel()

		delay := time.Duration(req.DelayMS) * time.Millisecond
		if delay > maxSlowDelay {
			delay = maxSlowDelay
		}

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.JSON(http.StatusOK, SlowResponse{ElapsedMS: req.DelayMS})
		case <-ctx.Done():
			// picked up by errors.Handler after the chain returns
			_ = c.Error(ctx.Err())
		}
	}
}
