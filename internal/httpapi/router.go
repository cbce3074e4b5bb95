package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rhyrak/coursecsp/internal/config"
	"github.com/rhyrak/coursecsp/internal/csp"
	"github.com/rhyrak/coursecsp/internal/exportcsv"
	"github.com/rhyrak/coursecsp/internal/normalize"
	"github.com/rhyrak/coursecsp/internal/validate"
)

// NewRouter builds the gin engine and registers every route spec.md §6
// names: POST /api/schedule, OPTIONS /api/schedule, the supplemental
// GET /api/schedule/:id/export.csv, and GET /healthz.
//
// The CORS middleware is copied near-verbatim from the teacher's
// cmd/server/main.go — same header set, same "OPTIONS short-circuits
// with 204" shape — since spec.md doesn't redesign transport-level
// concerns and the ambient behaviour should match the corpus.
func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()
	cache := newRunCache(100)

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/schedule", func(c *gin.Context) {
		handleSchedule(c, cfg, cache)
	})

	r.GET("/api/schedule/:id/export.csv", func(c *gin.Context) {
		handleExportCSV(c, cache)
	})

	return r
}

func handleSchedule(c *gin.Context, cfg *config.Config, cache *runCache) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, ValidationErrorResponse{
			Success: false,
			Error:   "Malformed request body.",
			Errors:  []string{err.Error()},
		})
		return
	}

	input := req.toInput()
	normalize.Input(input)

	if errs := validate.Input(input); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Success: false,
			Error:   "Request failed pre-flight validation.",
			Errors:  errs,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.WallClockBudget+time.Second)
	defer cancel()

	inst, result := csp.Solve(ctx, input, cfg)

	if !result.Success {
		c.JSON(http.StatusBadRequest, renderFailure(result.Diagnostics))
		return
	}

	runID := uuid.NewString()
	cache.put(runID, inst)

	c.JSON(http.StatusOK, renderSuccess(inst, runID))
}

func handleExportCSV(c *gin.Context, cache *runCache) {
	runID := c.Param("id")
	inst, ok := cache.get(runID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown run ID."})
		return
	}

	body, err := exportcsv.ToString(inst)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\"schedule-"+runID+".csv\"")
	c.Data(http.StatusOK, "text/csv", []byte(body))
}
