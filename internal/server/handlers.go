package server

import (
	"context"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/jonathan/nutrition-scorer/internal/pipeline"
	"github.com/jonathan/nutrition-scorer/internal/types"
)

// EvaluateRequest is the body of POST /api/v1/evaluate.
type EvaluateRequest struct {
	Amounts map[string]float64 `json:"amounts" binding:"required"`
}

// EvaluateResponse is the evaluation summary plus the confirmation message.
type EvaluateResponse struct {
	pipeline.Summary
	Message      string   `json:"message"`
	UnknownFoods []string `json:"unknown_foods,omitempty"`
}

// FoodsResponse lists the food database.
type FoodsResponse struct {
	Count int          `json:"count"`
	Foods []types.Food `json:"foods"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListFoods returns every food in source order.
func (s *Server) handleListFoods(c *gin.Context) {
	foods := s.foods.Foods()
	c.JSON(http.StatusOK, FoodsResponse{Count: len(foods), Foods: foods})
}

// handleGetFood returns one food by name.
func (s *Server) handleGetFood(c *gin.Context) {
	name := c.Param("name")
	food, ok := s.foods.Get(name)
	if !ok {
		s.errorResponse(c, &ErrFoodNotFound{Name: name})
		return
	}
	c.JSON(http.StatusOK, food)
}

// handleGetProfile returns the reference profile used for scoring.
func (s *Server) handleGetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.profile)
}

// handleEvaluate scores the posted food amounts and, when an output directory
// is configured, writes the reports.
func (s *Server) handleEvaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, &ErrValidation{Field: "amounts", Message: err.Error()})
		return
	}

	var unknown []string
	for name := range req.Amounts {
		if _, ok := s.foods.Get(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	eval, err := s.evaluate(c.Request.Context(), types.Selection(req.Amounts))
	if err != nil {
		log.Printf("Evaluation failed: %v", err)
		s.errorResponse(c, err)
		return
	}
	log.Printf("Evaluation %s: %s", eval.RunID, eval.Message())

	c.JSON(http.StatusOK, EvaluateResponse{
		Summary:      eval.Summary(),
		Message:      eval.Message(),
		UnknownFoods: unknown,
	})
}

// evaluate runs the pipeline. Runs that write reports share one directory and
// are serialized.
func (s *Server) evaluate(ctx context.Context, selection types.Selection) (*pipeline.Evaluation, error) {
	opts := pipeline.RunOptions{
		Foods:     s.foods,
		Profile:   s.profile,
		Selection: selection,
		OutputDir: s.outputDir,
		Out:       log.Writer(),
		LogPrefix: "[evaluate] ",
	}
	if s.outputDir != "" {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}
	return pipeline.Evaluate(ctx, opts)
}

// errorResponse writes an error JSON response with the status for err
func (s *Server) errorResponse(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
}
