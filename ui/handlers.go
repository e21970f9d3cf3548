package ui

import (
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"crimerisk/adapters/excel"
	"crimerisk/domain/incident"
	"crimerisk/domain/risk"
	"crimerisk/internal/errors"
	"crimerisk/models"
)

// indexView feeds the form template: current field values, the category
// lists, and (after a submit) either a result panel or an error banner.
type indexView struct {
	Form      models.IncidentSubmission
	Genders   []incident.Gender
	Weapons   []incident.Weapon
	Result    *risk.Assessment
	ErrorMsg  string
	ErrorCode string
	ModelName string
}

func (s *Server) newIndexView(form models.IncidentSubmission) indexView {
	return indexView{
		Form:      form,
		Genders:   incident.Genders(),
		Weapons:   incident.Weapons(),
		ModelName: s.service.ModelInfo().Name,
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderIndex(c, s.newIndexView(models.DefaultSubmission()))
}

// handlePredictForm runs the full submit cycle for the browser form.
// Per-request errors are rendered back into the page; they never affect
// other requests or the loaded model handle.
func (s *Server) handlePredictForm(c *gin.Context) {
	var submission models.IncidentSubmission
	if err := c.ShouldBind(&submission); err != nil {
		view := s.newIndexView(models.DefaultSubmission())
		view.ErrorMsg = "Could not read the submitted form: " + err.Error()
		view.ErrorCode = errors.CodeInvalidInput
		s.renderIndex(c, view)
		return
	}

	view := s.newIndexView(submission)

	report, err := submission.ToReport()
	if err != nil {
		view.ErrorMsg = err.Error()
		view.ErrorCode = errors.GetCode(err)
		s.renderIndex(c, view)
		return
	}

	assessment, err := s.service.PredictRisk(report)
	if err != nil {
		log.Printf("[Predict] %s: %v", errors.GetCode(err), err)
		view.ErrorMsg = err.Error()
		view.ErrorCode = errors.GetCode(err)
		s.renderIndex(c, view)
		return
	}

	view.Result = &assessment
	s.renderIndex(c, view)
}

func (s *Server) renderIndex(c *gin.Context, view indexView) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", view); err != nil {
		log.Printf("[Render] index.html failed: %v", err)
	}
}

// handlePredictJSON is the machine-readable predict endpoint.
func (s *Server) handlePredictJSON(c *gin.Context) {
	var submission models.IncidentSubmission
	if err := c.ShouldBindJSON(&submission); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
			"code":  errors.CodeInvalidInput,
		})
		return
	}

	report, err := submission.ToReport()
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return
	}

	assessment, err := s.service.PredictRisk(report)
	if err != nil {
		log.Printf("[API] Predict failed (%s): %v", errors.GetCode(err), err)
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// handleModelInfo describes the loaded artifact plus ensemble
// diagnostics when the classifier can provide them.
func (s *Server) handleModelInfo(c *gin.Context) {
	payload := gin.H{"model": s.service.ModelInfo()}
	if diag, ok := s.service.Diagnostics(); ok {
		payload["ensemble"] = diag
	}
	c.JSON(http.StatusOK, payload)
}

// handleBatch scores an uploaded incident sheet (xlsx or csv).
func (s *Server) handleBatch(c *gin.Context) {
	file, header, err := c.Request.FormFile("sheet")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Upload a sheet under the \"sheet\" form field",
			"code":  errors.CodeInvalidInput,
		})
		return
	}
	defer file.Close()

	reader := excel.NewSheetReader(file, header.Filename, s.config.Batch.MaxRows)
	result, err := s.service.ScoreBatch(c.Request.Context(), reader)
	if err != nil {
		log.Printf("[API] Batch failed (%s): %v", errors.GetCode(err), err)
		c.JSON(statusFor(err), gin.H{
			"error": err.Error(),
			"code":  errors.GetCode(err),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleModelCard renders the markdown model card as HTML.
func (s *Server) handleModelCard(c *gin.Context) {
	raw, err := os.ReadFile(s.config.Model.CardPath)
	if err != nil {
		c.String(http.StatusNotFound, "Model card not found at %s", s.config.Model.CardPath)
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML(raw, p, renderer)

	view := struct {
		Title string
		Body  template.HTML
	}{
		Title: s.service.ModelInfo().Name,
		Body:  template.HTML(body),
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "model_card.html", view); err != nil {
		log.Printf("[Render] model_card.html failed: %v", err)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"model":  s.service.ModelInfo().Name,
	})
}

// statusFor maps the error taxonomy to HTTP statuses: schema problems
// are the client's submission (422), inference failures are the model
// collaborator (502).
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeSchemaMismatch, errors.CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case errors.CodeInference:
		return http.StatusBadGateway
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// tierColor is the template helper behind the color-coded result panel.
func tierColor(t risk.Tier) string {
	switch t {
	case risk.TierHigh:
		return "#ff4d4d"
	case risk.TierModerate:
		return "#ffc300"
	default:
		return "#32cd32"
	}
}
