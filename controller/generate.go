package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/gin-gonic/gin"

	"github.com/testgen-ai/testgen/dto"
	"github.com/testgen-ai/testgen/middleware"
	"github.com/testgen-ai/testgen/relay/githost"
	"github.com/testgen-ai/testgen/relay/llm"
	"github.com/testgen-ai/testgen/relay/pipeline"
)

const modelUnavailableMessage = "Language model is not available"

// abortGenerateError maps pipeline failures. A missing model is 503, any failed stage a generic 500.
func abortGenerateError(c *gin.Context, err error, message string) {
	if errors.Is(err, llm.ErrModelUnavailable) {
		middleware.AbortWithMessage(c, http.StatusServiceUnavailable, modelUnavailableMessage, err)
		return
	}
	middleware.AbortWithMessage(c, http.StatusInternalServerError, message, err)
}

func (ctl *Controller) GenerateSummaries(c *gin.Context) {
	var req dto.GenerateSummariesRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return
	}
	repo, err := githost.ParseRepoURL(req.RepoURL)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err)
		return
	}
	if !ctl.modelConfigured() {
		abortGenerateError(c, llm.ErrModelUnavailable, "")
		return
	}

	client, err := ctl.hostClient(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	summaries, err := ctl.Pipeline.GenerateSummaries(gmw.Ctx(c), client, pipeline.SummaryRequest{
		Repo:      repo,
		FilePaths: req.FilePaths,
		Framework: req.Framework,
	})
	if err != nil {
		abortGenerateError(c, err, "Failed to generate summaries")
		return
	}

	c.JSON(http.StatusOK, dto.GenerateSummariesResponse{Summaries: summaries})
}

func (ctl *Controller) GenerateCode(c *gin.Context) {
	var req dto.GenerateCodeRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return
	}
	if !ctl.modelConfigured() {
		abortGenerateError(c, llm.ErrModelUnavailable, "")
		return
	}

	code, err := ctl.Pipeline.GenerateCode(gmw.Ctx(c), pipeline.CodeRequest{
		FileContents: req.FileContents,
		Summary:      req.Summary,
		Framework:    req.Framework,
	})
	if err != nil {
		abortGenerateError(c, err, "Failed to generate test code")
		return
	}

	c.JSON(http.StatusOK, dto.GenerateCodeResponse{Code: code})
}
