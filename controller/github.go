package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gmw "github.com/Laisky/gin-middlewares/v6"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v72/github"
	"golang.org/x/sync/errgroup"

	"github.com/testgen-ai/testgen/dto"
	"github.com/testgen-ai/testgen/middleware"
	"github.com/testgen-ai/testgen/relay/framework"
	"github.com/testgen-ai/testgen/relay/githost"
)

const invalidTokenMessage = "Invalid token"

// abortHostError answers a failed aggregate call. An upstream 401 means the credential is
// bad and is reported as such; anything else collapses into message.
func abortHostError(c *gin.Context, err error, message string) {
	if hostErr, ok := githost.AsHostAPIError(err); ok && hostErr.Unauthorized() {
		middleware.AbortWithMessage(c, http.StatusUnauthorized, invalidTokenMessage, err)
		return
	}
	middleware.AbortWithMessage(c, http.StatusInternalServerError, message, err)
}

// GetUser proxies GET /user. Upstream failures other than 401 are relayed as received.
func (ctl *Controller) GetUser(c *gin.Context) {
	client, err := ctl.hostClient(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	user, err := client.User(gmw.Ctx(c))
	if err != nil {
		hostErr, ok := githost.AsHostAPIError(err)
		switch {
		case ok && hostErr.Unauthorized():
			middleware.AbortWithMessage(c, http.StatusUnauthorized, invalidTokenMessage, err)
		case ok:
			gmw.GetLogger(c).Warn("relay upstream error", zap.Int("status", hostErr.Status))
			c.Data(hostErr.Status, "application/json; charset=utf-8", []byte(hostErr.Body))
			c.Abort()
		default:
			middleware.AbortWithError(c, http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func (ctl *Controller) ListRepos(c *gin.Context) {
	client, err := ctl.hostClient(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	repos, err := client.ListRepos(gmw.Ctx(c))
	if err != nil {
		abortHostError(c, err, "Failed to fetch repositories")
		return
	}
	if repos == nil {
		repos = []*github.Repository{}
	}
	c.JSON(http.StatusOK, repos)
}

// bindRepo decodes a {repoUrl} body. It answers 400 itself and reports false on failure.
func bindRepo(c *gin.Context) (githost.RepoRef, bool) {
	var req dto.RepoRequest
	if err := bindJSON(c, &req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return githost.RepoRef{}, false
	}
	repo, err := githost.ParseRepoURL(req.RepoURL)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, err)
		return githost.RepoRef{}, false
	}
	return repo, true
}

// ListRepoFiles returns the source files of the default branch.
func (ctl *Controller) ListRepoFiles(c *gin.Context) {
	repo, ok := bindRepo(c)
	if !ok {
		return
	}
	client, err := ctl.hostClient(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	tree, err := client.Tree(gmw.Ctx(c), repo)
	if err != nil {
		abortHostError(c, err, "Failed to fetch repository files")
		return
	}

	files := githost.FilterSourceFiles(tree.Entries)
	if files == nil {
		files = []*github.TreeEntry{}
	}
	c.JSON(http.StatusOK, files)
}

// SuggestFrameworks picks testing frameworks from the repository's language histogram.
func (ctl *Controller) SuggestFrameworks(c *gin.Context) {
	repo, ok := bindRepo(c)
	if !ok {
		return
	}
	client, err := ctl.hostClient(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, err)
		return
	}

	var (
		languages map[string]int
		info      *github.Repository
	)
	g, ctx := errgroup.WithContext(gmw.Ctx(c))
	g.Go(func() (err error) {
		languages, err = client.Languages(ctx, repo)
		return err
	})
	g.Go(func() (err error) {
		info, err = client.Repository(ctx, repo)
		return err
	})
	if err := g.Wait(); err != nil {
		abortHostError(c, err, "Failed to analyze repository")
		return
	}

	resp := dto.FrameworkSuggestions{
		AllLanguages: languages,
		RepositoryInfo: dto.RepositoryInfo{
			Name:        info.GetName(),
			Description: info.GetDescription(),
			Language:    info.GetLanguage(),
		},
	}
	if resp.AllLanguages == nil {
		resp.AllLanguages = map[string]int{}
	}
	primary := framework.PrimaryLanguage(languages)
	if primary != "" {
		resp.PrimaryLanguage = &primary
	}
	resp.SuggestedFrameworks = framework.Suggest(primary)

	c.JSON(http.StatusOK, resp)
}
