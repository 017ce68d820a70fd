package http_like

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/pkg/logctx"
	usecase_like "github.com/humanbelnik/moviematch/internal/usecase/like"
)

// LikeRequestDTO is a reaction to a movie. Liked defaults to true.
type LikeRequestDTO struct {
	TmdbID   int64  `json:"tmdbId" binding:"required,gt=0"`
	Username string `json:"username" binding:"required,max=64"`
	Liked    *bool  `json:"liked"`
}

type LikeResponseDTO struct {
	ID       int64  `json:"id"`
	TmdbID   int64  `json:"tmdbId"`
	Username string `json:"username"`
	Liked    bool   `json:"liked"`
}

func (r *LikeRequestDTO) Reaction() model.Reaction {
	if r.Liked == nil {
		return model.LikeReaction
	}
	return *r.Liked
}

func ConvertFromLike(l model.Like) LikeResponseDTO {
	return LikeResponseDTO{
		ID:       l.ID,
		TmdbID:   l.TmdbID,
		Username: l.Username,
		Liked:    l.Liked,
	}
}

type Controller struct {
	uc *usecase_like.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_like.Usecase,
	opts ...ControllerOption) *Controller {
	http_common.UseJSONFieldNames()

	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	movies := router.Group("/movies")
	movies.POST("/like", c.saveLike)
	movies.GET("/likes/:username", c.getLikes)
}

// @Summary Like or dislike a movie
// @Description Upserts the reaction of the user to the movie
// @Tags Likes
// @Accept json
// @Produce json
// @Param request body LikeRequestDTO true "reaction"
// @Success 201 {object} LikeResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/like [post]
func (c *Controller) saveLike(ctx *gin.Context) {
	var req LikeRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logctx.FromOr(ctx.Request.Context(), c.logger).Warn("invalid request body", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:  "Invalid request body",
			Code:   http.StatusBadRequest,
			Errors: http_common.FieldErrors(err),
		})
		return
	}

	like, err := c.uc.Save(ctx.Request.Context(), req.TmdbID, req.Username, req.Reaction())
	if err != nil {
		c.fail(ctx, err, "Failed to save like")
		return
	}

	ctx.JSON(http.StatusCreated, ConvertFromLike(like))
}

// @Summary Liked movies of a user
// @Tags Likes
// @Produce json
// @Param username path string true "username"
// @Success 200 {array} model.MovieDetail
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/likes/{username} [get]
func (c *Controller) getLikes(ctx *gin.Context) {
	matches, err := c.uc.Matches(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		c.fail(ctx, err, "Failed to load likes")
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

func (c *Controller) fail(ctx *gin.Context, err error, msg string) {
	if errors.Is(err, usecase_like.ErrInvalidInput) {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return
	}

	logctx.FromOr(ctx.Request.Context(), c.logger).Error(msg, slog.String("error", err.Error()))
	ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
		Error: msg,
		Code:  http.StatusInternalServerError,
	})
}
