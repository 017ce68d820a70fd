package http_movie

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/moviematch/internal/delivery/http/common"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/humanbelnik/moviematch/internal/pkg/logctx"
	usecase_catalog "github.com/humanbelnik/moviematch/internal/usecase/catalog"
)

type GenresResponseDTO struct {
	Genres []model.Genre `json:"genres"`
}

type Controller struct {
	uc *usecase_catalog.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_catalog.Usecase,
	opts ...ControllerOption) *Controller {
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
	router.GET("/genres", c.getGenres)

	movies := router.Group("/movies")
	movies.GET("/discover", c.discover)
	movies.GET("/:movie_id", c.getMovie)
}

// @Summary List genres
// @Tags Catalog
// @Produce json
// @Success 200 {object} GenresResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /genres [get]
func (c *Controller) getGenres(ctx *gin.Context) {
	genres, err := c.uc.Genres(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, err, "Failed to load genres")
		return
	}
	if genres == nil {
		genres = []model.Genre{}
	}

	ctx.JSON(http.StatusOK, GenresResponseDTO{Genres: genres})
}

// @Summary Discover movies, most popular first
// @Tags Catalog
// @Produce json
// @Param genre query string false "genre id or all"
// @Param page query int false "page number, 1-based"
// @Success 200 {object} model.DiscoverPage
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/discover [get]
func (c *Controller) discover(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:  "Invalid page",
			Code:   http.StatusBadRequest,
			Errors: []http_common.FieldError{{Field: "page", Message: "must be a positive integer"}},
		})
		return
	}

	result, err := c.uc.Discover(ctx.Request.Context(), ctx.Query("genre"), page)
	if err != nil {
		c.fail(ctx, err, "Failed to discover movies")
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// @Summary Movie details with credits
// @Tags Catalog
// @Produce json
// @Param movie_id path int true "TMDB movie id"
// @Success 200 {object} model.MovieDetail
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Failure 500 {object} http_common.ErrorResponse
// @Router /movies/{movie_id} [get]
func (c *Controller) getMovie(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error: "Invalid movie ID",
			Code:  http.StatusBadRequest,
		})
		return
	}

	movie, err := c.uc.Movie(ctx.Request.Context(), id)
	if err != nil {
		c.fail(ctx, err, "Failed to load movie")
		return
	}

	ctx.JSON(http.StatusOK, movie)
}

func (c *Controller) fail(ctx *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, usecase_catalog.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "Invalid request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, usecase_catalog.ErrNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Error: "Movie not found",
			Code:  http.StatusNotFound,
		})
	default:
		logctx.FromOr(ctx.Request.Context(), c.logger).Error(msg, slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error: msg,
			Code:  http.StatusInternalServerError,
		})
	}
}
