package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves the maze of the authenticated player.
type MazeController struct {
	sessions i.MazeSessionManager
}

// NewMazeController initializes a MazeController.
func NewMazeController(sessions i.MazeSessionManager) (*MazeController, error) {
	if sessions == nil {
		return nil, errors.New("maze session manager is required")
	}
	return &MazeController{sessions: sessions}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", mc.leaderboard)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.start)
		mazes.GET("/runs", mc.runs)
		mazes.GET("/current", mc.state)
		mazes.GET("/current/ascii", mc.ascii)
		mazes.POST("/current/moves", mc.move)
		mazes.POST("/current/drags", mc.drag)
		mazes.PUT("/current/dimensions", mc.resize)
		mazes.PUT("/current/viewport", mc.viewport)
	}
}

// start replaces the player's maze with a new one.
func (mc *MazeController) start(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	var request DimensionsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := mc.sessions.Start(ctx, playerID, game.Dimensions{Cols: request.Cols, Rows: request.Rows})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, stateResponse(state))
}

// state returns the player's current maze.
func (mc *MazeController) state(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	state, err := mc.sessions.State(ctx, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(state))
}

// ascii returns the player's maze drawn as text.
func (mc *MazeController) ascii(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	picture, err := mc.sessions.Render(ctx, playerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.String(http.StatusOK, picture)
}

// move walks the player one cell.
func (mc *MazeController) move(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction, err := maze.ParseDirection(request.Direction)
	if err != nil {
		writeError(ctx, err)
		return
	}

	result, err := mc.sessions.Move(ctx, playerID, direction)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, moveResponse(result))
}

// drag moves the player according to a drag gesture.
func (mc *MazeController) drag(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	var request DragRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := mc.sessions.Drag(ctx, playerID, request.DX, request.DY, request.CellSize)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, moveResponse(result))
}

// resize regenerates the maze with explicit dimensions.
func (mc *MazeController) resize(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	var request DimensionsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := mc.sessions.Resize(ctx, playerID, game.Dimensions{Cols: request.Cols, Rows: request.Rows})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(state))
}

// viewport lets the layout policy pick dimensions for the client's screen.
func (mc *MazeController) viewport(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	var request ViewportRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := mc.sessions.FitViewport(ctx, playerID, request.Width, request.Height)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stateResponse(state))
}

// runs lists the mazes the player solved.
func (mc *MazeController) runs(ctx *gin.Context) {
	playerID, ok := mc.playerID(ctx)
	if !ok {
		return
	}

	limit, err := queryLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	runs, err := mc.sessions.Runs(ctx, playerID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	response := make([]*RunResponse, 0, len(runs))
	for _, r := range runs {
		response = append(response, runResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

// leaderboard returns the players with the most solved mazes.
func (mc *MazeController) leaderboard(ctx *gin.Context) {
	limit, err := queryLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := mc.sessions.Leaderboard(ctx, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, leaderboardResponse(entries))
}

func (mc *MazeController) playerID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := identity.PlayerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unknown player"})
		return uuid.Nil, false
	}
	return id, true
}

func queryLimit(ctx *gin.Context) (int64, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// writeError maps service errors to HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrInvalidDirection),
		errors.Is(err, service.ErrDimensionTooLarge),
		errors.Is(err, service.ErrInvalidViewport):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
