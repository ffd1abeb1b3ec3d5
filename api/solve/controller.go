package solveapi

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-solver/api/identity"
	dmn "github.com/beka-birhanu/vinom-solver/domain"
	"github.com/beka-birhanu/vinom-solver/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlaybackInfo provides the socket coordinates viewers connect to.
type PlaybackInfo interface {
	SessionInfo() ([]byte, string, error)
}

// RunController manages solver-run operations.
type RunController struct {
	runner     i.Runner
	dispatcher i.Dispatcher
	playback   PlaybackInfo
}

// NewRunController initializes a RunController.
func NewRunController(runner i.Runner, dispatcher i.Dispatcher, playback PlaybackInfo) (*RunController, error) {
	return &RunController{
		runner:     runner,
		dispatcher: dispatcher,
		playback:   playback,
	}, nil
}

// RegisterPublic registers public routes.
func (rc *RunController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (rc *RunController) RegisterProtected(route *gin.RouterGroup) {
	runs := route.Group("/runs")
	{
		runs.POST("/", rc.submit)
		runs.GET("/:ID", rc.status)
		runs.GET("/:ID/playback", rc.playbackInfo)
	}
}

// submit handles run creation requests.
func (rc *RunController) submit(ctx *gin.Context) {
	var request RunRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner, ok := userID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var blob []byte
	if request.Maze != "" {
		var err error
		blob, err = base64.StdEncoding.DecodeString(request.Maze)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "maze must be base64"})
			return
		}
	}

	run, err := rc.runner.Submit(owner, request.Solver, blob)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rc.dispatcher.Submit(timeoutCtx, run.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while queueing run"})
		return
	}

	ctx.JSON(http.StatusAccepted, runResponse(run))
}

// status retrieves the current state of a run.
func (rc *RunController) status(ctx *gin.Context) {
	IDString := ctx.Params.ByName("ID")
	ID, err := uuid.Parse(IDString)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	run, err := rc.runner.Status(ID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no such run"})
		return
	}

	ctx.JSON(http.StatusOK, runResponse(run))
}

// playbackInfo retrieves the playback socket coordinates for a run.
func (rc *RunController) playbackInfo(ctx *gin.Context) {
	IDString := ctx.Params.ByName("ID")
	if _, err := uuid.Parse(IDString); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	pubKey, socketAddr, err := rc.playback.SessionInfo()
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no playback socket"})
		return
	}

	response := &PlaybackInfoResponse{
		SocketPubKey: pubKey,
		SocketAddr:   socketAddr,
	}
	ctx.JSON(http.StatusOK, response)
}

// userID extracts the authenticated user's id from the request claims.
func userID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, ok := ctx.Get(identity.ContextUserClaims)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	idStr, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func runResponse(run *dmn.Run) *RunResponse {
	resp := &RunResponse{
		ID:         run.ID.String(),
		Solver:     run.Solver,
		Status:     run.Status,
		MazeWidth:  run.MazeWidth,
		MazeHeight: run.MazeHeight,
		Steps:      run.Steps,
		CreatedAt:  run.CreatedAt,
	}
	for _, p := range run.Path {
		resp.Path = append(resp.Path, PathCell{Row: p.Row, Col: p.Col})
	}
	return resp
}
