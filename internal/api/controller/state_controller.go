package controller

import (
	"ctchen222/tictactoe-term/internal/api/response"
	"ctchen222/tictactoe-term/pkg/proto"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SnapshotSource provides the latest published game snapshot.
type SnapshotSource interface {
	Latest() (proto.Snapshot, bool)
}

// StateController serves the running game's state over HTTP.
type StateController struct {
	source SnapshotSource
}

// NewStateController creates a new StateController.
func NewStateController(source SnapshotSource) *StateController {
	return &StateController{
		source: source,
	}
}

// Health reports that the spectator server is up.
func (sc *StateController) Health(c *gin.Context) {
	response.SuccessResponse(c, response.Status{Status: "ok"})
}

// GetState returns the latest snapshot of the game.
func (sc *StateController) GetState(c *gin.Context) {
	snapshot, ok := sc.source.Latest()
	if !ok {
		response.ErrorResponse(c, http.StatusNotFound, "no game state published yet")
		return
	}

	response.SuccessResponse(c, snapshot)
}
