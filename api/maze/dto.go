// Package mazeapi exposes the hosted maze games over HTTP.
package mazeapi

import (
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// DimensionsRequest asks for a maze of the given size.
type DimensionsRequest struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// MoveRequest asks to walk the player one cell.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// DragRequest carries a drag displacement measured from the centre of the player's cell.
type DragRequest struct {
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
	CellSize float64 `json:"cell_size" binding:"required"`
}

// ViewportRequest reports the size of the client's drawing surface.
type ViewportRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// PositionResponse is a cell coordinate.
type PositionResponse struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// CellResponse holds the wall flags of one cell.
type CellResponse struct {
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
}

// StateResponse is everything a client needs to draw the maze.
type StateResponse struct {
	Cols    int              `json:"cols"`
	Rows    int              `json:"rows"`
	Cells   [][]CellResponse `json:"cells"` // Indexed by row then column.
	Player  PositionResponse `json:"player"`
	Exit    PositionResponse `json:"exit"`
	Seed    int64            `json:"seed"`
	Moves   int              `json:"moves"`
	Solved  int              `json:"solved"`
	Version int64            `json:"version"`
}

// RunResponse summarizes a solved maze.
type RunResponse struct {
	Cols     int       `json:"cols"`
	Rows     int       `json:"rows"`
	Seed     int64     `json:"seed"`
	Moves    int       `json:"moves"`
	SolvedAt time.Time `json:"solved_at"`
}

// MoveResponse is the outcome of a move or drag.
type MoveResponse struct {
	Direction string           `json:"direction,omitempty"`
	From      PositionResponse `json:"from"`
	Player    PositionResponse `json:"player"`
	Moved     bool             `json:"moved"`
	Solved    bool             `json:"solved"`
	Run       *RunResponse     `json:"run,omitempty"`
}

// LeaderboardEntryResponse is one ranked player.
type LeaderboardEntryResponse struct {
	PlayerID string `json:"player_id"`
	Username string `json:"username,omitempty"`
	Solved   int    `json:"solved"`
}

func positionResponse(p maze.CellPosition) PositionResponse {
	return PositionResponse{Col: p.Col, Row: p.Row}
}

func stateResponse(s game.State) *StateResponse {
	cells := make([][]CellResponse, len(s.Cells))
	for row := range s.Cells {
		cells[row] = make([]CellResponse, len(s.Cells[row]))
		for col, c := range s.Cells[row] {
			cells[row][col] = CellResponse{
				Top:    c.TopWall,
				Bottom: c.BottomWall,
				Left:   c.LeftWall,
				Right:  c.RightWall,
			}
		}
	}

	return &StateResponse{
		Cols:    s.Dims.Cols,
		Rows:    s.Dims.Rows,
		Cells:   cells,
		Player:  positionResponse(s.Player),
		Exit:    positionResponse(s.Exit),
		Seed:    s.Seed,
		Moves:   s.Moves,
		Solved:  s.Solved,
		Version: s.Version,
	}
}

func runResponse(r game.SolvedRun) *RunResponse {
	return &RunResponse{
		Cols:     r.Dims.Cols,
		Rows:     r.Dims.Rows,
		Seed:     r.Seed,
		Moves:    r.Moves,
		SolvedAt: r.SolvedAt,
	}
}

func moveResponse(r game.MoveResult) *MoveResponse {
	response := &MoveResponse{
		Direction: string(r.Direction),
		From:      positionResponse(r.From),
		Player:    positionResponse(r.Player),
		Moved:     r.Moved,
		Solved:    r.Solved,
	}
	if r.Run != nil {
		response.Run = runResponse(*r.Run)
	}
	return response
}

func leaderboardResponse(entries []i.LeaderboardEntry) []LeaderboardEntryResponse {
	response := make([]LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, LeaderboardEntryResponse{
			PlayerID: e.PlayerID,
			Username: e.Username,
			Solved:   e.Solved,
		})
	}
	return response
}
