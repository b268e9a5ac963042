package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/api/handler/v1/request"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/domain"
	"github.com/yizeng/gab/gin/gorm/lottery-draw/internal/service"
)

type GameService interface {
	CreateGame(ctx context.Context, roomCode string, maxPlayers int) (domain.Game, error)
	JoinGame(ctx context.Context, roomCode, playerName string, selectedNumbers []int) (domain.Player, error)
	StartGame(ctx context.Context, roomCode string) (domain.Game, error)
	DrawNumber(ctx context.Context, gameID uint) (domain.DrawEvent, error)
	CheckWinners(ctx context.Context, gameID uint) ([]domain.Player, error)
	LeaveGame(ctx context.Context, gameID, playerID uint) error
	GetGameState(ctx context.Context, roomCode string) (domain.GameState, error)
	GetGameHistory(ctx context.Context) ([]domain.Game, error)
}

type GameHandler struct {
	svc GameService
}

func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{
		svc: svc,
	}
}

// HandleCreateGame godoc
// @Summary      Create a new game room
// @Description  Creates a waiting game with a unique room code
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateGameRequest  true  "Room details"
// @Success      201    {object}  domain.Game
// @Failure      400    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /games [post]
func (h *GameHandler) HandleCreateGame(ctx *gin.Context) {
	var input request.CreateGameRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if input.MaxPlayers == 0 {
		input.MaxPlayers = domain.DefaultMaxPlayers
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	game, err := h.svc.CreateGame(ctx.Request.Context(), input.RoomCode, input.MaxPlayers)
	if err != nil {
		if errors.Is(err, service.ErrRoomCodeExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("HandleCreateGame -> h.svc.CreateGame -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

// HandleJoinGame godoc
// @Summary      Join a game
// @Description  Adds a player with their five selected numbers to a waiting game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        roomCode  path      string                   true  "Room code"
// @Param        input     body      request.JoinGameRequest  true  "Player details"
// @Success      201       {object}  domain.Player
// @Failure      400       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /games/{roomCode}/join [post]
func (h *GameHandler) HandleJoinGame(ctx *gin.Context) {
	roomCode := ctx.Param("roomCode")

	var input request.JoinGameRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := h.svc.JoinGame(ctx.Request.Context(), roomCode, input.PlayerName, input.SelectedNumbers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "roomCode", roomCode))
		case errors.Is(err, service.ErrGameNotAccepting), errors.Is(err, service.ErrGameFull):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleJoinGame -> h.svc.JoinGame -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, player)
}

// HandleStartGame godoc
// @Summary      Start a game
// @Description  Moves a waiting game with at least two players to in_progress
// @Tags         games
// @Produce      json
// @Param        roomCode  path      string  true  "Room code"
// @Success      200       {object}  domain.Game
// @Failure      404       {object}  response.Err
// @Failure      409       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /games/{roomCode}/start [post]
func (h *GameHandler) HandleStartGame(ctx *gin.Context) {
	roomCode := ctx.Param("roomCode")

	game, err := h.svc.StartGame(ctx.Request.Context(), roomCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "roomCode", roomCode))
		case errors.Is(err, service.ErrGameAlreadyStarted), errors.Is(err, service.ErrInsufficientPlayers):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleStartGame -> h.svc.StartGame -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleDrawNumber godoc
// @Summary      Draw the next number
// @Description  Draws one random number for an in-progress game; the fifth draw also evaluates winners
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input  body      request.DrawNumberRequest  true  "Game ID"
// @Success      201    {object}  domain.DrawEvent
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /games/draw [post]
func (h *GameHandler) HandleDrawNumber(ctx *gin.Context) {
	var input request.DrawNumberRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.DrawNumber(ctx.Request.Context(), input.GameID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "gameID", input.GameID))
		case errors.Is(err, service.ErrGameNotInProgress),
			errors.Is(err, service.ErrAllNumbersDrawn),
			errors.Is(err, service.ErrNoAvailableNumbers):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleDrawNumber -> h.svc.DrawNumber -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleCheckWinners godoc
// @Summary      Evaluate winners
// @Description  Marks players whose selection matches the drawn set; idempotent once the game is completed
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input  body      request.CheckWinnersRequest  true  "Game ID"
// @Success      200    {array}   domain.Player
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      412    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /games/winners [post]
func (h *GameHandler) HandleCheckWinners(ctx *gin.Context) {
	var input request.CheckWinnersRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	winners, err := h.svc.CheckWinners(ctx.Request.Context(), input.GameID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "gameID", input.GameID))
		case errors.Is(err, service.ErrDrawIncomplete):
			response.RenderErr(ctx, response.ErrPreconditionFailed(err))
		default:
			err = fmt.Errorf("HandleCheckWinners -> h.svc.CheckWinners -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, winners)
}

// HandleLeaveGame godoc
// @Summary      Leave a game
// @Description  Removes a player from a waiting game; the game is deleted when its last player leaves
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        input  body      request.LeaveGameRequest  true  "Game and player IDs"
// @Success      200    {object}  response.LeaveGameResponse
// @Failure      400    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /games/leave [post]
func (h *GameHandler) HandleLeaveGame(ctx *gin.Context) {
	var input request.LeaveGameRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.LeaveGame(ctx.Request.Context(), input.GameID, input.PlayerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFound("game", "gameID", input.GameID))
		case errors.Is(err, service.ErrPlayerNotFound):
			response.RenderErr(ctx, response.ErrNotFound("player", "playerID", input.PlayerID))
		case errors.Is(err, service.ErrLeaveNotWaiting):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("HandleLeaveGame -> h.svc.LeaveGame -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.LeaveGameResponse{Success: true})
}

// HandleGetGame godoc
// @Summary      Get game state
// @Description  Returns the game, its players in join order and the latest draw
// @Tags         games
// @Produce      json
// @Param        roomCode  path      string  true  "Room code"
// @Success      200       {object}  domain.GameState
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /games/{roomCode} [get]
func (h *GameHandler) HandleGetGame(ctx *gin.Context) {
	roomCode := ctx.Param("roomCode")

	state, err := h.svc.GetGameState(ctx.Request.Context(), roomCode)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("game", "roomCode", roomCode))
			return
		}

		err = fmt.Errorf("HandleGetGame -> h.svc.GetGameState -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleGetGameHistory godoc
// @Summary      List completed games
// @Description  Returns completed games, most recent first, capped at 100
// @Tags         games
// @Produce      json
// @Success      200  {array}   domain.Game
// @Failure      500  {object}  response.Err
// @Router       /games/history [get]
func (h *GameHandler) HandleGetGameHistory(ctx *gin.Context) {
	games, err := h.svc.GetGameHistory(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetGameHistory -> h.svc.GetGameHistory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, games)
}
