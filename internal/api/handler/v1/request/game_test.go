package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateGameRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateGameRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  CreateGameRequest{RoomCode: "ROOM01", MaxPlayers: 4},
		},
		{
			name:    "missing room code",
			req:     CreateGameRequest{MaxPlayers: 4},
			wantErr: true,
		},
		{
			name:    "room code too short",
			req:     CreateGameRequest{RoomCode: "AB1", MaxPlayers: 4},
			wantErr: true,
		},
		{
			name:    "room code too long",
			req:     CreateGameRequest{RoomCode: "ABCDEFGHIJK", MaxPlayers: 4},
			wantErr: true,
		},
		{
			name:    "lowercase room code",
			req:     CreateGameRequest{RoomCode: "room01", MaxPlayers: 4},
			wantErr: true,
		},
		{
			name:    "max players below minimum",
			req:     CreateGameRequest{RoomCode: "ROOM01", MaxPlayers: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJoinGameRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     JoinGameRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  JoinGameRequest{PlayerName: "Alice", SelectedNumbers: []int{1, 2, 3, 4, 5}},
		},
		{
			name:    "missing player name",
			req:     JoinGameRequest{SelectedNumbers: []int{1, 2, 3, 4, 5}},
			wantErr: true,
		},
		{
			name: "player name too long",
			req: JoinGameRequest{
				PlayerName:      "A very very very very very very very long player name!",
				SelectedNumbers: []int{1, 2, 3, 4, 5},
			},
			wantErr: true,
		},
		{
			name:    "too few numbers",
			req:     JoinGameRequest{PlayerName: "Alice", SelectedNumbers: []int{1, 2, 3, 4}},
			wantErr: true,
		},
		{
			name:    "too many numbers",
			req:     JoinGameRequest{PlayerName: "Alice", SelectedNumbers: []int{1, 2, 3, 4, 5, 6}},
			wantErr: true,
		},
		{
			name:    "number below range",
			req:     JoinGameRequest{PlayerName: "Alice", SelectedNumbers: []int{0, 2, 3, 4, 5}},
			wantErr: true,
		},
		{
			name:    "number above range",
			req:     JoinGameRequest{PlayerName: "Alice", SelectedNumbers: []int{1, 2, 3, 4, 51}},
			wantErr: true,
		},
		{
			name:    "duplicate numbers",
			req:     JoinGameRequest{PlayerName: "Alice", SelectedNumbers: []int{1, 2, 3, 4, 4}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDrawNumberRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DrawNumberRequest{GameID: 1}).Validate())
	assert.Error(t, (&DrawNumberRequest{}).Validate())
}

func TestCheckWinnersRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CheckWinnersRequest{GameID: 1}).Validate())
	assert.Error(t, (&CheckWinnersRequest{}).Validate())
}

func TestLeaveGameRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LeaveGameRequest{GameID: 1, PlayerID: 2}).Validate())
	assert.Error(t, (&LeaveGameRequest{GameID: 1}).Validate())
	assert.Error(t, (&LeaveGameRequest{PlayerID: 2}).Validate())
}
