package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

type fakeStreamer struct {
	picks []types.PickView
	resp  *types.DraftResponse
	err   error
	got   types.DraftRequest
}

func (f *fakeStreamer) RunStream(ctx context.Context, req types.DraftRequest, emit func(types.PickView) error) (*types.DraftResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	for _, pv := range f.picks {
		if err := emit(pv); err != nil {
			return nil, err
		}
	}
	return f.resp, nil
}

func dial(t *testing.T, svc Streamer) (*websocket.Conn, context.Context) {
	t.Helper()
	srv := httptest.NewServer(Handler(svc, nil))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn, ctx
}

func readAll(t *testing.T, ctx context.Context, conn *websocket.Conn) []types.ServerMessage {
	t.Helper()
	var msgs []types.ServerMessage
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return msgs
		}
		var msg types.ServerMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		msgs = append(msgs, msg)
	}
}

func TestHandler_StreamsPicksThenResult(t *testing.T) {
	svc := &fakeStreamer{
		picks: []types.PickView{
			{Type: "LeaderDrafted", Pick: 0, Player: 0, EntityID: 1},
			{Type: "CrewDrafted", Pick: 1, Player: 1, EntityID: 2},
		},
		resp: &types.DraftResponse{DraftID: "ABCD1234", Teams: []types.TeamView{{PlayerName: "Player 1"}}},
	}
	conn, ctx := dial(t, svc)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{"num_players":2,"draft_leader":true}`)))
	msgs := readAll(t, ctx, conn)

	require.Len(t, msgs, 3)
	assert.Equal(t, types.MsgPick, msgs[0].Type)
	assert.Equal(t, 1, msgs[0].Pick.EntityID)
	assert.Equal(t, types.MsgPick, msgs[1].Type)
	assert.Equal(t, types.MsgDraftCompleted, msgs[2].Type)
	assert.Equal(t, "ABCD1234", msgs[2].Result.DraftID)

	require.NotNil(t, svc.got.NumPlayers)
	assert.Equal(t, 2, *svc.got.NumPlayers)
	assert.True(t, svc.got.DraftLeader)
}

func TestHandler_ServiceError(t *testing.T) {
	svc := &fakeStreamer{err: errors.Unavailable("catalog down")}
	conn, ctx := dial(t, svc)

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{}`)))
	msgs := readAll(t, ctx, conn)

	require.Len(t, msgs, 1)
	assert.Equal(t, types.MsgError, msgs[0].Type)
	assert.Equal(t, "UNAVAILABLE", msgs[0].Error.Code)
	assert.Equal(t, "catalog down", msgs[0].Error.Message)
}

func TestHandler_BadJSON(t *testing.T) {
	conn, ctx := dial(t, &fakeStreamer{})

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(`{not json`)))
	msgs := readAll(t, ctx, conn)

	require.Len(t, msgs, 1)
	assert.Equal(t, "INVALID_ARGUMENT", msgs[0].Error.Code)
}
