package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/crew-draft-backend/internal/errors"
	"github.com/DoyleJ11/crew-draft-backend/internal/types"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 3 * time.Second
)

// Streamer runs a draft and reports each pick as it is replayed.
type Streamer interface {
	RunStream(ctx context.Context, req types.DraftRequest, emit func(types.PickView) error) (*types.DraftResponse, error)
}

// Handler serves one draft per connection: the client sends a DraftRequest,
// the server streams Pick messages and finishes with DraftCompleted or
// Error before closing.
func Handler(svc Streamer, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			logger.Warn("websocket accept failed", zap.Error(err))
			return
		}
		defer conn.Close(websocket.StatusInternalError, "unexpected exit")

		ctx := r.Context()
		req, err := readRequest(ctx, conn)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			_ = writeMessage(ctx, conn, errorMessage(err))
			conn.Close(websocket.StatusPolicyViolation, "bad request")
			return
		}

		out := make(chan types.ServerMessage, 8)
		g, gctx := errgroup.WithContext(ctx)

		// Writer goroutine
		g.Go(func() error {
			for msg := range out {
				if err := writeMessage(gctx, conn, msg); err != nil {
					return err
				}
			}
			return nil
		})

		g.Go(func() error {
			defer close(out)
			send := func(msg types.ServerMessage) error {
				select {
				case out <- msg:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			}

			resp, err := svc.RunStream(gctx, req, func(pv types.PickView) error {
				return send(types.ServerMessage{Type: types.MsgPick, Pick: &pv})
			})
			if err != nil {
				logger.Warn("websocket draft failed", zap.Error(err))
				return send(errorMessage(err))
			}
			return send(types.ServerMessage{Type: types.MsgDraftCompleted, Result: resp})
		})

		if err := g.Wait(); err != nil {
			logger.Debug("websocket stream ended early", zap.Error(err))
			return
		}
		conn.Close(websocket.StatusNormalClosure, "draft complete")
	}
}

func readRequest(ctx context.Context, conn *websocket.Conn) (types.DraftRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var req types.DraftRequest
	_, data, err := conn.Read(ctx)
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, errors.WrapWithCode(err, errors.CodeInvalidArgument, "bad json")
	}
	return req, nil
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg types.ServerMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func errorMessage(err error) types.ServerMessage {
	return types.ServerMessage{
		Type: types.MsgError,
		Error: &types.ErrorBody{
			Code:    errors.GetCode(err).String(),
			Message: errors.GetMessage(err),
		},
	}
}
