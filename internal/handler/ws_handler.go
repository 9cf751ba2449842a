package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/portfolio-backend/internal/calculator"
	"github.com/stemsi/portfolio-backend/internal/gpa"
	"github.com/stemsi/portfolio-backend/internal/response"
	ws "github.com/stemsi/portfolio-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler serves the interactive calculator over a WebSocket. Each
// connection owns one calculator; nothing outlives the connection.
type WSHandler struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// CalculatorStream godoc
// WS /ws/v1/gpa/calculator
func (h *WSHandler) CalculatorStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("request_id", response.RequestID(c)).Logger()
	wsLog.Debug().Msg("Calculator connected")

	calc := calculator.New()
	if err := writeState(conn, calc); err != nil {
		return
	}

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		if err := h.dispatch(conn, calc, &msg); err != nil {
			wsLog.Debug().Err(err).Msg("Write failed")
			return
		}
	}
}

// dispatch applies one action. The returned error is a write failure; action
// failures are reported to the client as error events.
func (h *WSHandler) dispatch(conn *websocket.Conn, calc *calculator.Calculator, msg *ws.RequestPayload) error {
	switch msg.Action {
	case ws.ActionAddRow:
		calc.Editor().AddRow()
		return writeState(conn, calc)

	case ws.ActionUpdateRow:
		if err := calc.Editor().UpdateRow(msg.RowID, msg.Name, msg.Marks); err != nil {
			return writeActionError(conn, err)
		}
		return writeState(conn, calc)

	case ws.ActionRemoveRow:
		if err := calc.Editor().RemoveRow(msg.RowID); err != nil {
			return writeActionError(conn, err)
		}
		return writeState(conn, calc)

	case ws.ActionSubmit:
		res, err := calc.Submit()
		if err != nil {
			return writeActionError(conn, err)
		}
		return ws.WriteTyped(conn, ws.ResultResponse{
			Event:          ws.EventResult,
			GPA:            res.GPA,
			GPADisplay:     res.Display(),
			Classification: string(res.Classification),
			State:          calc.State(),
		})

	case ws.ActionReset:
		calc.Reset()
		return writeState(conn, calc)

	case ws.ActionPing:
		return ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})

	default:
		h.log.Debug().Str("action", string(msg.Action)).Msg("Unknown action")
		return ws.WriteError(conn, string(response.ErrInvalidPayload), "unknown action: "+string(msg.Action), "")
	}
}

func writeState(conn *websocket.Conn, calc *calculator.Calculator) error {
	return ws.WriteTyped(conn, ws.StateResponse{Event: ws.EventState, State: calc.State()})
}

func writeActionError(conn *websocket.Conn, err error) error {
	var ve *gpa.ValidationError
	switch {
	case errors.As(err, &ve):
		field := fmt.Sprintf("rows[%d].%s", ve.Index, ve.Field)
		return ws.WriteError(conn, string(response.ErrValidation), ve.Reason, field)
	case errors.Is(err, gpa.ErrEmptyBatch):
		return ws.WriteError(conn, string(response.ErrEmptyBatch), response.GetMessage(response.ErrEmptyBatch), "")
	case errors.Is(err, calculator.ErrLastRow):
		return ws.WriteError(conn, string(response.ErrLastRow), response.GetMessage(response.ErrLastRow), "")
	case errors.Is(err, calculator.ErrRowNotFound):
		return ws.WriteError(conn, string(response.ErrRowNotFound), response.GetMessage(response.ErrRowNotFound), "")
	default:
		return ws.WriteError(conn, string(response.ErrInternal), response.GetMessage(response.ErrInternal), "")
	}
}
