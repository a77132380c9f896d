package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/smash-proyect/bff/internal/httpserver/deps"
	"github.com/smash-proyect/bff/internal/logger"
	"github.com/smash-proyect/bff/internal/utils"
)

// Error tags returned to clients. They never carry downstream detail.
const (
	ErrTagLoginError      = "bff_login_error"
	ErrTagBadGateway      = "bad_gateway"
	ErrTagInvalidJSON     = "invalid_json"
	ErrTagPayloadTooLarge = "payload_too_large"
	ErrTagNoSnapshot      = "no_snapshot"
)

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

var emptyObject = []byte("{}")

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	if err := utils.WriteJSON(w, status, v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeRaw(w http.ResponseWriter, d deps.Deps, status int, body []byte) {
	if err := utils.WriteRawJSON(w, status, body); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, d deps.Deps, status int, tag string) {
	writeJSON(w, d, status, errorResponse{Error: tag})
}

// readJSONBody reads the request body within the configured limit. An empty
// body becomes "{}". Only a JSON object or array is accepted; anything else
// is answered with 400 and ok=false.
func readJSONBody(w http.ResponseWriter, r *http.Request, d deps.Deps) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, d.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, d, http.StatusRequestEntityTooLarge, ErrTagPayloadTooLarge)
			return nil, false
		}
		d.Logger.Warn("failed to read request body", logger.Error(err))
		writeError(w, d, http.StatusBadRequest, ErrTagInvalidJSON)
		return nil, false
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return emptyObject, true
	}
	if (body[0] != '{' && body[0] != '[') || !utils.ValidJSON(body) {
		writeError(w, d, http.StatusBadRequest, ErrTagInvalidJSON)
		return nil, false
	}
	return body, true
}
