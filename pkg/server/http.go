package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shambalink/shambalink/pkg/server/commands"
	serverErrors "github.com/shambalink/shambalink/pkg/server/errors"
	"github.com/shambalink/shambalink/pkg/types"
)

const (
	headerActorID    = "X-Actor-Id"
	headerActorRoles = "X-Actor-Roles"
)

// apiError is the wire shape of every non-2xx response.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Handler returns the HTTP mux exposing the service's JSON API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/listings/search", s.handleSearchListings)
	mux.HandleFunc("GET /v1/traceability", s.handleTraceability)
	return mux
}

func (s *Server) handleSearchListings(w http.ResponseWriter, r *http.Request) {
	var req commands.SearchListingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, status.Error(codes.InvalidArgument, "Invalid request body"))
		return
	}

	resp, err := s.SearchListingsByLocation(r.Context(), actorFromRequest(r), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTraceability(w http.ResponseWriter, r *http.Request) {
	req := &commands.TraceabilityRequest{
		Identifier:     r.URL.Query().Get("identifier"),
		IdentifierKind: r.URL.Query().Get("identifierKind"),
	}

	resp, err := s.GetProductTraceability(r.Context(), actorFromRequest(r), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// actorFromRequest builds the caller identity from trusted headers. An edge
// proxy is expected to authenticate the caller and stamp these headers; an
// absent identity still evaluates, it just matches no ownership rule.
func actorFromRequest(r *http.Request) types.Actor {
	actor := types.Actor{ID: r.Header.Get(headerActorID)}
	if raw := r.Header.Get(headerActorRoles); raw != "" {
		for _, role := range strings.Split(raw, ",") {
			if role = strings.TrimSpace(role); role != "" {
				actor.Roles = append(actor.Roles, role)
			}
		}
	}
	return actor
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError maps the command error taxonomy onto HTTP statuses. Internal
// causes are logged here and never serialized.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var internal serverErrors.InternalError
	if errors.As(err, &internal) {
		s.logger.Error("request failed", zap.Error(internal.Internal()))
	}

	st, _ := status.FromError(err)
	s.writeJSON(w, httpStatusFromCode(st.Code()), apiError{
		Code:    st.Code().String(),
		Message: st.Message(),
	})
}

func httpStatusFromCode(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.DeadlineExceeded:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
