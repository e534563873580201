package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tya/internal/app/albums"
	"tya/internal/app/artists"
	"tya/internal/app/merch"
	"tya/internal/app/songs"
	"tya/internal/auth"
	"tya/internal/catalog"
	"tya/internal/logging"
)

// maxBodyBytes bounds upload and patch bodies. Covers travel inline.
const maxBodyBytes = 8 << 20

// Server wires HTTP handlers to the catalog services.
type Server struct {
	songs   songs.Service
	albums  albums.Service
	merch   merch.Service
	artists artists.Service

	// gate wraps every mutating route and must place the caller identity
	// on the request context.
	gate func(http.Handler) http.Handler
}

// New configures a Server. gate guards uploads, patches and deletes.
func New(
	songService songs.Service,
	albumService albums.Service,
	merchService merch.Service,
	artistService artists.Service,
	gate func(http.Handler) http.Handler,
) *Server {
	return &Server{
		songs:   songService,
		albums:  albumService,
		merch:   merchService,
		artists: artistService,
		gate:    gate,
	}
}

// Routes exposes the catalog HTTP surface.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/genres", s.handleGenres).Methods(http.MethodGet)

	s.mountSongs(r.PathPrefix("/song").Subrouter())
	s.mountAlbums(r.PathPrefix("/album").Subrouter())
	s.mountMerch(r.PathPrefix("/merch").Subrouter())
	s.mountArtists(r.PathPrefix("/artist").Subrouter())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	return r
}

// kindRoutes carries the handlers every entity path exposes.
type kindRoutes struct {
	list, filter, search, upload, get, patch, remove http.HandlerFunc
}

// mount registers a kind's handlers. Fixed paths precede {id} so that
// /list and friends never parse as ids.
func (s *Server) mount(r *mux.Router, h kindRoutes) {
	r.HandleFunc("/list", h.list).Methods(http.MethodGet)
	r.HandleFunc("/filter", h.filter).Methods(http.MethodGet)
	r.HandleFunc("/search", h.search).Methods(http.MethodGet)
	r.Handle("/upload", s.gate(h.upload)).Methods(http.MethodPost)
	r.HandleFunc("/{id}", h.get).Methods(http.MethodGet)
	r.Handle("/{id}", s.gate(h.patch)).Methods(http.MethodPatch)
	r.Handle("/{id}", s.gate(h.remove)).Methods(http.MethodDelete)
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Genres())
}

type errorResponse struct {
	Error string `json:"error"`
}

// pathID reads the {id} route variable. A non-numeric id names no record.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}

// listIDs parses the required ids parameter of a list request.
func listIDs(w http.ResponseWriter, r *http.Request) ([]int64, bool) {
	ids, err := catalog.ParseIDList(r.URL.Query().Get("ids"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return nil, false
	}
	return ids, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// caller returns the identity the gate attached. Handlers behind the gate
// always have one.
func caller(w http.ResponseWriter, r *http.Request) (catalog.Identity, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return catalog.Identity{}, false
	}
	return id, true
}

// writeServiceError maps catalog errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrReferential):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
	default:
		logging.WithContext(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
