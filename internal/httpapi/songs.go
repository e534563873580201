package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"tya/internal/catalog"
)

type songIDResponse struct {
	SongID int64 `json:"songId"`
}

func (s *Server) mountSongs(r *mux.Router) {
	s.mount(r, kindRoutes{
		list:   s.handleSongList,
		filter: s.handleSongFilter,
		search: s.handleSongSearch,
		upload: s.handleSongUpload,
		get:    s.handleSong,
		patch:  s.handleSongPatch,
		remove: s.handleSongDelete,
	})
}

func (s *Server) handleSongList(w http.ResponseWriter, r *http.Request) {
	ids, ok := listIDs(w, r)
	if !ok {
		return
	}
	found, err := s.songs.List(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// handleSongFilter answers with full song projections, unlike the other
// kinds which answer with ids.
func (s *Server) handleSongFilter(w http.ResponseWriter, r *http.Request) {
	found, err := s.songs.Filter(r.Context(), catalog.ParseFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleSongSearch(w http.ResponseWriter, r *http.Request) {
	found, err := s.songs.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleSongUpload(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var upload catalog.SongUpload
	if !decodeBody(w, r, &upload) {
		return
	}
	created, err := s.songs.Create(r.Context(), who, upload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songIDResponse{SongID: created.ID})
}

func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	song, err := s.songs.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleSongPatch(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch catalog.SongPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.songs.Update(r.Context(), who, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleSongDelete(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.songs.Delete(r.Context(), who, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, songIDResponse{SongID: id})
}
