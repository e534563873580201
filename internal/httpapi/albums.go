package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"tya/internal/catalog"
)

type albumIDResponse struct {
	AlbumID int64 `json:"albumId"`
}

func (s *Server) mountAlbums(r *mux.Router) {
	s.mount(r, kindRoutes{
		list:   s.handleAlbumList,
		filter: s.handleAlbumFilter,
		search: s.handleAlbumSearch,
		upload: s.handleAlbumUpload,
		get:    s.handleAlbum,
		patch:  s.handleAlbumPatch,
		remove: s.handleAlbumDelete,
	})
}

func (s *Server) handleAlbumList(w http.ResponseWriter, r *http.Request) {
	ids, ok := listIDs(w, r)
	if !ok {
		return
	}
	found, err := s.albums.List(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// handleAlbumFilter answers with a page of album ids. Genres match through
// the album's member songs.
func (s *Server) handleAlbumFilter(w http.ResponseWriter, r *http.Request) {
	found, err := s.albums.Filter(r.Context(), catalog.ParseFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleAlbumSearch(w http.ResponseWriter, r *http.Request) {
	found, err := s.albums.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleAlbumUpload(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var upload catalog.AlbumUpload
	if !decodeBody(w, r, &upload) {
		return
	}
	created, err := s.albums.Create(r.Context(), who, upload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, albumIDResponse{AlbumID: created.ID})
}

func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	album, err := s.albums.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleAlbumPatch(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch catalog.AlbumPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.albums.Update(r.Context(), who, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAlbumDelete(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.albums.Delete(r.Context(), who, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, albumIDResponse{AlbumID: id})
}
