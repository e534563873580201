package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"tya/internal/catalog"
)

type artistIDResponse struct {
	ArtistID int64 `json:"artistId"`
}

func (s *Server) mountArtists(r *mux.Router) {
	s.mount(r, kindRoutes{
		list:   s.handleArtistList,
		filter: s.handleArtistFilter,
		search: s.handleArtistSearch,
		upload: s.handleArtistUpload,
		get:    s.handleArtist,
		patch:  s.handleArtistPatch,
		remove: s.handleArtistDelete,
	})
}

func (s *Server) handleArtistList(w http.ResponseWriter, r *http.Request) {
	ids, ok := listIDs(w, r)
	if !ok {
		return
	}
	found, err := s.artists.List(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleArtistFilter(w http.ResponseWriter, r *http.Request) {
	found, err := s.artists.Filter(r.Context(), catalog.ParseFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleArtistSearch(w http.ResponseWriter, r *http.Request) {
	found, err := s.artists.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleArtistUpload(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var upload catalog.ArtistUpload
	if !decodeBody(w, r, &upload) {
		return
	}
	created, err := s.artists.Create(r.Context(), who, upload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artistIDResponse{ArtistID: created.ID})
}

func (s *Server) handleArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleArtistPatch(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch catalog.ArtistPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.artists.Update(r.Context(), who, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleArtistDelete(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.artists.Delete(r.Context(), who, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, artistIDResponse{ArtistID: id})
}
