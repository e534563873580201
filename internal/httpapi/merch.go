package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"tya/internal/catalog"
)

type merchIDResponse struct {
	MerchID int64 `json:"merchId"`
}

func (s *Server) mountMerch(r *mux.Router) {
	s.mount(r, kindRoutes{
		list:   s.handleMerchList,
		filter: s.handleMerchFilter,
		search: s.handleMerchSearch,
		upload: s.handleMerchUpload,
		get:    s.handleMerch,
		patch:  s.handleMerchPatch,
		remove: s.handleMerchDelete,
	})
}

func (s *Server) handleMerchList(w http.ResponseWriter, r *http.Request) {
	ids, ok := listIDs(w, r)
	if !ok {
		return
	}
	found, err := s.merch.List(r.Context(), ids)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// handleMerchFilter answers with a page of merch ids.
func (s *Server) handleMerchFilter(w http.ResponseWriter, r *http.Request) {
	found, err := s.merch.Filter(r.Context(), catalog.ParseFilter(r.URL.Query()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleMerchSearch(w http.ResponseWriter, r *http.Request) {
	found, err := s.merch.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleMerchUpload(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	var upload catalog.MerchUpload
	if !decodeBody(w, r, &upload) {
		return
	}
	created, err := s.merch.Create(r.Context(), who, upload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, merchIDResponse{MerchID: created.ID})
}

func (s *Server) handleMerch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	merch, err := s.merch.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, merch)
}

func (s *Server) handleMerchPatch(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch catalog.MerchPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	updated, err := s.merch.Update(r.Context(), who, id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleMerchDelete(w http.ResponseWriter, r *http.Request) {
	who, ok := caller(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.merch.Delete(r.Context(), who, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, merchIDResponse{MerchID: id})
}
