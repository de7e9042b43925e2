package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/setlist/internal/core/playlist"
	"github.com/hay-kot/setlist/internal/core/profile"
	"github.com/hay-kot/setlist/pkg/randid"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// PlaylistView is the response body of every playlist route.
type PlaylistView struct {
	Items   []playlist.Song `json:"items"`
	CanUndo bool            `json:"canUndo"`
	CanRedo bool            `json:"canRedo"`
}

func viewOf(s playlist.State) PlaylistView {
	items := s.Items
	if items == nil {
		items = []playlist.Song{}
	}
	return PlaylistView{Items: items, CanUndo: s.CanUndo(), CanRedo: s.CanRedo()}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listSongs(w http.ResponseWriter, r *http.Request) {
	state := s.playlist.State()

	items, err := playlist.Filter(state.Items, r.URL.Query().Get("match"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := viewOf(state)
	view.Items = items
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) addSong(w http.ResponseWriter, r *http.Request) {
	var song playlist.Song
	if !decode(w, r, &song) {
		return
	}

	song = song.Normalize()
	if song.ID == "" {
		song.ID = randid.New()
	}
	if err := song.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, viewOf(s.playlist.Add(song)))
}

func (s *Server) removeSong(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeJSON(w, http.StatusOK, viewOf(s.playlist.Remove(id)))
}

func (s *Server) clearSongs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.playlist.Clear()))
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.playlist.Undo()))
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewOf(s.playlist.Redo()))
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.profiles.Current())
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if !decode(w, r, &p) {
		return
	}
	writeJSON(w, http.StatusOK, s.profiles.Update(p))
}

func (s *Server) submitProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if !decode(w, r, &p) {
		return
	}

	saved, err := s.profiles.Submit(p)
	if err != nil {
		writeValidation(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, err error) {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field] = fe.Err.Error()
	}
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: fields})
}
