package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cardboard/pkg/board"
	"github.com/matzehuels/cardboard/pkg/buildinfo"
	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/errors"
	"github.com/matzehuels/cardboard/pkg/render"
)

type boardResponse struct {
	Config board.Config `json:"config"`
	Rows   []board.Row  `json:"rows"`
}

type addCardRequest struct {
	RowID board.RowID `json:"rowId,omitempty"`
	Card  board.Card  `json:"card"`
}

type addCardResponse struct {
	Card    board.Card      `json:"card"`
	Changes board.ChangeSet `json:"changes"`
}

type moveRequest struct {
	TargetRowID board.RowID `json:"targetRowId"`
	Position    *int        `json:"position,omitempty"`
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type rowResizeRequest struct {
	Height float64 `json:"height"`
}

type widthResizeRequest struct {
	// Delta is the pointer travel in pixels, positive to the right.
	Delta float64 `json:"delta"`
	// RowWidth is the rendered row width in pixels.
	RowWidth float64 `json:"rowWidth"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, boardResponse{Config: s.engine.Config(), Rows: s.engine.Rows()})
}

func (s *Server) handleBoardSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := render.RenderSVG(r.Context(), render.ToDOT(s.engine.Rows(), render.DOTOptions{}))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render board"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	if s.engine.Config().DisableAddCard {
		s.writeError(w, disabled("adding cards"))
		return
	}
	var req addCardRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Card.ID == "" {
		req.Card.ID = board.CardID(s.newID())
	}
	if err := errors.ValidateCardID(string(req.Card.ID)); err != nil {
		s.writeError(w, err)
		return
	}
	if _, dup := s.engine.FindCard(req.Card.ID); dup {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "card %q already exists", req.Card.ID))
		return
	}
	if req.RowID != "" {
		row, ok := s.engine.FindRow(req.RowID)
		if !ok {
			s.writeError(w, rowNotFound(req.RowID))
			return
		}
		if len(row.Cards) >= s.engine.Config().MaxCardsPerRow {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "row %s is full", req.RowID))
			return
		}
	}

	changes := s.engine.AddCard(req.RowID, req.Card)
	card, _ := s.engine.FindCard(req.Card.ID)
	writeJSON(w, http.StatusCreated, addCardResponse{Card: card, Changes: changes})
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id := board.CardID(chi.URLParam(r, "id"))
	if _, ok := s.engine.FindCard(id); !ok {
		s.writeError(w, cardNotFound(id))
		return
	}
	var card board.Card
	if !s.decode(w, r, &card) {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.UpdateCard(id, card))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := board.CardID(chi.URLParam(r, "id"))
	card, ok := s.engine.FindCard(id)
	if !ok {
		s.writeError(w, cardNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, s.engine.DeleteCard(id, board.RowIDFor(card.Layout.Row)))
}

func (s *Server) handleMoveCard(w http.ResponseWriter, r *http.Request) {
	if s.engine.Config().DisableDrag {
		s.writeError(w, disabled("dragging"))
		return
	}
	id := board.CardID(chi.URLParam(r, "id"))
	card, ok := s.engine.FindCard(id)
	if !ok {
		s.writeError(w, cardNotFound(id))
		return
	}
	var req moveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if _, ok := s.engine.FindRow(req.TargetRowID); !ok {
		s.writeError(w, rowNotFound(req.TargetRowID))
		return
	}
	position := board.Append
	if req.Position != nil {
		position = *req.Position
	}
	writeJSON(w, http.StatusOK, s.engine.MoveCard(id, board.RowIDFor(card.Layout.Row), req.TargetRowID, position))
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	if s.engine.Config().DisableDrag {
		s.writeError(w, disabled("dragging"))
		return
	}
	rowID := board.RowID(chi.URLParam(r, "id"))
	row, ok := s.engine.FindRow(rowID)
	if !ok {
		s.writeError(w, rowNotFound(rowID))
		return
	}
	var req reorderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.From < 0 || req.From >= len(row.Cards) {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "from index %d out of range for %s", req.From, rowID))
		return
	}
	writeJSON(w, http.StatusOK, s.engine.ReorderCard(rowID, req.From, req.To))
}

func (s *Server) handleRowResize(w http.ResponseWriter, r *http.Request) {
	if s.engine.Config().DisableResizeRowHeight {
		s.writeError(w, disabled("row height resizing"))
		return
	}
	rowID := board.RowID(chi.URLParam(r, "id"))
	row, ok := s.engine.FindRow(rowID)
	if !ok {
		s.writeError(w, rowNotFound(rowID))
		return
	}
	var req rowResizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.gesture.Lock()
	defer s.gesture.Unlock()

	h := s.engine.HeightHandle(rowID)
	if err := h.DragStart(engine.Pointer{}); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Drop(engine.Pointer{Y: req.Height - row.Height()}))
}

func (s *Server) handleWidthResize(w http.ResponseWriter, r *http.Request) {
	if s.engine.Config().DisableResizeCardWidth {
		s.writeError(w, disabled("card width resizing"))
		return
	}
	if s.widths == nil {
		s.writeError(w, errors.New(errors.ErrCodeFeatureDisabled, "card width resizing needs row geometry"))
		return
	}
	rowID := board.RowID(chi.URLParam(r, "id"))
	row, ok := s.engine.FindRow(rowID)
	if !ok {
		s.writeError(w, rowNotFound(rowID))
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 || index >= len(row.Cards)-1 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "card index %q has no right border to resize in %s", chi.URLParam(r, "index"), rowID))
		return
	}
	var req widthResizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.RowWidth <= 0 {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "rowWidth must be positive"))
		return
	}

	s.gesture.Lock()
	defer s.gesture.Unlock()

	s.widths.Set(rowID, engine.Rect{Width: req.RowWidth})
	h := s.engine.WidthHandle(rowID, index)
	if err := h.DragStart(engine.Pointer{}); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Drop(engine.Pointer{X: req.Delta}))
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	if s.engine.Config().DisableDrag {
		s.writeError(w, disabled("dragging"))
		return
	}
	var ev engine.DropEvent
	if !s.decode(w, r, &ev) {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Drop(ev))
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func disabled(feature string) error {
	return errors.New(errors.ErrCodeFeatureDisabled, "%s is disabled for this board", feature)
}

func cardNotFound(id board.CardID) error {
	return errors.New(errors.ErrCodeNotFound, "card %q not found", id)
}

func rowNotFound(id board.RowID) error {
	return errors.New(errors.ErrCodeNotFound, "row %q not found", id)
}
