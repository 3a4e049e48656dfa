package server

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/naoya-sato/henkan/pkg/composer"
	"github.com/naoya-sato/henkan/pkg/converter"
	"github.com/naoya-sato/henkan/pkg/engine"
	"github.com/naoya-sato/henkan/pkg/transliteration"
)

// transliterationType maps the wire protocol's integer code onto
// transliteration.Type, clamping out-of-range values to Hiragana.
func transliterationType(code int) transliteration.Type {
	if code < 0 || code >= len(transliteration.Types) {
		return transliteration.Hiragana
	}
	return transliteration.Types[code]
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// action is one inbound client message driving the converter.
type action struct {
	Type string `json:"type"`

	// Insert
	Text string `json:"text,omitempty"`

	// CommitSuggestion, CandidateMoveToId, CandidateMoveToPageIndex
	Index int `json:"index,omitempty"`
	ID    int `json:"id,omitempty"`

	// ConvertReverse
	Source string `json:"source,omitempty"`

	// ConvertToTransliteration
	Transliteration int `json:"transliteration,omitempty"`

	// CandidateMoveToShortcut
	Shortcut string `json:"shortcut,omitempty"`

	// CommitHead
	Count int `json:"count,omitempty"`
}

func (s *Server) handleConvertWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}
	defer ws.Close()

	comp := composer.New()
	conv := converter.New(engine.New(s.dict))
	if s.cfg != nil {
		s.cfg.Subscribe(conv)
	}

	slog.Info("session opened", "session_id", sessionID)
	defer slog.Info("session closed", "session_id", sessionID)

	for {
		var a action
		if err := ws.ReadJSON(&a); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return
			}
			slog.Error("websocket read error", "session_id", sessionID, "error", err)
			return
		}

		if !applyAction(conv, comp, a) {
			slog.Warn("action rejected", "session_id", sessionID, "type", a.Type)
		}

		if err := ws.WriteJSON(conv.FillOutput()); err != nil {
			slog.Error("websocket write error", "session_id", sessionID, "error", err)
			return
		}
	}
}

// applyAction dispatches one client action onto conv, returning whether the
// operation reported success. Unknown action types are a no-op failure.
func applyAction(conv *converter.SessionConverter, comp *composer.Composer, a action) bool {
	switch a.Type {
	case "insert":
		comp.InsertCharacterPreedit(a.Text)
		return true
	case "suggest":
		return conv.Suggest(comp)
	case "predict":
		return conv.Predict(comp)
	case "convert":
		return conv.Convert(comp)
	case "convert_reverse":
		return conv.ConvertReverse(a.Source, comp)
	case "convert_to_transliteration":
		return conv.ConvertToTransliteration(comp, transliterationType(a.Transliteration))
	case "convert_to_half_width":
		return conv.ConvertToHalfWidth(comp)
	case "switch_kana_type":
		return conv.SwitchKanaType(comp)
	case "commit":
		return conv.Commit()
	case "commit_suggestion":
		return conv.CommitSuggestion(a.Index)
	case "commit_first_segment":
		return conv.CommitFirstSegment(comp)
	case "commit_preedit":
		return conv.CommitPreedit(comp)
	case "commit_head":
		return conv.CommitHead(a.Count, comp)
	case "cancel":
		return conv.Cancel()
	case "reset":
		conv.Reset()
		return true
	case "revert":
		conv.Revert()
		return true
	case "segment_focus_right":
		return conv.SegmentFocusRight()
	case "segment_focus_left":
		return conv.SegmentFocusLeft()
	case "segment_focus_left_edge":
		return conv.SegmentFocusLeftEdge()
	case "segment_focus_last":
		return conv.SegmentFocusLast()
	case "segment_width_expand":
		return conv.SegmentWidthExpand()
	case "segment_width_shrink":
		return conv.SegmentWidthShrink()
	case "candidate_next":
		return conv.CandidateNext(comp)
	case "candidate_prev":
		return conv.CandidatePrev()
	case "candidate_next_page":
		return conv.CandidateNextPage()
	case "candidate_prev_page":
		return conv.CandidatePrevPage()
	case "candidate_move_to_id":
		return conv.CandidateMoveToId(a.ID, comp)
	case "candidate_move_to_page_index":
		return conv.CandidateMoveToPageIndex(a.Index)
	case "candidate_move_to_shortcut":
		if len(a.Shortcut) == 0 {
			return false
		}
		return conv.CandidateMoveToShortcut([]rune(a.Shortcut)[0])
	default:
		return false
	}
}
