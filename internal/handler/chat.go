package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/faq"
	"github.com/Jana-Alrzoog/2025-GP-28/internal/lostfound"
)

const menuGreeting = "أهلاً بك في مساعدك مسار 🤖🚇\n" +
	"كيف أقدر أساعدك اليوم؟\n\n" +
	"1️⃣ الأسئلة العامة\n" +
	"2️⃣ الإبلاغ عن مفقودات"

const loginRequired = "للمتابعة في خدمة المفقودات، يرجى تسجيل الدخول أولاً."

const fallbackAnswer = "عذرًا، ما قدرت أفهم سؤالك. جرّب صياغة ثانية أو اكتب menu للرجوع للقائمة."

type AskRequest struct {
	Question    string `json:"question" validate:"required"`
	SessionID   string `json:"session_id"`
	PassengerID string `json:"passenger_id"`
}

type AskResponse struct {
	MatchedFAQID *int64  `json:"matched_faq_id"`
	Answer       string  `json:"answer"`
	Matched      string  `json:"matched_question,omitempty"`
	Subcategory  string  `json:"subcategory,omitempty"`
	Confidence   float64 `json:"confidence"`
}

// Ask handles POST /ask: the chat entry point. The menu and the lost &
// found flow are routed by session state; everything else goes to the
// FAQ matcher.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	question := strings.TrimSpace(req.Question)
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default_user"
	}
	pid := req.PassengerID
	if pid == "" {
		pid = "anonymous"
	}

	session, err := h.db.GetSession(r.Context(), pid, sessionID)
	if err != nil {
		h.logger.Error("session lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "session lookup failed")
		return
	}

	lower := strings.ToLower(question)
	if (lower == "menu" || lower == "start") && session.State == lostfound.StateMenu {
		writeJSON(w, http.StatusOK, AskResponse{Answer: menuGreeting, Confidence: 1})
		return
	}

	if question == "2" || lostfound.InFlow(session.State) {
		if req.PassengerID == "" {
			writeJSON(w, http.StatusOK, AskResponse{Answer: loginRequired, Confidence: 1})
			return
		}
		reply, err := h.flow.Handle(r.Context(), sessionID, question, req.PassengerID)
		if err != nil {
			h.logger.Error("lost and found flow failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "flow failed")
			return
		}
		writeJSON(w, http.StatusOK, AskResponse{Answer: reply, Confidence: 1})
		return
	}

	resp := AskResponse{Subcategory: faq.DetectSubcategory(question)}
	if m := h.faq.BestMatch(question); m != nil {
		resp.MatchedFAQID = &m.ID
		resp.Answer = m.Answer
		resp.Matched = m.Question
		resp.Confidence = m.Score
	} else {
		resp.Answer = fallbackAnswer
	}
	writeJSON(w, http.StatusOK, resp)
}
