// Package lostfound runs the chat-based lost & found reporting form.
// The conversation is a small state machine persisted per passenger and
// device session, so a rider can answer one question per message.
package lostfound

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Jana-Alrzoog/2025-GP-28/internal/storage"
)

// Flow states. "menu" is owned by the chat router; everything the flow
// owns is prefixed lf_.
const (
	StateMenu         = "menu"
	stateItemType     = "lf_item_type"
	stateDescription  = "lf_description"
	statePhotoChoice  = "lf_photo_choice"
	stateWaitingPhoto = "lf_waiting_photo"
	stateStation      = "lf_station"
	stateWhen         = "lf_when"
	stateDate         = "lf_date"
	stateName         = "lf_name"
	statePhone        = "lf_phone"
)

type option struct{ id, label string }

var stationOptions = []option{
	{"kafd", "كافد"},
	{"stc_olaya", "محطة STC العليا"},
	{"qasr_alhokm", "قصر الحكم"},
	{"national_museum", "المتحف الوطني"},
	{"airport_t1_t2", "المطار (1–2)"},
	{"first_industrial", "المدينة الصناعية الأولى"},
}

var whenOptions = []option{
	{"today_morning", "اليوم صباحًا"},
	{"today_noon", "اليوم ظهرًا"},
	{"today_evening", "اليوم مساءً"},
	{"yesterday", "أمس"},
	{"older", "قبل أكثر من يوم"},
	{"not_sure", "لا أتذكر"},
}

// Flow drives the reporting conversation.
type Flow struct {
	store  *storage.DB
	logger *slog.Logger
}

func New(store *storage.DB, logger *slog.Logger) *Flow {
	return &Flow{store: store, logger: logger}
}

// InFlow reports whether a session state belongs to this flow.
func InFlow(state string) bool {
	return strings.HasPrefix(state, "lf_")
}

// Handle advances the conversation by one message and returns the next
// prompt. An empty passenger id is recorded as anonymous so mid-flow
// logouts don't orphan the session row.
func (f *Flow) Handle(ctx context.Context, sessionID, message, passengerID string) (string, error) {
	pid := strings.TrimSpace(passengerID)
	if pid == "" {
		pid = "anonymous"
	}

	session, err := f.store.GetSession(ctx, pid, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	data := session.Data
	if passengerID != "" {
		data["passenger_id"] = passengerID
	}
	message = strings.TrimSpace(message)

	switch session.State {
	case StateMenu:
		if err := f.save(ctx, pid, sessionID, stateItemType, data); err != nil {
			return "", err
		}
		return "🧳 سأساعدك في الإبلاغ عن مفقود.\n\n" +
			"ما نوع الشيء المفقود؟\n" +
			"مثال: حقيبة، جوال، بطاقة، ساعة...", nil

	case stateItemType:
		if message == "" {
			return "فضلاً اكتب نوع الشيء المفقود (مثال: جوال، حقيبة...).", nil
		}
		data["item_type"] = message
		if err := f.save(ctx, pid, sessionID, stateDescription, data); err != nil {
			return "", err
		}
		return "✏️ صف الشيء المفقود بتفصيل (اللون، الحجم، أي علامة مميزة).", nil

	case stateDescription:
		if message == "" {
			return "فضلاً اكتب وصفًا مختصرًا للشيء المفقود.", nil
		}
		data["description"] = message
		if err := f.save(ctx, pid, sessionID, statePhotoChoice, data); err != nil {
			return "", err
		}
		return "📷 هل ترغب/ين بإرفاق صورة للغرض المفقود؟ (اختياري)\n\n1️⃣ نعم\n2️⃣ لا", nil

	case statePhotoChoice:
		switch message {
		case "1":
			if err := f.save(ctx, pid, sessionID, stateWaitingPhoto, data); err != nil {
				return "", err
			}
			return "📤 ارفعي/ارفع الصورة من التطبيق الآن.\n" +
				"بعد الرفع، أرسلي الرسالة التالية من التطبيق (أو سيتم إرسالها تلقائيًا):\n" +
				"PHOTO_URL:<الرابط>", nil
		case "2":
			if err := f.save(ctx, pid, sessionID, stateStation, data); err != nil {
				return "", err
			}
			return "📍 في أي محطة فُقد الغرض؟\n\n" + formatOptions(stationOptions), nil
		default:
			return "الرجاء اختيار رقم صحيح: 1 أو 2.", nil
		}

	case stateWaitingPhoto:
		if message == "2" {
			if err := f.save(ctx, pid, sessionID, stateStation, data); err != nil {
				return "", err
			}
			return "تمام ✅ بدون صورة.\n\n📍 في أي محطة فُقد الغرض؟\n\n" + formatOptions(stationOptions), nil
		}
		if !isPhotoURLMessage(message) {
			return "بانتظار رابط الصورة...\nإذا تبين تكملين بدون صورة اكتبي: 2", nil
		}
		photoURL := extractPhotoURL(message)
		if photoURL == "" {
			return "لم أستلم رابط الصورة بشكل صحيح. حاول رفع الصورة مرة أخرى.", nil
		}
		data["photo_url"] = photoURL
		if err := f.save(ctx, pid, sessionID, stateStation, data); err != nil {
			return "", err
		}
		return "✅ تم استلام الصورة.\n\n📍 في أي محطة فُقد الغرض؟\n\n" + formatOptions(stationOptions), nil

	case stateStation:
		opt, ok := pickOption(stationOptions, message)
		if !ok {
			return "الرجاء اختيار رقم صحيح من قائمة المحطات.", nil
		}
		data["station_id"] = opt.id
		data["station_name"] = opt.label
		if err := f.save(ctx, pid, sessionID, stateWhen, data); err != nil {
			return "", err
		}
		return "🕒 متى تقريبًا فُقد الغرض؟\n\n" + formatOptions(whenOptions), nil

	case stateWhen:
		opt, ok := pickOption(whenOptions, message)
		if !ok {
			return "الرجاء اختيار رقم صحيح من القائمة.", nil
		}
		data["lost_time_id"] = opt.id
		data["lost_time_label"] = opt.label
		if opt.id == "older" {
			if err := f.save(ctx, pid, sessionID, stateDate, data); err != nil {
				return "", err
			}
			return "📅 يرجى كتابة التاريخ التقريبي بصيغة YYYY-MM-DD (مثال: 2026-01-20).", nil
		}
		if err := f.save(ctx, pid, sessionID, stateName, data); err != nil {
			return "", err
		}
		return "👤 ما الاسم الكامل؟", nil

	case stateDate:
		if !looksLikeDate(message) {
			return "فضلاً اكتب التاريخ بصيغة YYYY-MM-DD (مثال: 2026-01-20).", nil
		}
		data["lost_date"] = message
		if err := f.save(ctx, pid, sessionID, stateName, data); err != nil {
			return "", err
		}
		return "👤 ما الاسم الكامل؟", nil

	case stateName:
		if message == "" {
			return "فضلاً اكتب الاسم الكامل.", nil
		}
		data["name"] = message
		if err := f.save(ctx, pid, sessionID, statePhone, data); err != nil {
			return "", err
		}
		return "📞 ما رقم الجوال للتواصل؟", nil

	case statePhone:
		if message == "" {
			return "فضلاً اكتب رقم الجوال.", nil
		}
		data["phone"] = message
		return f.fileReport(ctx, pid, sessionID, data)

	default:
		return "حدث خطأ غير متوقع. فضلاً أعد المحاولة أو اكتب: menu", nil
	}
}

func (f *Flow) fileReport(ctx context.Context, pid, sessionID string, data map[string]string) (string, error) {
	ticketID := strings.ToUpper(uuid.NewString()[:8])

	lostWhen := data["lost_time_label"]
	if d := data["lost_date"]; d != "" {
		lostWhen = d
	}

	report := &storage.Report{
		TicketID:    ticketID,
		PassengerID: data["passenger_id"],
		ItemType:    data["item_type"],
		Description: data["description"],
		Station:     data["station_name"],
		LostWhen:    lostWhen,
		PhotoURL:    data["photo_url"],
		Name:        data["name"],
		Phone:       data["phone"],
		Status:      "open",
	}
	if report.PassengerID == "" {
		report.PassengerID = pid
	}

	if err := f.store.SaveReport(ctx, report); err != nil {
		return "", fmt.Errorf("file report: %w", err)
	}
	if err := f.store.ResetSession(ctx, pid, sessionID); err != nil {
		return "", fmt.Errorf("reset session: %w", err)
	}

	f.logger.Info("lost and found report filed", "ticket", ticketID, "passenger", report.PassengerID)

	return "✅ تم تسجيل البلاغ بنجاح.\n" +
		"🎫 رقم التذكرة: " + ticketID + "\n\n" +
		"سيتم التواصل عند العثور على المفقود.\n" +
		"شكرًا لاستخدامك مساعد مسار.", nil
}

func (f *Flow) save(ctx context.Context, pid, sessionID, state string, data map[string]string) error {
	if err := f.store.SaveSession(ctx, pid, sessionID, state, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func formatOptions(opts []option) string {
	var b strings.Builder
	for i, opt := range opts {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d️⃣ %s", i+1, opt.label)
	}
	return b.String()
}

func pickOption(opts []option, message string) (option, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil || n < 1 || n > len(opts) {
		return option{}, false
	}
	return opts[n-1], true
}

func looksLikeDate(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isPhotoURLMessage(msg string) bool {
	msg = strings.TrimSpace(msg)
	return strings.HasPrefix(msg, "PHOTO_URL:") || strings.HasPrefix(msg, "http")
}

func extractPhotoURL(msg string) string {
	msg = strings.TrimSpace(msg)
	if rest, ok := strings.CutPrefix(msg, "PHOTO_URL:"); ok {
		return strings.TrimSpace(rest)
	}
	return msg
}
