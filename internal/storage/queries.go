package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Session is one rider's chat state. Data holds partial flow answers and
// survives across messages within the same device session.
type Session struct {
	PassengerID string            `json:"passenger_id"`
	SessionID   string            `json:"session_id"`
	State       string            `json:"state"`
	Data        map[string]string `json:"data"`
	UpdatedAt   string            `json:"updated_at"`
}

// GetSession reads a session, returning a fresh menu-state session when
// none exists yet.
func (db *DB) GetSession(ctx context.Context, passengerID, sessionID string) (*Session, error) {
	s := &Session{PassengerID: passengerID, SessionID: sessionID}
	var data string
	err := db.QueryRowContext(ctx,
		`SELECT state, data, updated_at FROM sessions WHERE passenger_id = ? AND session_id = ?`,
		passengerID, sessionID).Scan(&s.State, &data, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		s.State = "menu"
		s.Data = map[string]string{}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if err := json.Unmarshal([]byte(data), &s.Data); err != nil || s.Data == nil {
		s.Data = map[string]string{}
	}
	if s.State == "" {
		s.State = "menu"
	}
	return s, nil
}

// SaveSession upserts a session's state and data.
func (db *DB) SaveSession(ctx context.Context, passengerID, sessionID, state string, data map[string]string) error {
	if state == "" {
		state = "menu"
	}
	if data == nil {
		data = map[string]string{}
	}
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO sessions (passenger_id, session_id, state, data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (passenger_id, session_id)
		DO UPDATE SET state = excluded.state, data = excluded.data, updated_at = excluded.updated_at`,
		passengerID, sessionID, state, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ResetSession puts a session back at the menu.
func (db *DB) ResetSession(ctx context.Context, passengerID, sessionID string) error {
	return db.SaveSession(ctx, passengerID, sessionID, "menu", nil)
}

// Report is a filed lost & found report.
type Report struct {
	TicketID    string `json:"ticket_id"`
	PassengerID string `json:"passenger_id"`
	ItemType    string `json:"item_type"`
	Description string `json:"description"`
	Station     string `json:"station"`
	LostWhen    string `json:"lost_when"`
	PhotoURL    string `json:"photo_url"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// SaveReport files a report. A report must belong to a rider and carry
// a ticket code.
func (db *DB) SaveReport(ctx context.Context, r *Report) error {
	if r.PassengerID == "" {
		return errors.New("passenger_id is required")
	}
	if r.TicketID == "" {
		return errors.New("ticket_id is required")
	}
	status := r.Status
	if status == "" {
		status = "open"
	}

	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO lost_found_reports
			(ticket_id, passenger_id, item_type, description, station, lost_when, photo_url, name, phone, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.TicketID, r.PassengerID, r.ItemType, r.Description, r.Station,
		r.LostWhen, r.PhotoURL, r.Name, r.Phone, status, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

// GetReport looks a report up by ticket code. Returns nil when absent.
func (db *DB) GetReport(ctx context.Context, ticketID string) (*Report, error) {
	if ticketID == "" {
		return nil, nil
	}
	r := &Report{}
	err := db.QueryRowContext(ctx, `
		SELECT ticket_id, passenger_id, item_type, description, station, lost_when, photo_url, name, phone, status, created_at
		FROM lost_found_reports WHERE ticket_id = ?`, ticketID).
		Scan(&r.TicketID, &r.PassengerID, &r.ItemType, &r.Description, &r.Station,
			&r.LostWhen, &r.PhotoURL, &r.Name, &r.Phone, &r.Status, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return r, nil
}

// FAQEntry is one question/answer pair from the corpus.
type FAQEntry struct {
	ID          int64  `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Subcategory string `json:"subcategory"`
}

// ListFAQ returns the whole FAQ corpus in insertion order.
func (db *DB) ListFAQ(ctx context.Context) ([]FAQEntry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, question, answer, subcategory FROM faq ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list faq: %w", err)
	}
	defer rows.Close()

	var entries []FAQEntry
	for rows.Next() {
		var e FAQEntry
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.Subcategory); err != nil {
			return nil, fmt.Errorf("scan faq row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AddFAQ inserts one corpus entry, mainly for seeding and tests.
func (db *DB) AddFAQ(ctx context.Context, question, answer, subcategory string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO faq (question, answer, subcategory) VALUES (?, ?, ?)`,
		question, answer, subcategory)
	if err != nil {
		return fmt.Errorf("add faq: %w", err)
	}
	return nil
}
