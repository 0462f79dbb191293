package sheet

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecoparadisepereira-bit/Eco-Formularios/log"
)

// maxAttempts caps retries per queued write; after that the entry is dropped
// with an error log. The submitting user has long since seen the success
// screen, so there is nobody left to surface the failure to.
const maxAttempts = 8

// Outbox is the durable queue for writes to the remote store. The original
// client fired opaque no-cors requests and assumed success; the outbox keeps
// that optimistic contract towards callers while upgrading delivery to
// at-most-once with retry.
type Outbox struct {
	db *sql.DB
}

func (o *Outbox) Enqueue(ctx context.Context, action string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = o.db.ExecContext(ctx,
		"INSERT INTO outbox (action, payload, created_at) VALUES (?, ?, ?)",
		action, string(raw), time.Now())
	return err
}

// Run flushes the queue at the given interval until the context is canceled.
func (o *Outbox) Run(ctx context.Context, url string, interval time.Duration) {
	client := &http.Client{Timeout: 30 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.Flush(ctx, client, url)
		}
	}
}

// Flush delivers up to one batch of queued writes.
func (o *Outbox) Flush(ctx context.Context, client *http.Client, url string) {
	rows, err := o.db.QueryContext(ctx,
		"SELECT id, action, payload, attempts FROM outbox ORDER BY id LIMIT 50")
	if err != nil {
		log.Error("outbox.select:", err)
		return
	}
	defer rows.Close()

	type entry struct {
		id       int64
		action   string
		payload  string
		attempts int
	}
	var pending []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.action, &e.payload, &e.attempts); err != nil {
			log.Error("outbox.scan:", err)
			return
		}
		pending = append(pending, e)
	}

	for _, e := range pending {
		if err := o.deliver(ctx, client, url, e.payload); err != nil {
			if e.attempts+1 >= maxAttempts {
				log.Errorf("outbox.drop: giving up on %s after %d attempts: %s", e.action, e.attempts+1, err)
				o.delete(ctx, e.id)
				continue
			}
			log.Warnf("outbox.deliver: %s (attempt %d): %s", e.action, e.attempts+1, err)
			if _, err := o.db.ExecContext(ctx, "UPDATE outbox SET attempts = attempts+1 WHERE id = ?", e.id); err != nil {
				log.Error("outbox.bump:", err)
			}
			continue
		}
		o.delete(ctx, e.id)
	}
}

// deliver posts one payload. The response body is drained but not
// interpreted: the transport offers no readable delivery confirmation, so a
// 2xx is the best signal available.
func (o *Outbox) deliver(ctx context.Context, client *http.Client, url, payload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (o *Outbox) delete(ctx context.Context, id int64) {
	if _, err := o.db.ExecContext(ctx, "DELETE FROM outbox WHERE id = ?", id); err != nil {
		log.Error("outbox.delete:", err)
	}
}
