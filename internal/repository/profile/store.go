// Package profile stores per-client marketing data: a capped search-history
// log and contact/consent fields. The data is advisory (personalization
// only), keyed by an opaque client ID with no expiry.
package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dema-cloud/prodmatch/internal/db"
)

// HistoryCap is the number of search terms kept per client, newest first.
const HistoryCap = 25

// store is the consumer interface for profile operations (ISP).
type store interface {
	db.HashStore
	db.ListStore
}

// Profile holds a client's marketing data.
type Profile struct {
	ClientID string
	Email    string
	Consent  bool
	LastSent time.Time
	// Searches is the recorded history, newest first.
	Searches []string
}

// Store persists profiles in a hash plus a capped list per client.
type Store struct {
	store     store
	keyPrefix string
}

// New creates a profile store. keyPrefix namespaces all keys.
func New(s store, keyPrefix string) *Store {
	return &Store{store: s, keyPrefix: keyPrefix}
}

// RecordSearch appends a normalized query to the client's history, trimming
// to HistoryCap. Blank queries are ignored. LPUSH+LTRIM keeps the cap
// without a read-modify-write cycle, so concurrent requests from the same
// client cannot lose updates.
func (s *Store) RecordSearch(ctx context.Context, clientID, query string) error {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	key := s.historyKey(clientID)
	if err := s.store.LPush(ctx, key, q); err != nil {
		return fmt.Errorf("record search for %s: %w", clientID, err)
	}
	if err := s.store.LTrim(ctx, key, 0, HistoryCap-1); err != nil {
		return fmt.Errorf("trim history for %s: %w", clientID, err)
	}
	return nil
}

// SetContact updates the client's email and consent flag. Empty email is
// left untouched.
func (s *Store) SetContact(ctx context.Context, clientID, email string, consent *bool) error {
	fields := make(map[string]string, 2)
	if e := strings.TrimSpace(email); e != "" {
		fields["email"] = e
	}
	if consent != nil {
		fields["consent"] = strconv.FormatBool(*consent)
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.store.HSet(ctx, s.profileKey(clientID), fields); err != nil {
		return fmt.Errorf("set contact for %s: %w", clientID, err)
	}
	return nil
}

// MarkSent records the time of the last marketing send.
func (s *Store) MarkSent(ctx context.Context, clientID string, at time.Time) error {
	fields := map[string]string{"last_sent": strconv.FormatInt(at.Unix(), 10)}
	if err := s.store.HSet(ctx, s.profileKey(clientID), fields); err != nil {
		return fmt.Errorf("mark sent for %s: %w", clientID, err)
	}
	return nil
}

// Get loads the client's profile. An unknown client yields an empty profile
// rather than an error; the history is advisory data.
func (s *Store) Get(ctx context.Context, clientID string) (Profile, error) {
	p := Profile{ClientID: clientID}

	fields, err := s.store.HGetAll(ctx, s.profileKey(clientID))
	if err != nil {
		return Profile{}, fmt.Errorf("get profile for %s: %w", clientID, err)
	}
	p.Email = fields["email"]
	p.Consent = fields["consent"] == "true"
	if raw := fields["last_sent"]; raw != "" {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.LastSent = time.Unix(unix, 0)
		}
	}

	searches, err := s.store.LRange(ctx, s.historyKey(clientID), 0, HistoryCap-1)
	if err != nil {
		return Profile{}, fmt.Errorf("get history for %s: %w", clientID, err)
	}
	p.Searches = searches

	return p, nil
}

// RecentTerms returns up to n distinct history terms, newest first.
func (p *Profile) RecentTerms(n int) []string {
	var out []string
	seen := make(map[string]struct{}, n)
	for _, t := range p.Searches {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == n {
			break
		}
	}
	return out
}

func (s *Store) profileKey(clientID string) string {
	return s.keyPrefix + "profile:" + clientID
}

func (s *Store) historyKey(clientID string) string {
	return s.keyPrefix + "history:" + clientID
}
