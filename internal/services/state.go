package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/celadonapp/celadon-backend/internal/models"
	"github.com/celadonapp/celadon-backend/internal/store"
	"github.com/celadonapp/celadon-backend/pkg/ai"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Draft defaults shown before any entry has been analyzed.
const (
	DefaultWeather = "✨"
	DefaultVibe    = "Quiet Reflection"
	DefaultQuote   = "The detail is in the breath."
)

// Analyzer is the slice of the AI adapter the domain model uses. The
// adapter never returns errors; failures surface as fallback values.
type Analyzer interface {
	AnalyzeMood(ctx context.Context, text string) ai.Mood
	WeatherEmoji(ctx context.Context, location string) string
	SuggestLocations(ctx context.Context, input string) []string
	ExtractSubject(ctx context.Context, imageDataURI string) bool
}

// Draft is the in-progress entry a user is composing: staged photos,
// placed stickers, a location with its weather emoji, and the display
// vibe/quote from the most recent mood analysis. Drafts live in memory
// only; saving an entry consumes and resets them.
type Draft struct {
	Photos   []string         `json:"photos"`
	Stickers []models.Sticker `json:"stickers"`
	Location string           `json:"location,omitempty"`
	Weather  string           `json:"weather"`
	Vibe     string           `json:"vibe"`
	Quote    string           `json:"quote"`
}

func newDraft() *Draft {
	return &Draft{Weather: DefaultWeather, Vibe: DefaultVibe, Quote: DefaultQuote}
}

// State is the domain state model: the canonical in-memory copies of
// users, entries, goals, the sticker studio and the creativity note,
// mirrored into the persistent store on every mutation. All operations
// are atomic from the caller's perspective.
type State struct {
	mu    sync.Mutex
	store store.Store
	ai    Analyzer

	// publish, when set, is called after an entry is saved so the live
	// feed can broadcast it.
	publish func(models.JournalEntry)

	users   []models.User
	current *models.User
	entries []models.JournalEntry
	goals   []models.Goal
	studio  []models.Sticker
	note    string

	drafts map[string]*Draft // keyed by user id
}

// NewState loads all collections from the store. Absent keys and malformed
// blobs fall back to empty defaults; loading never fails on bad data.
func NewState(ctx context.Context, st store.Store, analyzer Analyzer) (*State, error) {
	s := &State{
		store:  st,
		ai:     analyzer,
		drafts: make(map[string]*Draft),
	}

	var loadErr error
	read := func(key string) string {
		raw, _, err := st.Get(ctx, key)
		if err != nil && loadErr == nil {
			loadErr = err
		}
		return raw
	}

	s.users = store.ParseOrDefault(read(store.KeyUsers), []models.User{})
	s.entries = store.ParseOrDefault(read(store.KeyEntries), []models.JournalEntry{})
	s.goals = store.ParseOrDefault(read(store.KeyGoals), []models.Goal{})
	s.studio = store.ParseOrDefault(read(store.KeyStudio), []models.Sticker{})
	s.note = read(store.KeyNote) // raw text, not JSON

	// Restore the active session only if the saved pointer still resolves
	// to a registered user.
	saved := store.ParseOrDefault(read(store.KeyActiveUser), models.User{})
	if saved.ID != "" {
		for i := range s.users {
			if s.users[i].ID == saved.ID {
				u := s.users[i]
				s.current = &u
				break
			}
		}
	}

	if loadErr != nil {
		return nil, loadErr
	}
	return s, nil
}

// SetFeedPublisher registers the hook invoked with every saved entry.
func (s *State) SetFeedPublisher(publish func(models.JournalEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish = publish
}

// SignUp registers a new user and establishes it as the active session.
func (s *State) SignUp(ctx context.Context, email, secret string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			return models.User{}, ErrEmailTaken
		}
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: secret, // stored verbatim, see models.User
	}
	s.users = append(s.users, user)
	s.persist(ctx, store.KeyUsers, s.users)
	s.setActiveUser(ctx, user)
	return user, nil
}

// LogIn establishes the session for the user whose email and secret both
// match exactly. Any mismatch fails without touching session state.
func (s *State) LogIn(ctx context.Context, email, secret string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email && s.users[i].PasswordHash == secret {
			user := s.users[i]
			s.setActiveUser(ctx, user)
			return user, nil
		}
	}
	return models.User{}, ErrInvalidCredentials
}

// LogOut clears the active session. No data is deleted.
func (s *State) LogOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Remove(ctx, store.KeyActiveUser); err != nil {
		log.Printf("store: failed to remove %s: %v", store.KeyActiveUser, err)
	}
}

// CurrentUser returns the active-session user, if any.
func (s *State) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// UserByID looks up a registered user.
func (s *State) UserByID(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			return s.users[i], true
		}
	}
	return models.User{}, false
}

// Draft returns a copy of the user's in-progress entry state.
func (s *State) Draft(userID string) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(userID)
	out := *d
	out.Photos = append([]string(nil), d.Photos...)
	out.Stickers = append([]models.Sticker(nil), d.Stickers...)
	return out
}

// AttachPhoto stages an uploaded photo (a data URI or hosted URL) on the
// user's draft.
func (s *State) AttachPhoto(userID, photo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(userID)
	d.Photos = append(d.Photos, photo)
}

// PlaceSticker copies the identified studio sticker onto the user's draft.
// The studio collection is untouched; an unknown id is a silent no-op.
func (s *State) PlaceSticker(userID, stickerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.studio {
		if s.studio[i].ID == stickerID {
			d := s.draftLocked(userID)
			d.Stickers = append(d.Stickers, s.studio[i])
			return
		}
	}
}

// SetLocation updates the draft location without a weather lookup.
func (s *State) SetLocation(userID, location string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draftLocked(userID).Location = location
}

// SetWeather updates the draft weather emoji directly, for cached lookups.
func (s *State) SetWeather(userID, weather string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draftLocked(userID).Weather = weather
}

// SelectLocation pins a chosen location on the draft and looks up its
// weather emoji. The lookup cannot fail; at worst it yields the fallback.
func (s *State) SelectLocation(ctx context.Context, userID, location string) string {
	weather := s.ai.WeatherEmoji(ctx, location)

	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.draftLocked(userID)
	d.Location = location
	d.Weather = weather
	return weather
}

// SaveEntry turns the user's draft plus the given content into a new
// journal entry. It is a no-op (nil entry) when content is blank and no
// photos are staged. Otherwise exactly one entry is prepended, the draft
// is reset, and the mood analysis result becomes both the entry's vibe
// and the draft's display vibe/quote.
func (s *State) SaveEntry(ctx context.Context, userID, content string) (*models.JournalEntry, ai.Mood) {
	s.mu.Lock()
	d := s.draftLocked(userID)
	if strings.TrimSpace(content) == "" && len(d.Photos) == 0 {
		s.mu.Unlock()
		return nil, ai.Mood{}
	}
	s.mu.Unlock()

	// The analysis call suspends; hold no lock across it.
	mood := s.ai.AnalyzeMood(ctx, content)

	s.mu.Lock()
	d = s.draftLocked(userID)
	entry := models.JournalEntry{
		ID:         uuid.NewString(),
		Date:       dateLabel(time.Now()),
		Content:    content,
		Vibe:       mood.Vibe,
		Location:   d.Location,
		Weather:    d.Weather,
		Photos:     append([]string(nil), d.Photos...),
		Stickers:   append([]models.Sticker(nil), d.Stickers...),
		SharedWith: []string{userID},
		IsPrivate:  true,
	}
	s.entries = append([]models.JournalEntry{entry}, s.entries...)
	s.persist(ctx, store.KeyEntries, s.entries)

	// Reset the draft; the fresh analysis stays visible as display state.
	s.drafts[userID] = &Draft{Weather: DefaultWeather, Vibe: mood.Vibe, Quote: mood.Quote}

	publish := s.publish
	s.mu.Unlock()

	if publish != nil {
		publish(entry)
	}
	return &entry, mood
}

// Entries returns the journal entries visible to the user, newest first.
func (s *State) Entries(userID string) []models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.JournalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		for _, id := range e.SharedWith {
			if id == userID {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// PostcardLink builds the messaging deep link for sharing an entry: a
// pre-filled message with a truncated excerpt. Returns false for an
// unknown entry id.
func (s *State) PostcardLink(entryID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == entryID {
			excerpt := e.Content
			if r := []rune(excerpt); len(r) > 100 {
				excerpt = string(r[:100])
			}
			text := `📬 A Postcard from my Celadon Journal: "` + excerpt + `..."`
			return "https://wa.me/?text=" + url.QueryEscape(text), true
		}
	}
	return "", false
}

// Note returns the creativity note.
func (s *State) Note() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note
}

// SetNote overwrites the creativity note. The note is persisted as raw
// text, not JSON.
func (s *State) SetNote(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = text
	if err := s.store.Set(ctx, store.KeyNote, text); err != nil {
		log.Printf("store: failed to write %s: %v", store.KeyNote, err)
	}
}

func (s *State) draftLocked(userID string) *Draft {
	d, ok := s.drafts[userID]
	if !ok {
		d = newDraft()
		s.drafts[userID] = d
	}
	return d
}

func (s *State) setActiveUser(ctx context.Context, user models.User) {
	s.current = &user
	s.persist(ctx, store.KeyActiveUser, user)
}

// persist re-serializes a whole collection and overwrites its key.
// Writes are fire-and-forget: a failed write is logged, never surfaced.
func (s *State) persist(ctx context.Context, key string, value any) {
	raw, err := marshal(value)
	if err != nil {
		log.Printf("store: failed to encode %s: %v", key, err)
		return
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		log.Printf("store: failed to write %s: %v", key, err)
	}
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func dateLabel(t time.Time) string {
	return t.Format("Monday, January 2")
}
