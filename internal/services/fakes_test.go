package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"joiny/internal/domain"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu           sync.Mutex
	byID         map[int64]*domain.Event
	nextID       int64
	participants *fakeParticipantRepo
	createErrs   []error // consumed one per Create call
	err          error   // returned by reads when set
}

func newFakeEventRepo(participants *fakeParticipantRepo) *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[int64]*domain.Event), nextID: 1, participants: participants}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, existing := range f.byID {
		if existing.InviteCode == e.InviteCode {
			return domain.ErrDuplicate
		}
	}
	e.ID = f.nextID
	f.nextID++
	e.CreatedAt = time.Now()
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code = strings.ToLower(strings.TrimSpace(code))
	for _, e := range f.byID {
		if e.InviteCode == code {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) sorted(keep func(*domain.Event) bool) []*domain.Event {
	var out []*domain.Event
	for _, e := range f.byID {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeEventRepo) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	all := f.sorted(func(*domain.Event) bool { return true })
	total := len(all)
	if page.Limit() < 0 {
		return all, total, nil
	}
	start := min(page.Offset(), total)
	end := min(start+page.Limit(), total)
	return all[start:end], total, nil
}

func (f *fakeEventRepo) ListJoinedByUser(ctx context.Context, userID int64) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sorted(func(e *domain.Event) bool {
		_, err := f.participants.GetByEventAndUser(ctx, e.ID, userID)
		return err == nil
	}), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Description != nil {
		e.Description = patch.Description
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Theme != nil {
		e.Theme = *patch.Theme
	}
	if patch.Fee != nil {
		e.Fee = *patch.Fee
	}
	if patch.MaxMembers != nil {
		e.MaxMembers = *patch.MaxMembers
	}
	for _, field := range patch.Clear {
		switch field {
		case domain.EventDescription:
			e.Description = nil
		case domain.EventLocationName:
			e.LocationName = nil
		case domain.EventLatitude:
			e.Latitude = nil
		case domain.EventLongitude:
			e.Longitude = nil
		case domain.EventPlaceID:
			e.PlaceID = nil
		case domain.EventFoodDescription:
			e.FoodDescription = nil
		}
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeParticipantRepo is an in-memory ParticipantRepository that enforces
// one row per (event, user) like the unique index.
type fakeParticipantRepo struct {
	mu        sync.Mutex
	byID      map[int64]*domain.Participant
	nextID    int64
	now       func() time.Time
	createErr error
	// beforeCreate runs once before the next Create, simulating a concurrent insert.
	beforeCreate func()
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{byID: make(map[int64]*domain.Participant), nextID: 1, now: time.Now}
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if p.UserID != nil {
		for _, existing := range f.byID {
			if existing.EventID == p.EventID && existing.UserID != nil && *existing.UserID == *p.UserID {
				return domain.ErrDuplicate
			}
		}
	}
	p.ID = f.nextID
	f.nextID++
	p.JoinedAt = f.now()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeParticipantRepo) add(eventID, userID int64, name string, joinedAt time.Time) *domain.Participant {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := domain.NewParticipant(eventID, userID, name)
	p.ID = f.nextID
	f.nextID++
	p.JoinedAt = joinedAt
	f.byID[p.ID] = p
	return p
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.EventID == eventID && p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) List(ctx context.Context, eventID *int64) ([]*domain.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Participant
	for _, p := range f.byID {
		if eventID == nil || p.EventID == *eventID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeParticipantRepo) ListByEventIDs(ctx context.Context, eventIDs []int64) (map[int64][]*domain.Participant, error) {
	out := make(map[int64][]*domain.Participant)
	for _, id := range eventIDs {
		ps, _ := f.List(ctx, &id)
		if len(ps) > 0 {
			out[id] = ps
		}
	}
	return out, nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeParticipantRepo) countFor(eventID, userID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.byID {
		if p.EventID == eventID && p.UserID != nil && *p.UserID == userID {
			n++
		}
	}
	return n
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) addUser(username, email string) *domain.User {
	u := domain.NewUser(username, email, username, time.Now())
	_ = f.Create(context.Background(), u)
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUsername
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// fakeFriendshipRepo is an in-memory FriendshipRepository with the
// ordered-pair uniqueness of the real table.
type fakeFriendshipRepo struct {
	mu           sync.Mutex
	byID         map[int64]*domain.Friendship
	nextID       int64
	users        *fakeUserRepo
	beforeCreate func()
}

func newFakeFriendshipRepo(users *fakeUserRepo) *fakeFriendshipRepo {
	return &fakeFriendshipRepo{byID: make(map[int64]*domain.Friendship), nextID: 1, users: users}
}

func (f *fakeFriendshipRepo) expand(fr *domain.Friendship) *domain.Friendship {
	out := *fr
	if u, err := f.users.GetByID(context.Background(), fr.FromUserID); err == nil {
		out.FromUser = u.Summary()
	}
	if u, err := f.users.GetByID(context.Background(), fr.ToUserID); err == nil {
		out.ToUser = u.Summary()
	}
	return &out
}

func (f *fakeFriendshipRepo) Create(ctx context.Context, fr *domain.Friendship) error {
	if hook := f.beforeCreate; hook != nil {
		f.beforeCreate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.FromUserID == fr.FromUserID && existing.ToUserID == fr.ToUserID {
			return domain.ErrDuplicate
		}
	}
	if fr.Status == "" {
		fr.Status = domain.FriendshipPending
	}
	fr.ID = f.nextID
	f.nextID++
	fr.CreatedAt = time.Now()
	stored := *fr
	f.byID[fr.ID] = &stored
	return nil
}

func (f *fakeFriendshipRepo) GetByID(ctx context.Context, id int64) (*domain.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fr, ok := f.byID[id]; ok {
		return f.expand(fr), nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFriendshipRepo) FindBetween(ctx context.Context, a, b int64) (*domain.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fr := range f.byID {
		if (fr.FromUserID == a && fr.ToUserID == b) || (fr.FromUserID == b && fr.ToUserID == a) {
			return f.expand(fr), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeFriendshipRepo) ListForUser(ctx context.Context, userID int64) ([]*domain.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Friendship
	for _, fr := range f.byID {
		if fr.Involves(userID) {
			out = append(out, f.expand(fr))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeFriendshipRepo) Accept(ctx context.Context, id int64) (*domain.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fr, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	fr.Status = domain.FriendshipAccepted
	return f.expand(fr), nil
}

func (f *fakeFriendshipRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeFriendshipRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID)
}

// fakeTodoRepo is an in-memory TodoRepository.
type fakeTodoRepo struct {
	byID   map[int64]*domain.Todo
	nextID int64
	err    error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{byID: make(map[int64]*domain.Todo), nextID: 1}
}

func (f *fakeTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	if f.err != nil {
		return f.err
	}
	t.ID = f.nextID
	f.nextID++
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTodoRepo) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTodoRepo) List(ctx context.Context, eventID *int64) ([]*domain.Todo, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Todo
	for _, t := range f.byID {
		if eventID == nil || t.EventID == *eventID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Task != nil {
		t.Task = *patch.Task
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
	}
	return t, nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeThemeRepo struct {
	themes []*domain.Theme
	err    error
}

func (f *fakeThemeRepo) List(ctx context.Context) ([]*domain.Theme, error) {
	return f.themes, f.err
}

func (f *fakeThemeRepo) GetByID(ctx context.Context, id int64) (*domain.Theme, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, t := range f.themes {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeChatRepo is an in-memory ChatMessageRepository.
type fakeChatRepo struct {
	messages []*domain.ChatMessage
	nextID   int64
	now      func() time.Time
	err      error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{nextID: 1, now: time.Now}
}

func (f *fakeChatRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	m.ID = f.nextID
	f.nextID++
	m.CreatedAt = f.now()
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeChatRepo) add(eventID, senderID int64, text string, at time.Time) {
	f.messages = append(f.messages, &domain.ChatMessage{ID: f.nextID, EventID: eventID, SenderID: senderID, Message: text, CreatedAt: at})
	f.nextID++
}

func (f *fakeChatRepo) ListSince(ctx context.Context, eventID int64, since time.Time) ([]*domain.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.ChatMessage
	for _, m := range f.messages {
		if m.EventID == eventID && !m.CreatedAt.Before(since) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// fakeEmailService records sent emails.
type fakeEmailService struct {
	mu             sync.Mutex
	welcome        []*domain.WelcomeMessageEmailData
	friendRequests []*domain.FriendRequestEmailData
	err            error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, data)
	return f.err
}

func (f *fakeEmailService) SendFriendRequest(ctx context.Context, data *domain.FriendRequestEmailData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.friendRequests = append(f.friendRequests, data)
	return f.err
}

// fakePasswordHasher stores "salt:password" as the hash.
type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }

func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokens issues "<kind>-<id>" tokens and verifies them back.
type fakeTokens struct {
	issueErr error
}

func (f *fakeTokens) Issue(userID int64, kind domain.TokenKind) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return fmt.Sprintf("%s-%d", kind, userID), nil
}

func (f *fakeTokens) Verify(token string, kind domain.TokenKind) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(token, string(kind)+"-%d", &id); err != nil || id <= 0 {
		return 0, domain.ErrInvalidToken
	}
	return id, nil
}

var errDB = errors.New("db error")
