package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"legalplatform/internal/entity"
	"legalplatform/internal/repository"

	"github.com/google/uuid"
)

// memoryStore backs every repository with maps. Rows are copied in and out so
// callers cannot mutate stored state without an Update.
type memoryStore struct {
	mu        sync.Mutex
	accounts  map[uuid.UUID]entity.Account
	profiles  map[uuid.UUID]entity.LawyerProfile
	codes     []entity.OneTimeCode
	audit     []entity.AuditLog
	documents map[uuid.UUID]entity.Document
	chats     []entity.ChatRecord

	createDocumentErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:  make(map[uuid.UUID]entity.Account),
		profiles:  make(map[uuid.UUID]entity.LawyerProfile),
		documents: make(map[uuid.UUID]entity.Document),
	}
}

func (m *memoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type accountStore struct{ *memoryStore }

func (s accountStore) Create(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicate
		}
	}
	row := *account
	row.LawyerProfile = nil
	s.accounts[account.ID] = row
	return nil
}

func (s accountStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.accounts[id]
	if !ok {
		return nil, nil
	}
	if profile, ok := s.profiles[id]; ok {
		row.LawyerProfile = &profile
	}
	return &row, nil
}

func (s accountStore) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.accounts {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, nil
}

func (s accountStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := s.FindByID(ctx, id)
	if account != nil {
		account.LawyerProfile = nil
	}
	return account, err
}

func (s accountStore) FindByEmailForUpdate(ctx context.Context, email string) (*entity.Account, error) {
	return s.FindByEmail(ctx, email)
}

func (s accountStore) Update(_ context.Context, account *entity.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.ID]; !ok {
		return errors.New("update of missing account")
	}
	row := *account
	row.LawyerProfile = nil
	s.accounts[account.ID] = row
	return nil
}

type lawyerStore struct{ *memoryStore }

func (s lawyerStore) Create(_ context.Context, profile *entity.LawyerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.AccountID] = *profile
	return nil
}

func (s lawyerStore) FindByAccountID(_ context.Context, accountID uuid.UUID) (*entity.LawyerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.profiles[accountID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s lawyerStore) list(status entity.LawyerStatus) []entity.LawyerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []entity.LawyerProfile
	for _, row := range s.profiles {
		if row.Status == status {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].FullName < rows[j].FullName })
	return rows
}

func (s lawyerStore) ListApproved(context.Context) ([]entity.LawyerProfile, error) {
	return s.list(entity.LawyerApproved), nil
}

func (s lawyerStore) ListPending(context.Context) ([]entity.LawyerProfile, error) {
	return s.list(entity.LawyerPending), nil
}

func (s lawyerStore) Update(_ context.Context, profile *entity.LawyerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.AccountID] = *profile
	return nil
}

type codeStore struct{ *memoryStore }

func (s codeStore) Create(_ context.Context, code *entity.OneTimeCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, *code)
	return nil
}

func (s codeStore) FindActiveForAccount(_ context.Context, accountID uuid.UUID, now time.Time) (*entity.OneTimeCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *entity.OneTimeCode
	for i := range s.codes {
		code := s.codes[i]
		if code.AccountID != accountID || code.Used || !code.ExpiresAt.After(now) {
			continue
		}
		if latest == nil || !code.CreatedAt.Before(latest.CreatedAt) {
			latest = &code
		}
	}
	return latest, nil
}

func (s codeStore) MarkUsed(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.codes {
		if s.codes[i].ID == id && !s.codes[i].Used {
			s.codes[i].Used = true
			return true, nil
		}
	}
	return false, nil
}

type auditStore struct{ *memoryStore }

func (s auditStore) Log(_ context.Context, log *entity.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, *log)
	return nil
}

func (m *memoryStore) auditActions() []entity.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]entity.AuditAction, 0, len(m.audit))
	for _, log := range m.audit {
		actions = append(actions, log.Action)
	}
	return actions
}

type documentStore struct{ *memoryStore }

func (s documentStore) Create(_ context.Context, document *entity.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createDocumentErr != nil {
		return s.createDocumentErr
	}
	s.documents[document.ID] = *document
	return nil
}

func (s documentStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []entity.Document
	for _, row := range s.documents {
		if row.OwnerID == ownerID {
			row.Blob.Ciphertext = nil
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (s documentStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.documents[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

type chatStore struct{ *memoryStore }

func (s chatStore) Create(_ context.Context, record *entity.ChatRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats = append(s.chats, *record)
	return nil
}

func (s chatStore) ListByConversation(_ context.Context, conversationID uuid.UUID) ([]entity.ChatRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []entity.ChatRecord
	for _, row := range s.chats {
		if row.ConversationID == conversationID {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceCodes hands out the given codes in order and repeats the last one.
type sequenceCodes struct {
	codes []string
	ttl   time.Duration
	next  int
}

func (g *sequenceCodes) Generate(now time.Time) (string, time.Time, error) {
	code := g.codes[len(g.codes)-1]
	if g.next < len(g.codes) {
		code = g.codes[g.next]
		g.next++
	}
	return code, now.Add(g.ttl), nil
}

type sentMail struct {
	kind   string
	email  string
	code   string
	reason string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) record(mail sentMail) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, mail)
	return n.err
}

func (n *recordingNotifier) SendOtp(_ context.Context, email string, code string) error {
	return n.record(sentMail{kind: "otp", email: email, code: code})
}

func (n *recordingNotifier) SendApproval(_ context.Context, email string) error {
	return n.record(sentMail{kind: "approval", email: email})
}

func (n *recordingNotifier) SendRejection(_ context.Context, email string, reason string) error {
	return n.record(sentMail{kind: "rejection", email: email, reason: reason})
}

func (n *recordingNotifier) last() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentMail{}
	}
	return n.sent[len(n.sent)-1]
}

type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{objects: make(map[string][]byte)}
}

func (b *memoryBlobs) Put(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = append([]byte(nil), data...)
	return nil
}

func (b *memoryBlobs) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return append([]byte(nil), data...), nil
}

func (b *memoryBlobs) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

type assistantFunc func(ctx context.Context, query string) (string, error)

func (f assistantFunc) Ask(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}
