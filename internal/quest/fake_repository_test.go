package quest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/onsenkatsu/internal/domain"
)

// FakeRepository is a stateful in-memory repository.Quest for tests.
// Setting an *Err field makes the matching method fail.
type FakeRepository struct {
	mu          sync.Mutex
	quests      map[int64]domain.Quest
	onsens      []domain.QuestOnsen
	submissions map[string]map[int64]domain.QuestSubmission

	LookupErr        error
	QuestErr         map[int64]error
	SubmissionErr    map[int64]error
	InsertErr        map[int64]error
	ListErr          error
	insertCalls      int
	raceOnNextInsert bool
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		quests:        make(map[int64]domain.Quest),
		submissions:   make(map[string]map[int64]domain.QuestSubmission),
		QuestErr:      make(map[int64]error),
		SubmissionErr: make(map[int64]error),
		InsertErr:     make(map[int64]error),
	}
}

func (f *FakeRepository) AddQuest(id int64, name string, placeIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quests[id] = domain.Quest{ID: id, Name: name}
	for _, p := range placeIDs {
		qid := id
		f.onsens = append(f.onsens, domain.QuestOnsen{ID: int64(len(f.onsens) + 1), QuestID: &qid, PlaceID: p})
	}
}

func (f *FakeRepository) AddOrphanOnsen(placeID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onsens = append(f.onsens, domain.QuestOnsen{ID: int64(len(f.onsens) + 1), PlaceID: placeID})
}

func (f *FakeRepository) Completed(userID string) []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for id := range f.submissions[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *FakeRepository) GetQuests(ctx context.Context) ([]domain.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]domain.Quest, 0, len(f.quests))
	for _, q := range f.quests {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *FakeRepository) GetQuestByID(ctx context.Context, questID int64) (*domain.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.QuestErr[questID]; err != nil {
		return nil, err
	}
	q, ok := f.quests[questID]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (f *FakeRepository) GetQuestOnsensByPlaceID(ctx context.Context, placeID string) ([]domain.QuestOnsen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LookupErr != nil {
		return nil, f.LookupErr
	}
	var out []domain.QuestOnsen
	for _, o := range f.onsens {
		if o.PlaceID == placeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *FakeRepository) GetQuestOnsens(ctx context.Context, questID int64) ([]domain.QuestOnsen, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QuestOnsen
	for _, o := range f.onsens {
		if o.QuestID != nil && *o.QuestID == questID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *FakeRepository) CountQuestOnsens(ctx context.Context) (map[int64]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[int64]int)
	for _, o := range f.onsens {
		if o.QuestID != nil {
			counts[*o.QuestID]++
		}
	}
	return counts, nil
}

func (f *FakeRepository) GetSubmission(ctx context.Context, userID string, questID int64) (*domain.QuestSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SubmissionErr[questID]; err != nil {
		return nil, err
	}
	sub, ok := f.submissions[userID][questID]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (f *FakeRepository) GetUserSubmissions(ctx context.Context, userID string) ([]domain.QuestSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QuestSubmission
	for _, sub := range f.submissions[userID] {
		out = append(out, sub)
	}
	return out, nil
}

// InsertSubmission mirrors INSERT ... ON CONFLICT DO NOTHING RETURNING
func (f *FakeRepository) InsertSubmission(ctx context.Context, userID string, questID int64) (*domain.QuestSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if err := f.InsertErr[questID]; err != nil {
		return nil, err
	}
	if f.raceOnNextInsert {
		// Another client completed the quest between the lookup and this insert
		f.raceOnNextInsert = false
		f.put(userID, questID)
	}
	if _, ok := f.submissions[userID][questID]; ok {
		return nil, domain.ErrAlreadyCompleted
	}
	sub := f.put(userID, questID)
	return &sub, nil
}

func (f *FakeRepository) UpsertSubmission(ctx context.Context, userID string, questID int64) (*domain.QuestSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := f.put(userID, questID)
	return &sub, nil
}

func (f *FakeRepository) put(userID string, questID int64) domain.QuestSubmission {
	if f.submissions[userID] == nil {
		f.submissions[userID] = make(map[int64]domain.QuestSubmission)
	}
	sub := domain.QuestSubmission{UserID: userID, QuestID: questID, CreatedAt: time.Now()}
	f.submissions[userID][questID] = sub
	return sub
}

// stubRewarder returns canned rewards and counts calls
type stubRewarder struct {
	mu     sync.Mutex
	calls  int
	err    error
	result domain.AccessoryGrantResult
}

func (r *stubRewarder) GrantRandomAccessory(ctx context.Context) (*domain.AccessoryGrantResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	res := r.result
	return &res, nil
}
