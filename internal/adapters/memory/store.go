// Package memory is an in-process Store used by tests and by local runs
// without a database. Writes inside WithinWebsite are staged and only become
// visible when fn returns nil.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"bwa/internal/domain"
	"bwa/internal/ports"
)

type entry struct {
	seq int64
	ix  domain.Interaction
}

type Store struct {
	clock clockwork.Clock

	mu         sync.Mutex
	seq        int64
	websites   map[string]domain.Website // by hostname
	hostByID   map[string]string
	logs       map[string][]entry // by website id, append order
	milestones map[string]string  // dedupe key -> interaction id
	hostLocks  map[string]*sync.Mutex

	jobs jobQueue
}

var (
	_ ports.Store         = (*Store)(nil)
	_ ports.JobRepository = (*Store)(nil)
)

func New(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:      clock,
		websites:   make(map[string]domain.Website),
		hostByID:   make(map[string]string),
		logs:       make(map[string][]entry),
		milestones: make(map[string]string),
		hostLocks:  make(map[string]*sync.Mutex),
		jobs:       newJobQueue(),
	}
}

func (s *Store) FindWebsite(_ context.Context, hostname string) (domain.Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.websites[hostname]
	if !ok {
		return domain.Website{}, ports.ErrWebsiteNotFound
	}
	return w, nil
}

func (s *Store) LatestScan(_ context.Context, hostname string) (domain.Interaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.websites[hostname]
	if !ok {
		return domain.Interaction{}, false, nil
	}
	ix, found := latestScan(s.logs[w.ID])
	return ix, found, nil
}

func (s *Store) Interactions(_ context.Context, websiteID string) ([]domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := s.logs[websiteID]
	out := make([]domain.Interaction, len(log))
	for i, e := range log {
		out[i] = e.ix
	}
	return out, nil
}

func (s *Store) hostLock(hostname string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.hostLocks[hostname]
	if !ok {
		l = &sync.Mutex{}
		s.hostLocks[hostname] = l
	}
	return l
}

func (s *Store) WithinWebsite(ctx context.Context, hostname string, fn func(ports.WebsiteTx) error) error {
	l := s.hostLock(hostname)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &websiteTx{store: s, hostname: hostname, milestones: make(map[string]string)}
	if err := fn(tx); err != nil {
		return err
	}
	s.commit(tx)
	return nil
}

func (s *Store) commit(tx *websiteTx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.website != nil {
		s.websites[tx.hostname] = *tx.website
		s.hostByID[tx.website.ID] = tx.hostname
	}
	for _, e := range tx.pending {
		s.logs[e.ix.WebsiteID] = append(s.logs[e.ix.WebsiteID], e)
	}
	for k, v := range tx.milestones {
		s.milestones[k] = v
	}
}

func (s *Store) nextSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func latestScan(log []entry) (domain.Interaction, bool) {
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].ix.Type == domain.InteractionScan {
			return log[i].ix, true
		}
	}
	return domain.Interaction{}, false
}

type websiteTx struct {
	store      *Store
	hostname   string
	website    *domain.Website // staged upsert
	pending    []entry
	milestones map[string]string
}

func (t *websiteTx) Now() time.Time { return t.store.clock.Now().UTC() }

func (t *websiteTx) Website(_ context.Context) (domain.Website, bool, error) {
	if t.website != nil {
		return *t.website, true, nil
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	w, ok := t.store.websites[t.hostname]
	return w, ok, nil
}

func (t *websiteTx) UpsertWebsite(ctx context.Context, isMasjid bool) (domain.Website, error) {
	w, found, err := t.Website(ctx)
	if err != nil {
		return domain.Website{}, err
	}
	if !found {
		w = domain.Website{ID: uuid.NewString(), Hostname: t.hostname, CreatedAt: t.Now()}
	}
	w.IsMasjid = isMasjid
	t.website = &w
	return w, nil
}

// log returns committed plus staged entries for the locked website.
func (t *websiteTx) log() []entry {
	w, found, _ := t.Website(context.Background())
	if !found {
		return nil
	}
	t.store.mu.Lock()
	committed := t.store.logs[w.ID]
	out := make([]entry, 0, len(committed)+len(t.pending))
	out = append(out, committed...)
	t.store.mu.Unlock()
	return append(out, t.pending...)
}

func (t *websiteTx) seqOf(ix domain.Interaction) (int64, error) {
	for _, e := range t.log() {
		if e.ix.ID == ix.ID {
			return e.seq, nil
		}
	}
	return 0, fmt.Errorf("interaction %s is not in the log of %s", ix.ID, t.hostname)
}

func (t *websiteTx) LatestScan(_ context.Context) (domain.Interaction, bool, error) {
	ix, found := latestScan(t.log())
	return ix, found, nil
}

func (t *websiteTx) ScanRecordedNewBefore(_ context.Context, company domain.CompanyID, before domain.Interaction) (bool, error) {
	limit, err := t.seqOf(before)
	if err != nil {
		return false, err
	}
	for _, e := range t.log() {
		if e.seq >= limit || e.ix.Type != domain.InteractionScan {
			continue
		}
		s, err := e.ix.ScanPayload()
		if err != nil {
			return false, err
		}
		if s.Changes[company] == domain.StatusNew {
			return true, nil
		}
	}
	return false, nil
}

func (t *websiteTx) PostedBefore(_ context.Context, userID string, before domain.Interaction) (bool, error) {
	limit, err := t.seqOf(before)
	if err != nil {
		return false, err
	}
	for _, e := range t.log() {
		if e.seq < limit && e.ix.Type == domain.InteractionPost && e.ix.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (t *websiteTx) append(ix domain.Interaction) (domain.Interaction, error) {
	w, found, _ := t.Website(context.Background())
	if !found {
		return domain.Interaction{}, ports.ErrWebsiteNotFound
	}
	ix.ID = uuid.NewString()
	ix.WebsiteID = w.ID
	ix.CreatedAt = t.Now()
	if err := ix.Validate(); err != nil {
		return domain.Interaction{}, err
	}
	t.pending = append(t.pending, entry{seq: t.store.nextSeq(), ix: ix})
	return ix, nil
}

func (t *websiteTx) AppendScan(_ context.Context, in ports.NewScan) (domain.Interaction, error) {
	return t.append(domain.Interaction{
		UserID:  in.UserID,
		IP:      in.IP,
		Type:    domain.InteractionScan,
		Payload: &domain.Scan{Changes: in.Changes},
	})
}

func (t *websiteTx) AppendPost(_ context.Context, in ports.NewPost) (domain.Interaction, error) {
	return t.append(domain.Interaction{
		UserID:  in.UserID,
		IP:      in.IP,
		Type:    domain.InteractionPost,
		Payload: &domain.Post{Body: in.Body},
	})
}

func milestoneKey(data domain.MilestoneData, triggerID string) string {
	return triggerID + "|" + string(data.Kind) + "|" + string(data.CompanyID)
}

func (t *websiteTx) AppendMilestone(_ context.Context, data domain.MilestoneData, trigger domain.Interaction) (domain.Interaction, bool, error) {
	if err := data.Validate(); err != nil {
		return domain.Interaction{}, false, err
	}
	key := milestoneKey(data, trigger.ID)
	if _, ok := t.milestones[key]; ok {
		return domain.Interaction{}, false, nil
	}
	t.store.mu.Lock()
	_, exists := t.store.milestones[key]
	t.store.mu.Unlock()
	if exists {
		return domain.Interaction{}, false, nil
	}

	ix, err := t.append(domain.Interaction{
		Type:    domain.InteractionMilestone,
		Payload: &domain.Milestone{Data: data, DataInteractionID: trigger.ID},
	})
	if err != nil {
		return domain.Interaction{}, false, err
	}
	t.milestones[key] = ix.ID
	return ix, true, nil
}
