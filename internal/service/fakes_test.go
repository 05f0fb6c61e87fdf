package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/vinculodevida/lactario/internal/domain"
	"github.com/vinculodevida/lactario/internal/domain/catalog"
	"github.com/vinculodevida/lactario/internal/domain/infant"
	"github.com/vinculodevida/lactario/internal/domain/mother"
	"github.com/vinculodevida/lactario/internal/domain/visit"
)

// In-memory repository fakes for service tests. They enforce the same
// error contracts as the postgres implementations.

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// rollbackTx honors the transactional contract the pass-through fakeTx
// skips: when the wrapped function fails, mother rows written through it
// are discarded, like a real rolled-back transaction.
type rollbackTx struct {
	mothers *fakeMotherRepo
}

func (t rollbackTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	rows, nextID, creates := t.mothers.state()
	if err := fn(ctx); err != nil {
		t.mothers.setState(rows, nextID, creates)
		return err
	}
	return nil
}

type recordedEntry = Entry

type recordingAudit struct {
	mu      sync.Mutex
	entries []recordedEntry
}

func (a *recordingAudit) LogAsync(_ context.Context, entry Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAudit) byTable(table string) []recordedEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []recordedEntry
	for _, e := range a.entries {
		if e.AffectedTable == table {
			out = append(out, e)
		}
	}
	return out
}

type fakeMotherRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*mother.Mother

	creates int
}

func newFakeMotherRepo() *fakeMotherRepo {
	return &fakeMotherRepo{rows: make(map[uint]*mother.Mother)}
}

func (r *fakeMotherRepo) seedSentinel() *mother.Mother {
	m := &mother.Mother{Name: mother.SentinelName, PaternalSurname: mother.SentinelPaternalSurname}
	_ = r.Create(context.Background(), m)
	r.creates = 0
	return m
}

func (r *fakeMotherRepo) Create(_ context.Context, m *mother.Mother) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Name == m.Name && existing.PaternalSurname == m.PaternalSurname {
			return mother.ErrMotherAlreadyExists
		}
	}
	r.nextID++
	m.ID = r.nextID
	clone := *m
	r.rows[m.ID] = &clone
	r.creates++
	return nil
}

func (r *fakeMotherRepo) GetByID(_ context.Context, id uint) (*mother.Mother, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, mother.ErrMotherNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMotherRepo) FindByNaturalKey(_ context.Context, name, paternal string) (*mother.Mother, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.rows {
		if m.Name == name && m.PaternalSurname == paternal {
			clone := *m
			return &clone, nil
		}
	}
	return nil, mother.ErrMotherNotFound
}

func (r *fakeMotherRepo) GetSentinel(ctx context.Context) (*mother.Mother, error) {
	m, err := r.FindByNaturalKey(ctx, mother.SentinelName, mother.SentinelPaternalSurname)
	if err != nil {
		return nil, mother.ErrSentinelMissing
	}
	return m, nil
}

func (r *fakeMotherRepo) Update(_ context.Context, id uint, cmd *mother.UpdateMotherCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return mother.ErrMotherNotFound
	}
	if cmd.Name != "" {
		m.Name = cmd.Name
	}
	if cmd.PaternalSurname != "" {
		m.PaternalSurname = cmd.PaternalSurname
	}
	if cmd.MaternalSurname != "" {
		m.MaternalSurname = cmd.MaternalSurname
	}
	if cmd.Disability != "" {
		m.Disability = cmd.Disability
	}
	return nil
}

func (r *fakeMotherRepo) state() (map[uint]*mother.Mother, uint, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make(map[uint]*mother.Mother, len(r.rows))
	for id, m := range r.rows {
		clone := *m
		rows[id] = &clone
	}
	return rows, r.nextID, r.creates
}

func (r *fakeMotherRepo) setState(rows map[uint]*mother.Mother, nextID uint, creates int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
	r.nextID = nextID
	r.creates = creates
}

func (r *fakeMotherRepo) List(_ context.Context) ([]mother.Mother, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]mother.Mother, 0, len(r.rows))
	for _, m := range r.rows {
		out = append(out, *m)
	}
	return out, nil
}

type fakeInfantRepo struct {
	mu      sync.Mutex
	nextID  uint
	rows    map[uint]*infant.Infant
	growth  map[uint][]infant.GrowthCheck
	mothers *fakeMotherRepo

	creates int
}

func newFakeInfantRepo(mothers *fakeMotherRepo) *fakeInfantRepo {
	return &fakeInfantRepo{
		rows:    make(map[uint]*infant.Infant),
		growth:  make(map[uint][]infant.GrowthCheck),
		mothers: mothers,
	}
}

func (r *fakeInfantRepo) Create(_ context.Context, i *infant.Infant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	i.ID = r.nextID
	clone := *i
	r.rows[i.ID] = &clone
	r.creates++
	return nil
}

func (r *fakeInfantRepo) GetByID(ctx context.Context, id uint) (*infant.Infant, error) {
	r.mu.Lock()
	i, ok := r.rows[id]
	if !ok {
		r.mu.Unlock()
		return nil, infant.ErrInfantNotFound
	}
	clone := *i
	r.mu.Unlock()

	if r.mothers != nil {
		if m, err := r.mothers.GetByID(ctx, clone.MotherID); err == nil {
			clone.Mother = *m
		}
	}
	return &clone, nil
}

func (r *fakeInfantRepo) Update(_ context.Context, i *infant.Infant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[i.ID]; !ok {
		return infant.ErrInfantNotFound
	}
	clone := *i
	r.rows[i.ID] = &clone
	return nil
}

func (r *fakeInfantRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return infant.ErrInfantNotFound
	}
	delete(r.rows, id)
	delete(r.growth, id)
	return nil
}

func (r *fakeInfantRepo) List(_ context.Context) ([]infant.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]infant.Listing, 0, len(r.rows))
	for _, i := range r.rows {
		out = append(out, infant.Listing{
			ID:              i.ID,
			PaternalSurname: i.PaternalSurname,
			MaternalSurname: i.MaternalSurname,
			BirthDate:       i.BirthDate,
			Gender:          i.Gender,
			Status:          i.Status,
			Disability:      i.Disability,
			Weight:          i.Weight,
		})
	}
	return out, nil
}

func (r *fakeInfantRepo) Refs(_ context.Context, motherID uint) ([]infant.Ref, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []infant.Ref
	for _, i := range r.rows {
		if motherID != 0 && i.MotherID != motherID {
			continue
		}
		out = append(out, infant.Ref{
			ID:              i.ID,
			PaternalSurname: i.PaternalSurname,
			MaternalSurname: i.MaternalSurname,
			BirthDate:       i.BirthDate,
			Gender:          i.Gender,
		})
	}
	return out, nil
}

func (r *fakeInfantRepo) CreateGrowthCheck(_ context.Context, g *infant.GrowthCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	g.ID = r.nextID
	r.growth[g.InfantID] = append(r.growth[g.InfantID], *g)
	return nil
}

func (r *fakeInfantRepo) GrowthHistory(_ context.Context, infantID uint) ([]infant.GrowthCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]infant.GrowthCheck(nil), r.growth[infantID]...), nil
}

type failingInfantRepo struct {
	*fakeInfantRepo
	createErr error
}

func (r *failingInfantRepo) Create(ctx context.Context, i *infant.Infant) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.fakeInfantRepo.Create(ctx, i)
}

type fakeCatalogRepo struct {
	areas   []catalog.CareArea
	reasons []catalog.Reason
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		areas: []catalog.CareArea{
			{ID: 1, Name: "UCIN", Category: "Médica"},
			{ID: 2, Name: "UTIN", Category: "Médica"},
			{ID: 3, Name: "Crecimiento y desarrollo", Category: "Médica"},
			{ID: 4, Name: "Foraneos", Category: "No Médica"},
		},
		reasons: []catalog.Reason{
			{ID: 1, Name: catalog.ReasonRoutineCheckup, Category: "Control"},
			{ID: 2, Name: "Donación de leche", Category: "Lactancia Materna"},
			{ID: 3, Name: "Lactancia Materna", Category: "Apoyo"},
		},
	}
}

func (r *fakeCatalogRepo) ListAreas(_ context.Context) ([]catalog.CareArea, error) {
	return r.areas, nil
}

func (r *fakeCatalogRepo) GetAreaByName(_ context.Context, name string) (*catalog.CareArea, error) {
	for i := range r.areas {
		if r.areas[i].Name == name {
			return &r.areas[i], nil
		}
	}
	return nil, catalog.ErrAreaNotFound
}

func (r *fakeCatalogRepo) ListReasons(_ context.Context) ([]catalog.Reason, error) {
	return r.reasons, nil
}

func (r *fakeCatalogRepo) GetReasonByID(_ context.Context, id uint) (*catalog.Reason, error) {
	for i := range r.reasons {
		if r.reasons[i].ID == id {
			return &r.reasons[i], nil
		}
	}
	return nil, catalog.ErrReasonNotFound
}

func (r *fakeCatalogRepo) GetReasonByName(_ context.Context, name string) (*catalog.Reason, error) {
	for i := range r.reasons {
		if r.reasons[i].Name == name {
			return &r.reasons[i], nil
		}
	}
	return nil, catalog.ErrReasonNotFound
}

type fakeVisitRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*visit.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{rows: make(map[uint]*visit.Visit)}
}

func (r *fakeVisitRepo) Create(_ context.Context, v *visit.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	v.ID = r.nextID
	clone := *v
	r.rows[v.ID] = &clone
	return nil
}

func (r *fakeVisitRepo) GetByID(_ context.Context, id uint) (*visit.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.rows[id]
	if !ok {
		return nil, visit.ErrVisitNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *fakeVisitRepo) Update(_ context.Context, v *visit.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[v.ID]; !ok {
		return visit.ErrVisitNotFound
	}
	clone := *v
	r.rows[v.ID] = &clone
	return nil
}

func (r *fakeVisitRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return visit.ErrVisitNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeVisitRepo) DeleteByAttendee(_ context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.rows {
		if v.AttendedBy == userID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *fakeVisitRepo) List(_ context.Context) ([]visit.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]visit.Listing, 0, len(r.rows))
	for _, v := range r.rows {
		out = append(out, visit.Listing{ID: v.ID, VisitDate: v.VisitDate, EntryTime: v.EntryTime})
	}
	return out, nil
}

func (r *fakeVisitRepo) HistoryByInfant(_ context.Context, infantID uint) ([]visit.HistoryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []visit.HistoryRow
	for _, v := range r.rows {
		if v.InfantID == infantID {
			out = append(out, visit.HistoryRow{VisitID: v.ID, VisitDate: v.VisitDate})
		}
	}
	return out, nil
}

func (r *fakeVisitRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[uint]*domain.User)}
}

func (r *fakeUserRepo) seed(name, phone, passwordHash string, role domain.RoleName) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	roleID := uint(1)
	if role == domain.RoleNurse {
		roleID = 2
	}
	u := &domain.User{
		ID:           r.nextID,
		Name:         name,
		Phone:        phone,
		PasswordHash: passwordHash,
		RoleID:       roleID,
		Role:         domain.Role{ID: roleID, Name: string(role)},
	}
	r.rows[u.ID] = u
	clone := *u
	return &clone
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.Phone == u.Phone {
			return ErrPhoneTaken
		}
	}
	r.nextID++
	u.ID = r.nextID
	clone := *u
	r.rows[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.rows {
		if id != u.ID && existing.Phone == u.Phone {
			return ErrPhoneTaken
		}
	}
	if _, ok := r.rows[u.ID]; !ok {
		return ErrUserNotFound
	}
	clone := *u
	r.rows[u.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]UserListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]UserListing, 0, len(r.rows))
	for _, u := range r.rows {
		out = append(out, UserListing{ID: u.ID, Name: u.Name, Phone: u.Phone, RoleName: u.Role.Name})
	}
	return out, nil
}

// fakeReportStore serves the aggregate queries from fixed values.
type fakeReportStore struct {
	mothers int64
	infants int64
	visits  int64
	genders []GenderCount
	rooming []RoomingInRow

	saved   []domain.Report
	saveErr error
}

func (s *fakeReportStore) CountMothers(context.Context) (int64, error) { return s.mothers, nil }
func (s *fakeReportStore) CountInfants(context.Context) (int64, error) { return s.infants, nil }
func (s *fakeReportStore) CountVisits(context.Context) (int64, error)  { return s.visits, nil }

func (s *fakeReportStore) GenderDistribution(context.Context) ([]GenderCount, error) {
	return s.genders, nil
}

func (s *fakeReportStore) RoomingIn(context.Context) ([]RoomingInRow, error) {
	return s.rooming, nil
}

func (s *fakeReportStore) SaveReport(_ context.Context, r *domain.Report) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, *r)
	return nil
}

func uintPtr(v uint) *uint { return &v }

func claimsFor(id uint, role domain.RoleName) *domain.Claims {
	return &domain.Claims{UserID: id, Name: fmt.Sprintf("user-%d", id), Role: role}
}
