package usecase_test

import (
	"sort"

	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests de casos de uso. Implementan los
// puertos del dominio sobre mapas; el orden de los listados se fija ordenando
// para que los tests sean deterministas.
// ──────────────────────────────────────────────────────────────────────────────

type fakeServiceRepo struct {
	services      map[string]*entity.Service
	accountCounts map[string]int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{
		services:      make(map[string]*entity.Service),
		accountCounts: make(map[string]int),
	}
}

func (r *fakeServiceRepo) Create(s *entity.Service) error {
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) GetByID(id string) (*entity.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) List(onlyActive bool, limit, offset int) ([]*entity.Service, error) {
	out := make([]*entity.Service, 0, len(r.services))
	for _, s := range r.services {
		if onlyActive && !s.Active {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeServiceRepo) Update(s *entity.Service) error {
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Delete(id string) error {
	delete(r.services, id)
	return nil
}

func (r *fakeServiceRepo) CountAccounts(serviceID string) (int, error) {
	return r.accountCounts[serviceID], nil
}

type fakeAccountRepo struct {
	accounts map[string]*entity.Account
	deleted  []string
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *fakeAccountRepo) Create(a *entity.Account) error {
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByServiceAndNumber(serviceID string, sequenceNumber int) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.ServiceID == serviceID && a.SequenceNumber == sequenceNumber {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) ListByService(serviceID string) ([]*entity.Account, error) {
	out := make([]*entity.Account, 0)
	for _, a := range r.accounts {
		if a.ServiceID == serviceID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceNumber < out[j].SequenceNumber })
	return out, nil
}

func (r *fakeAccountRepo) List(limit, offset int) ([]*entity.Account, error) {
	out := make([]*entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeAccountRepo) ListActive() ([]*entity.Account, error) {
	out := make([]*entity.Account, 0)
	for _, a := range r.accounts {
		if a.Active {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeAccountRepo) Update(a *entity.Account) error {
	cp := *a
	r.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Delete(id string) error {
	delete(r.accounts, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeProfileRepo struct {
	profiles        map[string]*entity.Profile
	failCreateBatch error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) CreateBatch(batch []*entity.Profile) error {
	if r.failCreateBatch != nil {
		return r.failCreateBatch
	}
	for _, p := range batch {
		cp := *p
		r.profiles[p.ID] = &cp
	}
	return nil
}

func (r *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) ListByAccount(accountID string) ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0)
	for _, p := range r.profiles {
		if p.AccountID == accountID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *fakeProfileRepo) CountOccupiedByAccount(accountID string) (int, error) {
	count := 0
	for _, p := range r.profiles {
		if p.AccountID == accountID && p.Occupied {
			count++
		}
	}
	return count, nil
}

func (r *fakeProfileRepo) SetOccupied(id string, occupied bool) error {
	if p, ok := r.profiles[id]; ok {
		p.Occupied = occupied
	}
	return nil
}

func (r *fakeProfileRepo) UpdateLabelAndPin(id string, label string, pin *string) error {
	if p, ok := r.profiles[id]; ok {
		p.Label = label
		p.Pin = pin
	}
	return nil
}

func (r *fakeProfileRepo) DeleteByAccount(accountID string) error {
	for id, p := range r.profiles {
		if p.AccountID == accountID {
			delete(r.profiles, id)
		}
	}
	return nil
}

func (r *fakeProfileRepo) ListAll() ([]*entity.Profile, error) {
	out := make([]*entity.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCustomerRepo struct {
	customers         map[string]*entity.Customer
	activeAssignments map[string]int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers:         make(map[string]*entity.Customer),
		activeAssignments: make(map[string]int),
	}
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) CountActiveAssignments(customerID string) (int, error) {
	return r.activeAssignments[customerID], nil
}

type fakeAssignmentRepo struct {
	assignments map[string]*entity.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]*entity.Assignment)}
}

func (r *fakeAssignmentRepo) Create(a *entity.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) GetByID(id string) (*entity.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) GetActiveByProfile(profileID string) (*entity.Assignment, error) {
	for _, a := range r.assignments {
		if a.ProfileID == profileID && a.Active {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) ListActive() ([]*entity.Assignment, error) {
	out := make([]*entity.Assignment, 0)
	for _, a := range r.assignments {
		if a.Active {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAssignmentRepo) Update(a *entity.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) Delete(id string) error {
	delete(r.assignments, id)
	return nil
}

// fakeLedger imita la transacción del libro: inserta/elimina la asignación y
// actualiza el flag de ocupación en la misma llamada.
type fakeLedger struct {
	assignments *fakeAssignmentRepo
	profiles    *fakeProfileRepo
	failAssign  error
}

func (l *fakeLedger) Assign(a *entity.Assignment) error {
	if l.failAssign != nil {
		return l.failAssign
	}
	if err := l.assignments.Create(a); err != nil {
		return err
	}
	return l.profiles.SetOccupied(a.ProfileID, true)
}

func (l *fakeLedger) Unassign(assignmentID, profileID string) error {
	if err := l.assignments.Delete(assignmentID); err != nil {
		return err
	}
	return l.profiles.SetOccupied(profileID, false)
}
