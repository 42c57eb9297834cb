// Package memory is an in-process implementation of the repository
// interfaces. All tables share one lock so cascades and uniqueness checks
// are atomic.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"job-board-backend/internal/domain"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	seq          map[string]int64
	users        map[int64]domain.User
	companies    map[int64]domain.Company
	vacancies    map[int64]domain.Vacancy
	skills       map[string]string // lower(name) -> name
	resumes      map[int64]domain.Resume
	applications map[int64]domain.Application
	favorites    map[int64]domain.Favorite
}

func NewStore() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		seq:          make(map[string]int64),
		users:        make(map[int64]domain.User),
		companies:    make(map[int64]domain.Company),
		vacancies:    make(map[int64]domain.Vacancy),
		skills:       make(map[string]string),
		resumes:      make(map[int64]domain.Resume),
		applications: make(map[int64]domain.Application),
		favorites:    make(map[int64]domain.Favorite),
	}
}

func (s *Store) Users() domain.UserRepository { return &userRepo{s} }
func (s *Store) Companies() domain.CompanyRepository { return &companyRepo{s} }
func (s *Store) Vacancies() domain.VacancyRepository { return &vacancyRepo{s} }
func (s *Store) Resumes() domain.ResumeRepository { return &resumeRepo{s} }
func (s *Store) Applications() domain.ApplicationRepository { return &applicationRepo{s} }
func (s *Store) Favorites() domain.FavoriteRepository { return &favoriteRepo{s} }

// nextID must be called with mu held.
func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// deleteVacancyLocked removes a vacancy and everything hanging off it.
func (s *Store) deleteVacancyLocked(id int64) {
	delete(s.vacancies, id)
	for appID, app := range s.applications {
		if app.VacancyID == id {
			delete(s.applications, appID)
		}
	}
	for favID, fav := range s.favorites {
		if fav.VacancyID == id {
			delete(s.favorites, favID)
		}
	}
}

// internSkills dedupes names case-insensitively and returns their stored
// spelling, registering unknown ones. Must be called with mu held.
func (s *Store) internSkills(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if stored, ok := s.skills[key]; ok {
			name = stored
		} else {
			s.skills[key] = name
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Store) vacancyView(v domain.Vacancy) domain.Vacancy {
	if c, ok := s.companies[v.CompanyID]; ok {
		v.Company = &c
	}
	if u, ok := s.users[v.AuthorID]; ok {
		v.AuthorUsername = u.Username
	}
	return v
}

func (s *Store) resumeView(r domain.Resume) domain.Resume {
	r.Skills = append([]string(nil), r.Skills...)
	if u, ok := s.users[r.UserID]; ok {
		r.Username = u.Username
	}
	return r
}

func (s *Store) applicationView(a domain.Application) domain.Application {
	if u, ok := s.users[a.ApplicantID]; ok {
		a.ApplicantUsername = u.Username
	}
	if v, ok := s.vacancies[a.VacancyID]; ok {
		a.VacancyTitle = v.Title
		a.VacancyAuthorID = v.AuthorID
	}
	a.Resume = nil
	if a.ResumeID != nil {
		if r, ok := s.resumes[*a.ResumeID]; ok {
			view := s.resumeView(r)
			a.Resume = &view
		}
	}
	return a
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
