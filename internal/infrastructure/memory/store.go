// Package memory implementa los puertos de persistencia e identidad en proceso.
// Se usa con STORAGE_DRIVER=memory y en los tests de casos de uso.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/team-feedback/internal/domain/entity"
)

type memberRow struct {
	m   entity.Member
	seq int64
}

type feedbackRow struct {
	fb  entity.Feedback
	seq int64
}

// state es el contenido completo del store; las transacciones trabajan sobre una copia.
type state struct {
	seq       int64
	companies map[string]entity.Company
	members   map[string]memberRow
	feedbacks map[string]feedbackRow
}

func newState() *state {
	return &state{
		companies: make(map[string]entity.Company),
		members:   make(map[string]memberRow),
		feedbacks: make(map[string]feedbackRow),
	}
}

func (s *state) clone() *state {
	c := &state{
		seq:       s.seq,
		companies: make(map[string]entity.Company, len(s.companies)),
		members:   make(map[string]memberRow, len(s.members)),
		feedbacks: make(map[string]feedbackRow, len(s.feedbacks)),
	}
	for k, v := range s.companies {
		c.companies[k] = v
	}
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, v := range s.feedbacks {
		c.feedbacks[k] = v
	}
	return c
}

func (s *state) hasMember(uid string) bool {
	for _, row := range s.members {
		if row.m.UID == uid {
			return true
		}
	}
	return false
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

// Store guarda empresas, members y feedbacks protegidos por un único mutex.
// Los valores se copian al entrar y al salir.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Companies repositorio de empresas fuera de transacción.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{store: s} }

// Members repositorio de members fuera de transacción.
func (s *Store) Members() *MemberRepo { return &MemberRepo{store: s} }

// Feedbacks repositorio de feedbacks.
func (s *Store) Feedbacks() *FeedbackRepo { return &FeedbackRepo{store: s} }

// view ejecuta fn sobre tx si el repo está dentro de una transacción (el lock ya lo tiene
// el TxRunner), o sobre el estado vigente tomando el lock.
func (s *Store) view(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// newestFirst ordena por CreatedAt descendente; a igual fecha gana la última inserción.
func newestFirst[T any](items []T, created func(T) time.Time, seq func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return seq(items[i]) > seq(items[j])
	})
}
