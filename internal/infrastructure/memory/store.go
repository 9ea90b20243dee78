// Package memory implementa los puertos de persistencia en memoria. Se usa en pruebas de casos
// de uso y handlers; respeta las mismas reglas de unicidad que el esquema PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/SellerOps-api/internal/application/ports"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	products    map[string]*entity.Product
	sales       map[string]*entity.Sale
	canceled    []*entity.CanceledOrder
	settings    map[string]*entity.AppSettings
	profiles    map[string]*entity.Profile
	invitations map[string]*entity.InvitationCode
	recs        map[string]*entity.AIRecommendation

	// PingErr lo devuelve Ping; permite simular la base caída.
	PingErr error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:    make(map[string]*entity.Product),
		sales:       make(map[string]*entity.Sale),
		settings:    make(map[string]*entity.AppSettings),
		profiles:    make(map[string]*entity.Profile),
		invitations: make(map[string]*entity.InvitationCode),
		recs:        make(map[string]*entity.AIRecommendation),
	}
}

// Products repositorio de productos.
func (s *Store) Products() repository.ProductRepository { return &ProductRepo{s: s} }

// Sales repositorio de ventas.
func (s *Store) Sales() repository.SaleRepository { return &SaleRepo{s: s} }

// CanceledOrders repositorio de cancelaciones.
func (s *Store) CanceledOrders() repository.CanceledOrderRepository { return &CanceledOrderRepo{s: s} }

// Settings repositorio de configuración.
func (s *Store) Settings() repository.SettingsRepository { return &SettingsRepo{s: s} }

// Profiles repositorio de perfiles.
func (s *Store) Profiles() repository.ProfileRepository { return &ProfileRepo{s: s} }

// Invitations repositorio de códigos de invitación.
func (s *Store) Invitations() repository.InvitationRepository { return &InvitationRepo{s: s} }

// Recommendations repositorio de recomendaciones IA.
func (s *Store) Recommendations() repository.AIRecommendationRepository {
	return &AIRecommendationRepo{s: s}
}

// Ping implementa repository.HealthChecker.
func (s *Store) Ping(context.Context) error { return s.PingErr }

// Run ejecuta fn de forma serializada; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	canceledRepo repository.CanceledOrderRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s.Products(), s.Sales(), s.CanceledOrders()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	products map[string]*entity.Product
	sales    map[string]*entity.Sale
	canceled []*entity.CanceledOrder
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		products: make(map[string]*entity.Product, len(s.products)),
		sales:    make(map[string]*entity.Sale, len(s.sales)),
		canceled: make([]*entity.CanceledOrder, len(s.canceled)),
	}
	for k, v := range s.products {
		c := *v
		snap.products[k] = &c
	}
	for k, v := range s.sales {
		c := *v
		snap.sales[k] = &c
	}
	copy(snap.canceled, s.canceled)
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.sales = snap.sales
	s.canceled = snap.canceled
}

// AddProfile registra un perfil (los crea el proveedor de autenticación, no la API).
func (s *Store) AddProfile(p *entity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.profiles[p.ID] = &c
}
