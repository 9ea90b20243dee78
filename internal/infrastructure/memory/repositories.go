package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/SellerOps-api/internal/domain"
	"github.com/jhoicas/SellerOps-api/internal/domain/entity"
	"github.com/jhoicas/SellerOps-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository          = (*ProductRepo)(nil)
	_ repository.SaleRepository             = (*SaleRepo)(nil)
	_ repository.CanceledOrderRepository    = (*CanceledOrderRepo)(nil)
	_ repository.SettingsRepository         = (*SettingsRepo)(nil)
	_ repository.ProfileRepository          = (*ProfileRepo)(nil)
	_ repository.InvitationRepository       = (*InvitationRepo)(nil)
	_ repository.AIRecommendationRepository = (*AIRecommendationRepo)(nil)
)

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.UserID == p.UserID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, userID, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.UserID == userID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) LockBySKU(ctx context.Context, userID, sku string) (*entity.Product, error) {
	return r.GetBySKU(ctx, userID, sku)
}

func (r *ProductRepo) List(ctx context.Context, userID string, f repository.ProductFilter) ([]*entity.Product, error) {
	all, _ := r.ListAll(ctx, userID)
	out := make([]*entity.Product, 0, len(all))
	search := strings.ToLower(f.Search)
	for _, p := range all {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.SKU), search) && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *ProductRepo) ListAll(_ context.Context, userID string) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria.
type SaleRepo struct{ s *Store }

func (r *SaleRepo) CreateBatch(_ context.Context, sales []*entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range sales {
		c := *sale
		r.s.sales[sale.ID] = &c
	}
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, userID, id string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok || sale.UserID != userID {
		return nil, nil
	}
	c := *sale
	return &c, nil
}

func (r *SaleRepo) List(_ context.Context, userID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Sale, 0)
	for _, sale := range r.s.sales {
		if sale.UserID != userID {
			continue
		}
		if sale.SaleDate.Before(f.From) || (!f.To.IsZero() && sale.SaleDate.After(f.To)) {
			continue
		}
		if f.Status != "" && sale.Status != f.Status {
			continue
		}
		if f.SKU != "" && sale.SKU != f.SKU {
			continue
		}
		c := *sale
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.Before(out[j].SaleDate)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *SaleRepo) UpdateStatus(_ context.Context, userID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok || sale.UserID != userID {
		return domain.ErrNotFound
	}
	sale.Status = status
	return nil
}

// CanceledOrderRepo cancelaciones en memoria.
type CanceledOrderRepo struct{ s *Store }

func (r *CanceledOrderRepo) Create(_ context.Context, c *entity.CanceledOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.canceled {
		if existing.SaleID == c.SaleID {
			return domain.ErrConflict
		}
	}
	cp := *c
	r.s.canceled = append(r.s.canceled, &cp)
	return nil
}

func (r *CanceledOrderRepo) ListBySaleDate(_ context.Context, userID string, from, to time.Time) ([]*entity.CanceledOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CanceledOrder, 0)
	for _, c := range r.s.canceled {
		sale, ok := r.s.sales[c.SaleID]
		if c.UserID != userID || !ok {
			continue
		}
		if sale.SaleDate.Before(from) || sale.SaleDate.After(to) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// ── Configuración ─────────────────────────────────────────────────────────────

// SettingsRepo configuración en memoria.
type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) Get(_ context.Context, userID string) (*entity.AppSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.settings[userID]
	if !ok {
		return nil, nil
	}
	c := *st
	return &c, nil
}

func (r *SettingsRepo) Upsert(_ context.Context, st *entity.AppSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *st
	r.s.settings[st.UserID] = &c
	return nil
}

// ── Administración ────────────────────────────────────────────────────────────

// ProfileRepo perfiles en memoria.
type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProfileRepo) List(_ context.Context, limit, offset int) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, limit, offset), nil
}

// InvitationRepo códigos de invitación en memoria.
type InvitationRepo struct{ s *Store }

func (r *InvitationRepo) Create(_ context.Context, inv *entity.InvitationCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.invitations[inv.Code]; exists {
		return domain.ErrDuplicate
	}
	c := *inv
	r.s.invitations[inv.Code] = &c
	return nil
}

func (r *InvitationRepo) GetByCode(_ context.Context, code string) (*entity.InvitationCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[code]
	if !ok {
		return nil, nil
	}
	c := *inv
	return &c, nil
}

func (r *InvitationRepo) List(_ context.Context, limit, offset int) ([]*entity.InvitationCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InvitationCode, 0, len(r.s.invitations))
	for _, inv := range r.s.invitations {
		c := *inv
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *InvitationRepo) ConsumeUse(_ context.Context, code string, now time.Time) (*entity.InvitationCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[code]
	if !ok || inv.Expired(now) || inv.Exhausted() {
		return nil, nil
	}
	inv.UseCount++
	c := *inv
	return &c, nil
}

// ── Recomendaciones IA ────────────────────────────────────────────────────────

// AIRecommendationRepo recomendaciones en memoria.
type AIRecommendationRepo struct{ s *Store }

func (r *AIRecommendationRepo) Create(_ context.Context, rec *entity.AIRecommendation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *rec
	r.s.recs[rec.ID] = &c
	return nil
}

func (r *AIRecommendationRepo) GetByID(_ context.Context, userID, id string) (*entity.AIRecommendation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.recs[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

func (r *AIRecommendationRepo) List(_ context.Context, userID, recType string, limit int) ([]*entity.AIRecommendation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.AIRecommendation, 0)
	for _, rec := range r.s.recs {
		if rec.UserID != userID || (recType != "" && rec.Type != recType) {
			continue
		}
		c := *rec
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, 0), nil
}

func (r *AIRecommendationRepo) MarkApplied(_ context.Context, userID, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.recs[id]
	if !ok || rec.UserID != userID {
		return domain.ErrNotFound
	}
	rec.Status = entity.RecommendationStatusApplied
	t := at
	rec.AppliedAt = &t
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
