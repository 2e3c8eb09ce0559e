// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory y tests).
// Cada colección se indexa por su ruta lógica sites/{site}/supplies.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/MedStock-api/internal/application/inventory"
	"github.com/jhoicas/MedStock-api/internal/domain"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
	"github.com/jhoicas/MedStock-api/internal/domain/repository"
)

var (
	_ repository.SupplyRepository = (*SupplyStore)(nil)
	_ inventory.TxRunner          = (*SupplyStore)(nil)
)

// SupplyStore almacén de insumos en memoria, seguro para uso concurrente.
type SupplyStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]entity.Supply

	// txMu serializa las transacciones de Run (equivalente a SELECT FOR UPDATE).
	txMu sync.Mutex
}

// NewSupplyStore construye un almacén vacío.
func NewSupplyStore() *SupplyStore {
	return &SupplyStore{collections: make(map[string]map[string]entity.Supply)}
}

func (s *SupplyStore) collection(siteID string) map[string]entity.Supply {
	path := entity.CollectionPath(siteID)
	c, ok := s.collections[path]
	if !ok {
		c = make(map[string]entity.Supply)
		s.collections[path] = c
	}
	return c
}

// Create asigna un ID nuevo y persiste una copia del insumo.
func (s *SupplyStore) Create(_ context.Context, supply *entity.Supply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(supply.SiteID)
	if upcTaken(c, supply.UPC, "") {
		return domain.ErrDuplicate
	}
	supply.ID = uuid.New().String()
	c[supply.ID] = clone(*supply)
	return nil
}

// GetByID devuelve nil, nil si no existe en la colección de la sede.
func (s *SupplyStore) GetByID(_ context.Context, siteID, id string) (*entity.Supply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[entity.CollectionPath(siteID)]
	sup, ok := c[id]
	if !ok {
		return nil, nil
	}
	out := clone(sup)
	return &out, nil
}

// GetForUpdate en memoria equivale a GetByID; el bloqueo lo da Run.
func (s *SupplyStore) GetForUpdate(ctx context.Context, siteID, id string) (*entity.Supply, error) {
	return s.GetByID(ctx, siteID, id)
}

// ListBySite devuelve todos los insumos de la sede (sin orden garantizado).
func (s *SupplyStore) ListBySite(_ context.Context, siteID string) ([]*entity.Supply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.collections[entity.CollectionPath(siteID)]
	list := make([]*entity.Supply, 0, len(c))
	for _, sup := range c {
		cp := clone(sup)
		list = append(list, &cp)
	}
	return list, nil
}

// Update reemplaza el documento; ErrNotFound si no existe.
func (s *SupplyStore) Update(_ context.Context, supply *entity.Supply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collection(supply.SiteID)
	prev, ok := c[supply.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if upcTaken(c, supply.UPC, supply.ID) {
		return domain.ErrDuplicate
	}
	next := clone(*supply)
	next.CreatedAt = prev.CreatedAt
	c[supply.ID] = next
	return nil
}

// Delete elimina el documento; ErrNotFound si no existe.
func (s *SupplyStore) Delete(_ context.Context, siteID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.collections[entity.CollectionPath(siteID)]
	if _, ok := c[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c, id)
	return nil
}

// FindByField consulta por igualdad sobre name, upc o category.
func (s *SupplyStore) FindByField(_ context.Context, siteID, field, value string) ([]*entity.Supply, error) {
	if !entity.IsQueryableField(field) {
		return nil, domain.ErrInvalidInput
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Supply
	for _, sup := range s.collections[entity.CollectionPath(siteID)] {
		if fieldValue(sup, field) == value {
			cp := clone(sup)
			list = append(list, &cp)
		}
	}
	return list, nil
}

// Run ejecuta fn de forma exclusiva. Si fn falla o el contexto se cancela, se deshacen solo
// las escrituras hechas por fn; las de otras peticiones concurrentes se conservan.
func (s *SupplyStore) Run(ctx context.Context, fn func(supplies repository.SupplyRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txSupplies{SupplyStore: s}
	err := fn(tx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// undoEntry valor previo de un documento tocado dentro de Run; prev nil indica que no existía.
type undoEntry struct {
	siteID string
	id     string
	prev   *entity.Supply
}

// txSupplies repositorio entregado a fn en Run: registra un undo log de cada escritura.
type txSupplies struct {
	*SupplyStore
	undo []undoEntry
}

func (t *txSupplies) Create(ctx context.Context, supply *entity.Supply) error {
	if err := t.SupplyStore.Create(ctx, supply); err != nil {
		return err
	}
	t.undo = append(t.undo, undoEntry{siteID: supply.SiteID, id: supply.ID})
	return nil
}

func (t *txSupplies) Update(ctx context.Context, supply *entity.Supply) error {
	prev, err := t.SupplyStore.GetByID(ctx, supply.SiteID, supply.ID)
	if err != nil {
		return err
	}
	if err := t.SupplyStore.Update(ctx, supply); err != nil {
		return err
	}
	t.undo = append(t.undo, undoEntry{siteID: supply.SiteID, id: supply.ID, prev: prev})
	return nil
}

func (t *txSupplies) Delete(ctx context.Context, siteID, id string) error {
	prev, err := t.SupplyStore.GetByID(ctx, siteID, id)
	if err != nil {
		return err
	}
	if err := t.SupplyStore.Delete(ctx, siteID, id); err != nil {
		return err
	}
	t.undo = append(t.undo, undoEntry{siteID: siteID, id: id, prev: prev})
	return nil
}

// rollback restaura en orden inverso los documentos tocados.
func (t *txSupplies) rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		e := t.undo[i]
		c := t.collection(e.siteID)
		if e.prev == nil {
			delete(c, e.id)
			continue
		}
		c[e.id] = clone(*e.prev)
	}
}

func upcTaken(c map[string]entity.Supply, upc, exceptID string) bool {
	if upc == "" {
		return false
	}
	for id, sup := range c {
		if id != exceptID && sup.UPC == upc {
			return true
		}
	}
	return false
}

func fieldValue(s entity.Supply, field string) string {
	switch field {
	case entity.FieldUPC:
		return s.UPC
	case entity.FieldCategory:
		return s.Category
	default:
		return s.Name
	}
}

// clone copia el insumo incluyendo el puntero de costo.
func clone(s entity.Supply) entity.Supply {
	if s.UnitCost != nil {
		c := *s.UnitCost
		s.UnitCost = &c
	}
	return s
}
