package cart

import "context"

// Service orchestrates cart operations against the persisted mirror.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, key string) (Cart, error) {
	return s.store.Load(ctx, key)
}

func (s *Service) AddItem(ctx context.Context, key string, item Item) (Cart, error) {
	c, err := s.store.Load(ctx, key)
	if err != nil {
		return Cart{}, err
	}
	if err := c.AddItem(item); err != nil {
		return c, err
	}
	if err := s.store.Save(ctx, key, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, key, itemID string, quantity int) (Cart, error) {
	c, err := s.store.Load(ctx, key)
	if err != nil {
		return Cart{}, err
	}
	c.UpdateQuantity(itemID, quantity)
	if err := s.store.Save(ctx, key, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) RemoveItem(ctx context.Context, key, itemID string) (Cart, error) {
	c, err := s.store.Load(ctx, key)
	if err != nil {
		return Cart{}, err
	}
	c.RemoveItem(itemID)
	if err := s.store.Save(ctx, key, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Clear drops the persisted mirror entirely; the next load starts from an
// empty cart.
func (s *Service) Clear(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
