package list

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPublic(ctx context.Context) ([]List, error) {
	return s.repo.ListPublic(ctx)
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]List, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns a list with its items. Private lists are visible to their
// owner only; viewerID is empty for anonymous callers.
func (s *Service) Get(ctx context.Context, id, viewerID string) (Detail, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if !l.IsPublic && l.UserID != viewerID {
		return Detail{}, ErrForbidden
	}
	items, err := s.repo.Items(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if items == nil {
		items = []Item{}
	}
	return Detail{List: l, Items: items}, nil
}

func (s *Service) Create(ctx context.Context, userID string, in NewList) (List, error) {
	return s.repo.Create(ctx, userID, in)
}

func (s *Service) authorize(ctx context.Context, id, userID string) error {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id, userID string, update Update) (List, error) {
	if update.Empty() {
		return List{}, ErrNoFields
	}
	if err := s.authorize(ctx, id, userID); err != nil {
		return List{}, err
	}
	return s.repo.Update(ctx, id, update)
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.authorize(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddGame(ctx context.Context, id, userID string, gameID int64) (Item, error) {
	if err := s.authorize(ctx, id, userID); err != nil {
		return Item{}, err
	}
	return s.repo.AddItem(ctx, id, gameID)
}

func (s *Service) RemoveGame(ctx context.Context, id, userID string, gameID int64) error {
	if err := s.authorize(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, id, gameID)
}
