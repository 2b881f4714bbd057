package usecase

import "context"

func (s *Usecase) Profile(ctx context.Context) (*UserSummary, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	out := toSummary(user)
	return &out, nil
}
